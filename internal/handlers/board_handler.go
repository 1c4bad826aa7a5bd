package handlers

import (
	"github.com/anotherclass/colortherock/internal/authctx"
	"github.com/anotherclass/colortherock/internal/dto"
	"github.com/anotherclass/colortherock/internal/services"
	"github.com/gofiber/fiber/v2"
)

type BoardHandler struct {
	boardService *services.BoardService
}

func NewBoardHandler(boardService *services.BoardService) *BoardHandler {
	return &BoardHandler{boardService: boardService}
}

func (h *BoardHandler) CreatePost(c *fiber.Ctx) error {
	memberID, err := authctx.GetMemberID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreatePostRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	post, err := h.boardService.CreatePost(c.UserContext(), memberID, &req)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.PostSummary{
		ID:        post.ID,
		Title:     post.Title,
		GymName:   post.GymName,
		Color:     post.Color,
		Level:     post.Level,
		CreatedAt: post.CreatedAt,
	})
}

func (h *BoardHandler) GetPost(c *fiber.Ctx) error {
	postID, ok := postIDParam(c)
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	detail, err := h.boardService.GetPost(c.UserContext(), postID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(detail)
}

func (h *BoardHandler) ListPosts(c *fiber.Ctx) error {
	var query dto.BoardQuery
	if err := c.QueryParser(&query); err != nil {
		return badRequest(c, "Invalid query")
	}
	if err := dto.Validate(&query); err != nil {
		return badRequest(c, err.Error())
	}

	page, err := h.boardService.ListPosts(c.UserContext(), &query)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(page)
}

func (h *BoardHandler) ListMine(c *fiber.Ctx) error {
	memberID, err := authctx.GetMemberID(c)
	if err != nil {
		return unauthorized(c)
	}

	lastID := c.QueryInt("last_id", 0)
	if lastID < 0 {
		return badRequest(c, "Invalid query")
	}

	page, err := h.boardService.ListMine(c.UserContext(), memberID, uint(lastID))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(page)
}

func (h *BoardHandler) DeletePost(c *fiber.Ctx) error {
	memberID, err := authctx.GetMemberID(c)
	if err != nil {
		return unauthorized(c)
	}

	postID, ok := postIDParam(c)
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	if err := h.boardService.DeletePost(c.UserContext(), memberID, postID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted successfully"})
}

// ListHidden handles GET /api/admin/posts/hidden.
func (h *BoardHandler) ListHidden(c *fiber.Ctx) error {
	posts, err := h.boardService.ListHidden(c.UserContext())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts": posts,
		"total": len(posts),
	})
}
