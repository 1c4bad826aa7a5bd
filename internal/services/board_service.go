package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anotherclass/colortherock/internal/dto"
	"github.com/anotherclass/colortherock/internal/models"
	"github.com/anotherclass/colortherock/internal/repository"
	"github.com/anotherclass/colortherock/internal/storage"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	DefaultBoardPageSize   = 16
	DefaultMyPostsPageSize = 8
)

// BoardService serves the success-climb board. Hidden posts are never listed
// or shown; their visibility is owned by the moderation gate.
type BoardService struct {
	db         *gorm.DB
	filter     *ContentFilter
	media      storage.MediaStore
	pageSize   int
	myPageSize int
}

func NewBoardService(db *gorm.DB, filter *ContentFilter, media storage.MediaStore, pageSize, myPageSize int) *BoardService {
	if pageSize <= 0 {
		pageSize = DefaultBoardPageSize
	}
	if myPageSize <= 0 {
		myPageSize = DefaultMyPostsPageSize
	}
	return &BoardService{
		db:         db,
		filter:     filter,
		media:      media,
		pageSize:   pageSize,
		myPageSize: myPageSize,
	}
}

func (s *BoardService) CreatePost(ctx context.Context, authorID uuid.UUID, req *dto.CreatePostRequest) (*models.Post, error) {
	repos := repository.New(s.db)

	if _, err := repos.Members.FindByID(ctx, authorID); err != nil {
		return nil, notFoundAs(err, ErrMemberNotFound, "find author")
	}

	title := strings.TrimSpace(req.Title)
	if ok, reason := s.filter.Check(title); !ok {
		return nil, fmt.Errorf("%w: %s", ErrRejectedContent, s.filter.RejectionMessage(reason))
	}

	post := &models.Post{
		AuthorID: authorID,
		Title:    title,
		GymName:  strings.TrimSpace(req.GymName),
		Color:    strings.TrimSpace(req.Color),
		Level:    req.Level,
		VideoKey: req.VideoKey,
		Hidden:   false,
	}
	if err := repos.Posts.Create(ctx, post); err != nil {
		return nil, persistenceError("create post", err)
	}
	return post, nil
}

// GetPost returns a visible post. Hidden posts answer ErrPostNotFound.
func (s *BoardService) GetPost(ctx context.Context, postID uint) (*dto.PostDetail, error) {
	repos := repository.New(s.db)

	post, err := repos.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, notFoundAs(err, ErrPostNotFound, "find post")
	}
	if post.Hidden {
		return nil, ErrPostNotFound
	}

	detail := &dto.PostDetail{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Title:     post.Title,
		GymName:   post.GymName,
		Color:     post.Color,
		Level:     post.Level,
		CreatedAt: post.CreatedAt,
	}
	if author, err := repos.Members.FindByID(ctx, post.AuthorID); err == nil {
		detail.Nickname = author.Nickname
	}

	if s.media != nil && post.VideoKey != "" {
		url, err := s.media.VideoURL(ctx, post.VideoKey)
		if err != nil {
			slog.Warn("video url unavailable", "post_id", post.ID, "error", err.Error())
		} else {
			detail.VideoURL = url
		}
	}
	return detail, nil
}

// ListPosts pages through visible posts newest first, using the last seen id as cursor.
func (s *BoardService) ListPosts(ctx context.Context, query *dto.BoardQuery) (*dto.PostPage, error) {
	return s.page(ctx, repository.PostFilter{
		LastID:  query.LastID,
		GymName: strings.TrimSpace(query.GymName),
		Color:   strings.TrimSpace(query.Color),
	}, s.pageSize)
}

// ListMine pages through the member's own visible posts.
func (s *BoardService) ListMine(ctx context.Context, memberID uuid.UUID, lastID uint) (*dto.PostPage, error) {
	return s.page(ctx, repository.PostFilter{
		AuthorID: &memberID,
		LastID:   lastID,
	}, s.myPageSize)
}

func (s *BoardService) page(ctx context.Context, filter repository.PostFilter, size int) (*dto.PostPage, error) {
	filter.Limit = size + 1

	posts, err := repository.New(s.db).Posts.ListVisible(ctx, filter)
	if err != nil {
		return nil, persistenceError("list posts", err)
	}

	page := &dto.PostPage{Posts: make([]dto.PostSummary, 0, size)}
	if len(posts) > size {
		page.HasNext = true
		posts = posts[:size]
	}
	for _, p := range posts {
		page.Posts = append(page.Posts, dto.PostSummary{
			ID:        p.ID,
			Title:     p.Title,
			GymName:   p.GymName,
			Color:     p.Color,
			Level:     p.Level,
			CreatedAt: p.CreatedAt,
		})
	}
	if len(posts) > 0 {
		page.LastID = posts[len(posts)-1].ID
	}
	return page, nil
}

// ListHidden returns every post hidden by the moderation gate, most recent first.
func (s *BoardService) ListHidden(ctx context.Context) ([]models.Post, error) {
	posts, err := repository.New(s.db).Posts.ListHidden(ctx)
	if err != nil {
		return nil, persistenceError("list hidden posts", err)
	}
	return posts, nil
}

// DeletePost removes the writer's post together with its reports.
func (s *BoardService) DeletePost(ctx context.Context, memberID uuid.UUID, postID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := repository.New(tx)

		post, err := repos.Posts.FindByIDForUpdate(ctx, postID)
		if err != nil {
			return notFoundAs(err, ErrPostNotFound, "lock post")
		}
		if post.AuthorID != memberID {
			return ErrNotWriter
		}
		if err := repos.Reports.DeleteForPost(ctx, postID); err != nil {
			return persistenceError("delete reports", err)
		}
		if err := repos.Posts.Delete(ctx, postID); err != nil {
			return persistenceError("delete post", err)
		}
		return nil
	})
	return classify("delete post", err)
}
