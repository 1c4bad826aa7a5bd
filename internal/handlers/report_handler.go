package handlers

import (
	"github.com/anotherclass/colortherock/internal/authctx"
	"github.com/anotherclass/colortherock/internal/dto"
	"github.com/anotherclass/colortherock/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	reportService *services.ReportService
}

func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// CreateReport handles POST /api/reports.
func (h *ReportHandler) CreateReport(c *fiber.Ctx) error {
	memberID, err := authctx.GetMemberID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateReportRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}

	outcome, err := h.reportService.SubmitReport(c.UserContext(), memberID, req.PostID, req.Category)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ReportResponse{
		ID:          outcome.ReportID,
		PostID:      outcome.PostID,
		ReportCount: outcome.Count,
		Hidden:      outcome.Hidden,
	})
}

// ReportCount handles GET /api/admin/posts/:id/report-count.
func (h *ReportHandler) ReportCount(c *fiber.Ctx) error {
	postID, ok := postIDParam(c)
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	status, err := h.reportService.Status(c.UserContext(), postID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(dto.ReportCountResponse{
		PostID:      status.PostID,
		ReportCount: status.Count,
		Hidden:      status.Hidden,
	})
}

// Evaluate handles POST /api/admin/posts/:id/evaluate.
func (h *ReportHandler) Evaluate(c *fiber.Ctx) error {
	postID, ok := postIDParam(c)
	if !ok {
		return badRequest(c, "Invalid post ID")
	}

	count, hidden, err := h.reportService.EvaluateAndMaybeHide(c.UserContext(), postID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(dto.ReportCountResponse{
		PostID:      postID,
		ReportCount: count,
		Hidden:      hidden,
	})
}
