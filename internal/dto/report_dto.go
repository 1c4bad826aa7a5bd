package dto

import "github.com/google/uuid"

type CreateReportRequest struct {
	PostID   uint   `json:"post_id" validate:"required"`
	Category string `json:"category" validate:"required,max=50"`
}

type ReportResponse struct {
	ID          uuid.UUID `json:"id"`
	PostID      uint      `json:"post_id"`
	ReportCount int64     `json:"report_count"`
	Hidden      bool      `json:"hidden"`
}

type ReportCountResponse struct {
	PostID      uint  `json:"post_id"`
	ReportCount int64 `json:"report_count"`
	Hidden      bool  `json:"hidden"`
}
