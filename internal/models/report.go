package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is one member's flag against a post. A member can report a given post once.
type Report struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_reports_reporter_post" json:"reporter_id"`
	PostID     uint      `gorm:"not null;index;uniqueIndex:idx_reports_reporter_post" json:"post_id"`
	Category   string    `gorm:"not null;size:50" json:"category"`
	CreatedAt  time.Time `json:"created_at"`
	Reporter   Member    `gorm:"foreignKey:ReporterID" json:"-"`
	Post       Post      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
