package models

import (
	"time"

	"github.com/google/uuid"
)

// Post is a success-climb entry on the video board.
//
// Hidden is only ever set by the report threshold update in the repository
// layer; nothing clears it.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	AuthorID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"author_id"`
	Title     string     `gorm:"not null;size:30" json:"title"`
	GymName   string     `gorm:"size:100;index" json:"gym_name"`
	Color     string     `gorm:"size:20" json:"color"`
	Level     int        `json:"level"`
	VideoKey  string     `gorm:"size:255" json:"-"`
	Hidden    bool       `gorm:"not null;default:false;index" json:"hidden"`
	HiddenAt  *time.Time `json:"hidden_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	Author    Member     `gorm:"foreignKey:AuthorID" json:"-"`
}
