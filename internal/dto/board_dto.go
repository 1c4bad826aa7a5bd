package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreatePostRequest struct {
	Title    string `json:"title" validate:"required,max=30"`
	GymName  string `json:"gym_name" validate:"required,max=100"`
	Color    string `json:"color" validate:"max=20"`
	Level    int    `json:"level" validate:"gte=0,lte=20"`
	VideoKey string `json:"video_key" validate:"max=255"`
}

// BoardQuery is a no-offset page request: LastID is the smallest id already shown.
type BoardQuery struct {
	LastID  uint   `query:"last_id"`
	GymName string `query:"gym" validate:"max=100"`
	Color   string `query:"color" validate:"max=20"`
}

type PostSummary struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	GymName   string    `json:"gym_name"`
	Color     string    `json:"color"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"created_at"`
}

type PostPage struct {
	Posts   []PostSummary `json:"posts"`
	HasNext bool          `json:"has_next"`
	LastID  uint          `json:"last_id,omitempty"`
}

type PostDetail struct {
	ID        uint      `json:"id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Nickname  string    `json:"nickname"`
	Title     string    `json:"title"`
	GymName   string    `json:"gym_name"`
	Color     string    `json:"color"`
	Level     int       `json:"level"`
	VideoURL  string    `json:"video_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
