package repository

import (
	"context"

	"github.com/anotherclass/colortherock/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MemberRepository resolves reporter and author identities.
type MemberRepository interface {
	Create(ctx context.Context, member *models.Member) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Member, error)
	FindByEmail(ctx context.Context, email string) (*models.Member, error)
}

// PostRepository owns board posts and the only write path to Post.Hidden.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	// FindByIDForUpdate locks the post row until the surrounding transaction ends.
	FindByIDForUpdate(ctx context.Context, id uint) (*models.Post, error)
	// SetHiddenIfCountAtLeast hides the post when it is visible and its live
	// report count is at least threshold. It returns the number of rows changed.
	SetHiddenIfCountAtLeast(ctx context.Context, postID uint, threshold int64) (int64, error)
	ListVisible(ctx context.Context, filter PostFilter) ([]models.Post, error)
	ListHidden(ctx context.Context) ([]models.Post, error)
	Delete(ctx context.Context, id uint) error
}

// ReportRepository stores reports and answers the authoritative count.
type ReportRepository interface {
	Insert(ctx context.Context, report *models.Report) error
	CountForPost(ctx context.Context, postID uint) (int64, error)
	ExistsForReporter(ctx context.Context, reporterID uuid.UUID, postID uint) (bool, error)
	DeleteForPost(ctx context.Context, postID uint) error
}

// PostFilter selects a page of visible posts using the last seen id as cursor.
type PostFilter struct {
	AuthorID *uuid.UUID
	LastID   uint
	GymName  string
	Color    string
	Limit    int
}

// Repositories bundles the repositories bound to one *gorm.DB, which may be a transaction.
type Repositories struct {
	Members MemberRepository
	Posts   PostRepository
	Reports ReportRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Members: &memberRepository{db: db},
		Posts:   &postRepository{db: db},
		Reports: &reportRepository{db: db},
	}
}
