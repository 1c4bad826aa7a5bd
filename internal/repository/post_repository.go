package repository

import (
	"context"
	"time"

	"github.com/anotherclass/colortherock/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type postRepository struct {
	db *gorm.DB
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) FindByIDForUpdate(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) SetHiddenIfCountAtLeast(ctx context.Context, postID uint, threshold int64) (int64, error) {
	reportCount := r.db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Report{}).
		Select("count(*)").
		Where("post_id = ?", postID)

	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ? AND hidden = ?", postID, false).
		Where("(?) >= ?", reportCount, threshold).
		Updates(map[string]interface{}{
			"hidden":    true,
			"hidden_at": time.Now().UTC(),
		})
	return result.RowsAffected, result.Error
}

func (r *postRepository) ListVisible(ctx context.Context, filter PostFilter) ([]models.Post, error) {
	query := r.db.WithContext(ctx).Where("hidden = ?", false)
	if filter.AuthorID != nil {
		query = query.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.LastID > 0 {
		query = query.Where("id < ?", filter.LastID)
	}
	if filter.GymName != "" {
		query = query.Where("gym_name LIKE ?", "%"+filter.GymName+"%")
	}
	if filter.Color != "" {
		query = query.Where("color = ?", filter.Color)
	}

	var posts []models.Post
	if err := query.Order("id DESC").Limit(filter.Limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) ListHidden(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Where("hidden = ?", true).Order("hidden_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
