package repository

import (
	"context"

	"github.com/anotherclass/colortherock/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type reportRepository struct {
	db *gorm.DB
}

func (r *reportRepository) Insert(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(report).Error
}

func (r *reportRepository) CountForPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

func (r *reportRepository) ExistsForReporter(ctx context.Context, reporterID uuid.UUID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Report{}).
		Where("reporter_id = ? AND post_id = ?", reporterID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *reportRepository) DeleteForPost(ctx context.Context, postID uint) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&models.Report{}).Error
}
