package logging

import (
	"log/slog"
	"time"

	"github.com/anotherclass/colortherock/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// DeleteExpiredLogs removes system_logs older than retentionDays before now.
func DeleteExpiredLogs(db *gorm.DB, retentionDays int, now time.Time) (int64, error) {
	cutoff := now.AddDate(0, 0, -retentionDays)
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}

// StartCleanup schedules a daily system_logs purge at 03:30 UTC.
// The caller stops the returned scheduler on shutdown.
func StartCleanup(db *gorm.DB, retentionDays int) (*cron.Cron, error) {
	if retentionDays <= 0 {
		retentionDays = 30
	}

	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc("30 3 * * *", func() {
		deleted, err := DeleteExpiredLogs(db, retentionDays, time.Now())
		if err != nil {
			slog.Error("log cleanup failed", "action", "log_cleanup", "error", err.Error())
		} else if deleted > 0 {
			slog.Info("log cleanup completed", "action", "log_cleanup", "deleted", deleted)
		}
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
