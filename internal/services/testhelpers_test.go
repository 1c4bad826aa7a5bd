package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anotherclass/colortherock/internal/database"
	"github.com/anotherclass/colortherock/internal/models"
)

// BoardFixture is a database with one author and one visible post.
type BoardFixture struct {
	DB     *gorm.DB
	Author *models.Member
	PostID uint
}

// setupTestDB opens a private in-memory database. The pool is held to a single
// connection so every goroutine sees the same schema and writers queue up.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateModels(db, []interface{}{
		&models.Member{},
		&models.RefreshToken{},
		&models.Post{},
		&models.Report{},
	}))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

func seedMember(t *testing.T, db *gorm.DB, nickname string) *models.Member {
	t.Helper()

	member := &models.Member{
		ID:       uuid.New(),
		Email:    fmt.Sprintf("%s-%s@colortherock.test", nickname, uuid.NewString()[:8]),
		Nickname: nickname,
		Password: "x",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func seedPost(t *testing.T, db *gorm.DB, author *models.Member, title string) *models.Post {
	t.Helper()

	post := &models.Post{
		AuthorID: author.ID,
		Title:    title,
		GymName:  "Seoul Forest Climbing",
		Color:    "green",
		Level:    4,
	}
	require.NoError(t, db.Omit("Author").Create(post).Error)
	return post
}

// seedReports files n reports against post from freshly created members.
func seedReports(t *testing.T, svc *ReportService, db *gorm.DB, post *models.Post, n int) []*models.Member {
	t.Helper()

	reporters := make([]*models.Member, 0, n)
	for i := 0; i < n; i++ {
		reporter := seedMember(t, db, fmt.Sprintf("reporter%d", i))
		_, err := svc.SubmitReport(context.Background(), reporter.ID, post.ID, "spam")
		require.NoError(t, err)
		reporters = append(reporters, reporter)
	}
	return reporters
}

func reloadPost(t *testing.T, db *gorm.DB, id uint) *models.Post {
	t.Helper()

	var post models.Post
	require.NoError(t, db.First(&post, id).Error)
	return &post
}
