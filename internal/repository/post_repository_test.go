package repository

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/anotherclass/colortherock/internal/models"
)

type renderedSQL struct {
	queries []string
	updates []string
}

// setupPostgresDryRun returns a Postgres-dialect handle that renders SQL
// without connecting, recording every rendered statement.
func setupPostgresDryRun(t *testing.T) (*gorm.DB, *renderedSQL) {
	t.Helper()

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres dbname=colortherock sslmode=disable",
	}), &gorm.Config{
		DryRun:                 true,
		DisableAutomaticPing:   true,
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	out := &renderedSQL{}
	explain := func(tx *gorm.DB) string {
		return tx.Dialector.Explain(tx.Statement.SQL.String(), tx.Statement.Vars...)
	}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:capture_query", func(tx *gorm.DB) {
		out.queries = append(out.queries, explain(tx))
	}))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:capture_update", func(tx *gorm.DB) {
		out.updates = append(out.updates, explain(tx))
	}))
	return db, out
}

func TestFindByIDForUpdate_LocksRowOnPostgres(t *testing.T) {
	db, out := setupPostgresDryRun(t)

	_, _ = New(db).Posts.FindByIDForUpdate(context.Background(), 7)

	require.Len(t, out.queries, 1)
	sql := out.queries[0]
	assert.Contains(t, sql, `FROM "posts"`)
	assert.Contains(t, sql, `"posts"."id" = 7`)
	assert.Contains(t, sql, "FOR UPDATE")
}

func TestSetHiddenIfCountAtLeast_RecountsInsideUpdate(t *testing.T) {
	db, out := setupPostgresDryRun(t)

	_, err := New(db).Posts.SetHiddenIfCountAtLeast(context.Background(), 7, 5)
	require.NoError(t, err)

	require.Len(t, out.updates, 1)
	sql := out.updates[0]
	assert.Contains(t, sql, `UPDATE "posts" SET`)
	assert.Contains(t, sql, `"hidden"=true`)
	assert.Contains(t, sql, "id = 7 AND hidden = false")
	assert.Contains(t, sql, `(SELECT count(*) FROM "reports" WHERE post_id = 7) >= 5`)
}

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.Member{}, &models.Post{}, &models.Report{}))
	return db
}

func TestListVisible(t *testing.T) {
	ctx := context.Background()
	db := setupSQLite(t)
	repos := New(db)

	author := &models.Member{ID: uuid.New(), Email: "a@colortherock.test", Nickname: "a", Password: "x"}
	other := &models.Member{ID: uuid.New(), Email: "b@colortherock.test", Nickname: "b", Password: "x"}
	require.NoError(t, repos.Members.Create(ctx, author))
	require.NoError(t, repos.Members.Create(ctx, other))

	seed := []struct {
		author *models.Member
		gym    string
		color  string
	}{
		{author, "Seoul Forest Climbing", "green"}, // 1
		{author, "The Climb Yeonnam", "red"},       // 2
		{other, "Seoul Forest Climbing", "red"},    // 3
		{author, "Seoul Forest Climbing", "red"},   // 4, hidden below
		{author, "Busan Boulder", "green"},         // 5
		{other, "The Climb Sinsa", "green"},        // 6
	}
	for _, s := range seed {
		require.NoError(t, repos.Posts.Create(ctx, &models.Post{
			AuthorID: s.author.ID,
			Title:    "problem",
			GymName:  s.gym,
			Color:    s.color,
		}))
	}
	// Create never sets Hidden, so post 4 is flipped directly.
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", 4).Update("hidden", true).Error)

	authorID := author.ID
	tests := []struct {
		name   string
		filter PostFilter
		want   []uint
	}{
		{"first page newest first", PostFilter{Limit: 3}, []uint{6, 5, 3}},
		{"cursor excludes last id and above", PostFilter{LastID: 5, Limit: 10}, []uint{3, 2, 1}},
		{"cursor with limit", PostFilter{LastID: 3, Limit: 1}, []uint{2}},
		{"gym substring", PostFilter{GymName: "Climb", Limit: 10}, []uint{6, 3, 2, 1}},
		{"gym substring below cursor", PostFilter{GymName: "Forest", LastID: 3, Limit: 10}, []uint{1}},
		{"color exact", PostFilter{Color: "red", Limit: 10}, []uint{3, 2}},
		{"color below cursor", PostFilter{Color: "green", LastID: 6, Limit: 10}, []uint{5, 1}},
		{"color is not a substring match", PostFilter{Color: "re", Limit: 10}, nil},
		{"gym and color", PostFilter{GymName: "Seoul", Color: "red", Limit: 10}, []uint{3}},
		{"author below cursor", PostFilter{AuthorID: &authorID, LastID: 5, Limit: 10}, []uint{2, 1}},
		{"cursor past the end", PostFilter{LastID: 1, Limit: 10}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repos.Posts.ListVisible(ctx, tt.filter)
			require.NoError(t, err)

			var got []uint
			for _, p := range posts {
				assert.False(t, p.Hidden)
				got = append(got, p.ID)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
