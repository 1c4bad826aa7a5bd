package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReportService(t *testing.T) (*ReportService, *BoardFixture) {
	t.Helper()

	db := setupTestDB(t)
	author := seedMember(t, db, "author")
	post := seedPost(t, db, author, "Blue V5 at last")

	return NewReportService(db, NewModerationGate(HideThreshold)), &BoardFixture{
		DB:     db,
		Author: author,
		PostID: post.ID,
	}
}

func TestSubmitReport(t *testing.T) {
	ctx := context.Background()

	t.Run("valid report increments count by one", func(t *testing.T) {
		svc, fx := setupReportService(t)
		reporter := seedMember(t, fx.DB, "reporter")

		before, err := svc.CountReports(ctx, fx.PostID)
		require.NoError(t, err)

		outcome, err := svc.SubmitReport(ctx, reporter.ID, fx.PostID, "abuse")
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, outcome.ReportID)
		assert.Equal(t, before+1, outcome.Count)
		assert.False(t, outcome.Hidden)

		after, err := svc.CountReports(ctx, fx.PostID)
		require.NoError(t, err)
		assert.Equal(t, before+1, after)
	})

	t.Run("category is trimmed before it is stored", func(t *testing.T) {
		svc, fx := setupReportService(t)
		reporter := seedMember(t, fx.DB, "reporter")

		outcome, err := svc.SubmitReport(ctx, reporter.ID, fx.PostID, "  spam  ")
		require.NoError(t, err)

		var category string
		require.NoError(t, fx.DB.Table("reports").Select("category").Where("id = ?", outcome.ReportID).Scan(&category).Error)
		assert.Equal(t, "spam", category)
	})

	t.Run("self report is rejected without changing the count", func(t *testing.T) {
		svc, fx := setupReportService(t)

		_, err := svc.SubmitReport(ctx, fx.Author.ID, fx.PostID, "abuse")
		require.ErrorIs(t, err, ErrSelfReport)
		assert.Equal(t, KindSelfReport, KindOf(err))

		count, err := svc.CountReports(ctx, fx.PostID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("duplicate report from the same member is rejected", func(t *testing.T) {
		svc, fx := setupReportService(t)
		reporter := seedMember(t, fx.DB, "reporter")

		_, err := svc.SubmitReport(ctx, reporter.ID, fx.PostID, "abuse")
		require.NoError(t, err)

		_, err = svc.SubmitReport(ctx, reporter.ID, fx.PostID, "spam")
		require.ErrorIs(t, err, ErrDuplicateReport)

		count, err := svc.CountReports(ctx, fx.PostID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc, fx := setupReportService(t)
		reporter := seedMember(t, fx.DB, "reporter")

		_, err := svc.SubmitReport(ctx, reporter.ID, fx.PostID+100, "abuse")
		require.ErrorIs(t, err, ErrPostNotFound)
	})

	t.Run("unknown reporter", func(t *testing.T) {
		svc, fx := setupReportService(t)

		_, err := svc.SubmitReport(ctx, uuid.New(), fx.PostID, "abuse")
		require.ErrorIs(t, err, ErrMemberNotFound)

		count, err := svc.CountReports(ctx, fx.PostID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), count)
	})

	t.Run("invalid category", func(t *testing.T) {
		svc, fx := setupReportService(t)
		reporter := seedMember(t, fx.DB, "reporter")

		for _, category := range []string{"", "   ", strings.Repeat("가", 51)} {
			_, err := svc.SubmitReport(ctx, reporter.ID, fx.PostID, category)
			require.ErrorIs(t, err, ErrInvalidCategory)
			assert.Equal(t, KindInvalidInput, KindOf(err))
		}
	})
}

func TestSubmitReport_HideThreshold(t *testing.T) {
	ctx := context.Background()

	t.Run("four reports keep the post visible", func(t *testing.T) {
		svc, fx := setupReportService(t)
		seedReports(t, svc, fx.DB, reloadPost(t, fx.DB, fx.PostID), 4)

		assert.False(t, reloadPost(t, fx.DB, fx.PostID).Hidden)
	})

	t.Run("fifth report hides the post", func(t *testing.T) {
		svc, fx := setupReportService(t)
		seedReports(t, svc, fx.DB, reloadPost(t, fx.DB, fx.PostID), 4)

		fifth := seedMember(t, fx.DB, "fifth")
		outcome, err := svc.SubmitReport(ctx, fifth.ID, fx.PostID, "abuse")
		require.NoError(t, err)
		assert.Equal(t, int64(5), outcome.Count)
		assert.True(t, outcome.Hidden)

		post := reloadPost(t, fx.DB, fx.PostID)
		assert.True(t, post.Hidden)
		assert.NotNil(t, post.HiddenAt)
	})

	t.Run("sixth report leaves the post hidden", func(t *testing.T) {
		svc, fx := setupReportService(t)
		seedReports(t, svc, fx.DB, reloadPost(t, fx.DB, fx.PostID), 5)
		hiddenAt := reloadPost(t, fx.DB, fx.PostID).HiddenAt
		require.NotNil(t, hiddenAt)

		sixth := seedMember(t, fx.DB, "sixth")
		outcome, err := svc.SubmitReport(ctx, sixth.ID, fx.PostID, "abuse")
		require.NoError(t, err)
		assert.Equal(t, int64(6), outcome.Count)
		assert.True(t, outcome.Hidden)

		post := reloadPost(t, fx.DB, fx.PostID)
		assert.True(t, post.Hidden)
		assert.True(t, hiddenAt.Equal(*post.HiddenAt), "hidden_at must not move once set")
	})
}

func TestEvaluateAndMaybeHide(t *testing.T) {
	ctx := context.Background()

	t.Run("repeated evaluation after the threshold is idempotent", func(t *testing.T) {
		svc, fx := setupReportService(t)
		seedReports(t, svc, fx.DB, reloadPost(t, fx.DB, fx.PostID), 5)

		for i := 0; i < 3; i++ {
			count, hidden, err := svc.EvaluateAndMaybeHide(ctx, fx.PostID)
			require.NoError(t, err)
			assert.Equal(t, int64(5), count)
			assert.True(t, hidden)
		}
	})

	t.Run("below threshold reports count without hiding", func(t *testing.T) {
		svc, fx := setupReportService(t)
		seedReports(t, svc, fx.DB, reloadPost(t, fx.DB, fx.PostID), 2)

		count, hidden, err := svc.EvaluateAndMaybeHide(ctx, fx.PostID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.False(t, hidden)
	})

	t.Run("hides a post whose reports were recorded without evaluation", func(t *testing.T) {
		svc, fx := setupReportService(t)
		for i := 0; i < 5; i++ {
			reporter := seedMember(t, fx.DB, "imported")
			require.NoError(t, fx.DB.Exec(
				"INSERT INTO reports (id, reporter_id, post_id, category, created_at) VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)",
				uuid.New(), reporter.ID, fx.PostID, "spam",
			).Error)
		}
		require.False(t, reloadPost(t, fx.DB, fx.PostID).Hidden)

		count, hidden, err := svc.EvaluateAndMaybeHide(ctx, fx.PostID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), count)
		assert.True(t, hidden)
	})

	t.Run("unknown post", func(t *testing.T) {
		svc, _ := setupReportService(t)

		_, _, err := svc.EvaluateAndMaybeHide(ctx, 9999)
		require.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestCountReports_UnknownPost(t *testing.T) {
	svc, _ := setupReportService(t)

	_, err := svc.CountReports(context.Background(), 9999)
	require.ErrorIs(t, err, ErrPostNotFound)
}

func TestSubmitReport_ConcurrentReporters(t *testing.T) {
	ctx := context.Background()
	svc, fx := setupReportService(t)
	seedReports(t, svc, fx.DB, reloadPost(t, fx.DB, fx.PostID), 2)

	reporters := []uuid.UUID{
		seedMember(t, fx.DB, "a").ID,
		seedMember(t, fx.DB, "b").ID,
		seedMember(t, fx.DB, "c").ID,
	}

	var wg sync.WaitGroup
	errs := make([]error, len(reporters))
	for i, id := range reporters {
		wg.Add(1)
		go func(i int, id uuid.UUID) {
			defer wg.Done()
			_, errs[i] = svc.SubmitReport(ctx, id, fx.PostID, "abuse")
		}(i, id)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	count, err := svc.CountReports(ctx, fx.PostID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
	assert.True(t, reloadPost(t, fx.DB, fx.PostID).Hidden)
}

func TestSubmitReport_ConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, fx := setupReportService(t)
	reporter := seedMember(t, fx.DB, "eager")

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.SubmitReport(ctx, reporter.ID, fx.PostID, "abuse")
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, err := range errs {
		if err == nil {
			accepted++
			continue
		}
		assert.ErrorIs(t, err, ErrDuplicateReport)
	}
	assert.Equal(t, 1, accepted)

	count, err := svc.CountReports(ctx, fx.PostID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStatus(t *testing.T) {
	svc, fx := setupReportService(t)
	seedReports(t, svc, fx.DB, reloadPost(t, fx.DB, fx.PostID), 3)

	status, err := svc.Status(context.Background(), fx.PostID)
	require.NoError(t, err)
	assert.Equal(t, fx.PostID, status.PostID)
	assert.Equal(t, int64(3), status.Count)
	assert.False(t, status.Hidden)
	assert.False(t, status.Flipped)
}

func TestSubmitReport_RollsBackWhenGateFails(t *testing.T) {
	ctx := context.Background()
	svc, fx := setupReportService(t)
	reporter := seedMember(t, fx.DB, "reporter")

	require.NoError(t, fx.DB.Callback().Update().Before("gorm:update").Register("test:fail_post_update", func(tx *gorm.DB) {
		if tx.Statement.Table == "posts" {
			tx.AddError(errors.New("could not serialize access"))
		}
	}))

	_, err := svc.SubmitReport(ctx, reporter.ID, fx.PostID, "abuse")
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, KindPersistence, KindOf(err))

	count, err := svc.CountReports(ctx, fx.PostID)
	require.NoError(t, err)
	assert.Zero(t, count, "the inserted report must not survive a failed evaluation")
	assert.False(t, reloadPost(t, fx.DB, fx.PostID).Hidden)
}

func TestSubmitReport_CategoryLengthBoundary(t *testing.T) {
	ctx := context.Background()
	svc, fx := setupReportService(t)

	_, err := svc.SubmitReport(ctx, seedMember(t, fx.DB, "max").ID, fx.PostID, strings.Repeat("가", maxCategoryLength))
	require.NoError(t, err)

	_, err = svc.SubmitReport(ctx, seedMember(t, fx.DB, "over").ID, fx.PostID, strings.Repeat("가", maxCategoryLength+1))
	require.ErrorIs(t, err, ErrInvalidCategory)
}
