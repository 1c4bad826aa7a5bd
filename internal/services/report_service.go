package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/anotherclass/colortherock/internal/metrics"
	"github.com/anotherclass/colortherock/internal/models"
	"github.com/anotherclass/colortherock/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportOutcome is returned for an accepted report.
type ReportOutcome struct {
	ReportID uuid.UUID
	PostID   uint
	Count    int64
	Hidden   bool
}

// ReportService records reports and runs the moderation gate in the same transaction.
type ReportService struct {
	db   *gorm.DB
	gate *ModerationGate
}

func NewReportService(db *gorm.DB, gate *ModerationGate) *ReportService {
	return &ReportService{db: db, gate: gate}
}

// SubmitReport records one report from reporterID against postID and re-evaluates
// the post. The post row is locked for the whole unit of work, so concurrent
// reporters on the same post are counted one after another. Any failure rolls
// back the inserted report.
func (s *ReportService) SubmitReport(ctx context.Context, reporterID uuid.UUID, postID uint, category string) (*ReportOutcome, error) {
	category = strings.TrimSpace(category)
	if category == "" || utf8.RuneCountInString(category) > maxCategoryLength {
		return nil, s.reject(reporterID, postID, ErrInvalidCategory)
	}

	var outcome *ReportOutcome
	var eval *Evaluation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := repository.New(tx)

		post, err := repos.Posts.FindByIDForUpdate(ctx, postID)
		if err != nil {
			return notFoundAs(err, ErrPostNotFound, "lock post")
		}
		if _, err := repos.Members.FindByID(ctx, reporterID); err != nil {
			return notFoundAs(err, ErrMemberNotFound, "find reporter")
		}
		if post.AuthorID == reporterID {
			return ErrSelfReport
		}

		exists, err := repos.Reports.ExistsForReporter(ctx, reporterID, postID)
		if err != nil {
			return persistenceError("check duplicate report", err)
		}
		if exists {
			return ErrDuplicateReport
		}

		report := &models.Report{
			ID:         uuid.New(),
			ReporterID: reporterID,
			PostID:     postID,
			Category:   category,
		}
		if err := repos.Reports.Insert(ctx, report); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrDuplicateReport
			}
			return persistenceError("insert report", err)
		}

		eval, err = s.gate.Evaluate(ctx, repos, postID)
		if err != nil {
			return err
		}

		outcome = &ReportOutcome{
			ReportID: report.ID,
			PostID:   postID,
			Count:    eval.Count,
			Hidden:   eval.Hidden,
		}
		return nil
	})
	if err != nil {
		return nil, s.reject(reporterID, postID, classify("submit report", err))
	}

	metrics.ReportsSubmittedTotal.Inc()
	slog.Info("report recorded",
		"action", "report_post",
		"post_id", postID,
		"member_id", reporterID.String(),
		"report_count", outcome.Count,
	)
	if eval.Flipped {
		metrics.PostsHiddenTotal.Inc()
		slog.Info("post hidden by report threshold",
			"action", "hide_post",
			"post_id", postID,
			"report_count", eval.Count,
			"threshold", s.gate.Threshold(),
		)
	}

	return outcome, nil
}

// EvaluateAndMaybeHide runs the moderation gate on its own, for example after
// reports were imported or a previous evaluation failed.
func (s *ReportService) EvaluateAndMaybeHide(ctx context.Context, postID uint) (int64, bool, error) {
	var eval *Evaluation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := repository.New(tx)
		if _, err := repos.Posts.FindByIDForUpdate(ctx, postID); err != nil {
			return notFoundAs(err, ErrPostNotFound, "lock post")
		}

		var err error
		eval, err = s.gate.Evaluate(ctx, repos, postID)
		return err
	})
	if err != nil {
		return 0, false, classify("evaluate post", err)
	}

	if eval.Flipped {
		metrics.PostsHiddenTotal.Inc()
		slog.Info("post hidden by report threshold",
			"action", "hide_post",
			"post_id", postID,
			"report_count", eval.Count,
			"threshold", s.gate.Threshold(),
		)
	}
	return eval.Count, eval.Hidden, nil
}

// CountReports returns the number of reports recorded against postID.
func (s *ReportService) CountReports(ctx context.Context, postID uint) (int64, error) {
	status, err := s.Status(ctx, postID)
	if err != nil {
		return 0, err
	}
	return status.Count, nil
}

// Status reads a post's report count and visibility without changing either.
func (s *ReportService) Status(ctx context.Context, postID uint) (*Evaluation, error) {
	repos := repository.New(s.db)

	post, err := repos.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, notFoundAs(err, ErrPostNotFound, "find post")
	}
	count, err := repos.Reports.CountForPost(ctx, postID)
	if err != nil {
		return nil, persistenceError("count reports", err)
	}

	return &Evaluation{PostID: postID, Count: count, Hidden: post.Hidden}, nil
}

func (s *ReportService) reject(reporterID uuid.UUID, postID uint, err error) error {
	kind := KindOf(err)
	metrics.ReportRejectionsTotal.WithLabelValues(kind.String()).Inc()

	if kind == KindPersistence {
		slog.Error("report submission failed",
			"action", "report_post",
			"post_id", postID,
			"member_id", reporterID.String(),
			"error", err.Error(),
		)
	} else {
		slog.Info("report rejected",
			"action", "report_post",
			"post_id", postID,
			"member_id", reporterID.String(),
			"reason", kind.String(),
		)
	}
	return err
}

func notFoundAs(err error, notFound error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return persistenceError(op, err)
}
