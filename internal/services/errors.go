package services

import (
	"errors"
	"fmt"
)

const maxCategoryLength = 50

var (
	ErrSelfReport      = errors.New("cannot report your own post")
	ErrDuplicateReport = errors.New("post already reported by this member")
	ErrInvalidCategory = fmt.Errorf("category is required and must be at most %d characters", maxCategoryLength)
	ErrPostNotFound    = errors.New("post not found")
	ErrMemberNotFound  = errors.New("member not found")
	ErrNotWriter       = errors.New("only the writer can modify this post")
	ErrRejectedContent = errors.New("content does not meet board guidelines")
	ErrPersistence     = errors.New("storage failure, please retry")
)

// ErrorKind classifies service errors so handlers and metrics do not
// have to enumerate sentinels themselves.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindSelfReport
	KindDuplicate
	KindInvalidInput
	KindPostNotFound
	KindMemberNotFound
	KindForbidden
	KindPersistence
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindSelfReport:
		return "self_report"
	case KindDuplicate:
		return "duplicate"
	case KindInvalidInput:
		return "invalid_input"
	case KindPostNotFound:
		return "post_not_found"
	case KindMemberNotFound:
		return "member_not_found"
	case KindForbidden:
		return "forbidden"
	default:
		return "persistence"
	}
}

// KindOf maps err to its ErrorKind. Unclassified errors are persistence failures.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrSelfReport):
		return KindSelfReport
	case errors.Is(err, ErrDuplicateReport):
		return KindDuplicate
	case errors.Is(err, ErrInvalidCategory), errors.Is(err, ErrRejectedContent):
		return KindInvalidInput
	case errors.Is(err, ErrPostNotFound):
		return KindPostNotFound
	case errors.Is(err, ErrMemberNotFound):
		return KindMemberNotFound
	case errors.Is(err, ErrNotWriter):
		return KindForbidden
	default:
		return KindPersistence
	}
}

func persistenceError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}

// classify keeps classified errors as they are and wraps everything else as a persistence failure.
func classify(op string, err error) error {
	if err == nil || KindOf(err) != KindPersistence || errors.Is(err, ErrPersistence) {
		return err
	}
	return persistenceError(op, err)
}
