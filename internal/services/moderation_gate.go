package services

import (
	"context"

	"github.com/anotherclass/colortherock/internal/repository"
)

// HideThreshold is the number of reports that hides a post.
const HideThreshold int64 = 5

// Evaluation is a post's report count and visibility after a gate pass.
type Evaluation struct {
	PostID  uint
	Count   int64
	Hidden  bool
	Flipped bool // this pass hid the post
}

// ModerationGate hides a post once its report count reaches the threshold.
// The hide is a single conditional UPDATE that recounts reports inside the
// database, so an already hidden post is never written twice and never unhidden.
type ModerationGate struct {
	threshold int64
}

func NewModerationGate(threshold int64) *ModerationGate {
	if threshold <= 0 {
		threshold = HideThreshold
	}
	return &ModerationGate{threshold: threshold}
}

func (g *ModerationGate) Threshold() int64 {
	return g.threshold
}

// Evaluate must be called with repositories bound to the transaction that
// holds the post's row lock.
func (g *ModerationGate) Evaluate(ctx context.Context, repos *repository.Repositories, postID uint) (*Evaluation, error) {
	affected, err := repos.Posts.SetHiddenIfCountAtLeast(ctx, postID, g.threshold)
	if err != nil {
		return nil, persistenceError("hide post", err)
	}

	count, err := repos.Reports.CountForPost(ctx, postID)
	if err != nil {
		return nil, persistenceError("count reports", err)
	}

	post, err := repos.Posts.FindByID(ctx, postID)
	if err != nil {
		return nil, notFoundAs(err, ErrPostNotFound, "reload post")
	}

	return &Evaluation{
		PostID:  postID,
		Count:   count,
		Hidden:  post.Hidden,
		Flipped: affected > 0,
	}, nil
}
