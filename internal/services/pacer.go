package services

import (
	"context"
	"time"
)

// pacer spaces out transitions between authenticated views. The holds are
// purely cosmetic: they make view changes feel deliberate instead of abrupt,
// and nothing reads their outcome.
type pacer struct {
	preCommitHold  time.Duration
	postCommitHold time.Duration
}

func newPacer(preCommit, postCommit time.Duration) *pacer {
	return &pacer{
		preCommitHold:  preCommit,
		postCommitHold: postCommit,
	}
}

// hold sleeps for d unless the context ends first. Cancellation is not an
// error here, a caller that has gone away just stops waiting.
func hold(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// pace runs commit between the two holds and returns its result. The view
// change itself happens in commit; the holds only pad it.
func (p *pacer) pace(ctx context.Context, commit func() error) error {
	hold(ctx, p.preCommitHold)
	if err := commit(); err != nil {
		return err
	}
	hold(ctx, p.postCommitHold)
	return nil
}
