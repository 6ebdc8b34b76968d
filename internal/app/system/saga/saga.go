// Package saga runs an ordered list of idempotent steps against the
// document store without a transaction manager.
//
// The store gives no multi-document atomicity, so a deletion that fails
// partway through leaves partial state behind. The recovery contract is
// idempotent re-execution: every step must be safe to run again (delete-all,
// pull-from-array, reassign-once), and the runner can optionally persist a
// per-step completion marker so a retry skips work that already finished.
//
// Steps come in two kinds. Required steps abort the run on failure.
// BestEffort steps cover external calls (payment cancellation, media
// deletion) whose failure must not block the surrounding deletion; those are
// logged and the run continues.
package saga

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Kind classifies a step's failure policy.
type Kind int

const (
	// Required steps abort the workflow when they fail.
	Required Kind = iota
	// BestEffort steps log their failure and let the workflow continue.
	BestEffort
)

// Step is one phase of a workflow. Name must be stable across releases when
// a ProgressRecorder is in use, because it keys the completion marker.
type Step struct {
	Name string
	Kind Kind
	Run  func(ctx context.Context) error
}

// ProgressRecorder persists which steps of a workflow run have completed so
// a retried run converges instead of re-applying everything. Implementations
// must tolerate markers for runs that already finished.
type ProgressRecorder interface {
	Completed(ctx context.Context, workflow string, subject primitive.ObjectID) (map[string]bool, error)
	MarkDone(ctx context.Context, workflow string, subject primitive.ObjectID, step string) error
	Clear(ctx context.Context, workflow string, subject primitive.ObjectID) error
}

// Runner executes workflows. Progress is optional; without it every step
// runs on every invocation, which is correct (steps are idempotent) but
// repeats external best-effort calls on retry.
type Runner struct {
	Log      *zap.Logger
	Progress ProgressRecorder
}

// Run executes the steps in order. Subject identifies the entity the
// workflow is deleting and scopes the progress markers.
func (r *Runner) Run(ctx context.Context, workflow string, subject primitive.ObjectID, steps []Step) error {
	done := map[string]bool{}
	if r.Progress != nil {
		var err error
		done, err = r.Progress.Completed(ctx, workflow, subject)
		if err != nil {
			return fmt.Errorf("load progress for %s: %w", workflow, err)
		}
	}

	for _, step := range steps {
		if done[step.Name] {
			r.Log.Debug("skipping completed step",
				zap.String("workflow", workflow),
				zap.String("step", step.Name))
			continue
		}

		if err := step.Run(ctx); err != nil {
			if step.Kind == BestEffort {
				r.Log.Warn("best-effort step failed, continuing",
					zap.String("workflow", workflow),
					zap.String("step", step.Name),
					zap.String("subject", subject.Hex()),
					zap.Error(err))
			} else {
				return fmt.Errorf("%s: step %s: %w", workflow, step.Name, err)
			}
		}

		if r.Progress != nil {
			if err := r.Progress.MarkDone(ctx, workflow, subject, step.Name); err != nil {
				return fmt.Errorf("mark step %s done: %w", step.Name, err)
			}
		}
	}

	if r.Progress != nil {
		if err := r.Progress.Clear(ctx, workflow, subject); err != nil {
			// The run itself succeeded; stale markers only cost a lookup on
			// a retry that will find the subject gone anyway.
			r.Log.Warn("clear progress failed",
				zap.String("workflow", workflow),
				zap.String("subject", subject.Hex()),
				zap.Error(err))
		}
	}
	return nil
}
