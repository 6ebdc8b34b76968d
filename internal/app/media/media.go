// Package media abstracts the external store holding uploaded assets
// (avatars, banners, featured images). Deletion workflows reclaim assets
// through it as a best-effort step.
package media

import (
	"context"

	"go.uber.org/zap"
)

// Store is the media backend.
type Store interface {
	// Delete removes the asset identified by mediaID. Deleting an unknown
	// asset returns (false, nil).
	Delete(ctx context.Context, mediaID string) (bool, error)
}

// Disabled is the backend used when no media store is configured. Deletes
// are logged and reported as not performed, never as failures.
type Disabled struct {
	Log *zap.Logger
}

func (d *Disabled) Delete(ctx context.Context, mediaID string) (bool, error) {
	d.Log.Warn("media store not configured, skipping asset reclamation", zap.String("media_id", mediaID))
	return false, nil
}
