// Package communities exposes the community API: deletion, membership
// administration, and the comment thread endpoints.
package communities

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/codelitdev/coursehub/internal/app/store/comments"
	"github.com/codelitdev/coursehub/internal/app/store/memberships"
	"github.com/codelitdev/coursehub/internal/app/workflow/deletion"
)

// Handler is the shared dependency container for the communities feature.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Workflows *deletion.Workflows

	memberships *membershipstore.Store
	comments    *commentstore.Store
}

// NewHandler constructs a communities Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger, workflows *deletion.Workflows) *Handler {
	return &Handler{
		DB:          db,
		Log:         logger,
		Workflows:   workflows,
		memberships: membershipstore.New(db),
		comments:    commentstore.New(db),
	}
}
