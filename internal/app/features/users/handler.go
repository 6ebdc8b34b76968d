// Package users exposes the account management API.
package users

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/codelitdev/coursehub/internal/app/workflow/deletion"
)

// Handler is the shared dependency container for the users feature.
type Handler struct {
	DB        *mongo.Database
	Log       *zap.Logger
	Workflows *deletion.Workflows
}

// NewHandler constructs a users Handler. It is called from the bootstrap
// BuildHandler function, where the DB, logger, and workflows are already
// initialized.
func NewHandler(db *mongo.Database, logger *zap.Logger, workflows *deletion.Workflows) *Handler {
	return &Handler{
		DB:        db,
		Log:       logger,
		Workflows: workflows,
	}
}
