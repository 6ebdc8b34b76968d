// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/codelitdev/coursehub/internal/domain/models"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return ensureDefaultDomain(ctx, deps, appCfg, logger)
}

// ensureDefaultDomain creates the first tenant when the domains collection
// is empty, seeding its media reclaim field list from config. A deployment
// that already has domains is left untouched.
func ensureDefaultDomain(ctx context.Context, deps DBDeps, appCfg AppConfig, logger *zap.Logger) error {
	col := deps.MongoDatabase.Collection("domains")

	var existing models.Domain
	err := col.FindOne(ctx, bson.M{}).Decode(&existing)
	if err == nil {
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	now := time.Now().UTC()
	d := models.Domain{
		ID:   primitive.NewObjectID(),
		Name: appCfg.DefaultDomainName,
		Settings: models.DomainSettings{
			MediaReclaimFields: appCfg.MediaReclaimFields,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := col.InsertOne(ctx, d); err != nil {
		return err
	}
	logger.Info("created default domain",
		zap.String("name", d.Name),
		zap.String("domain_id", d.ID.Hex()))
	return nil
}
