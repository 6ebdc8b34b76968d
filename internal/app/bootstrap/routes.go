// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	communitiesfeature "github.com/codelitdev/coursehub/internal/app/features/communities"
	healthfeature "github.com/codelitdev/coursehub/internal/app/features/health"
	usersfeature "github.com/codelitdev/coursehub/internal/app/features/users"
	"github.com/codelitdev/coursehub/internal/app/media"
	"github.com/codelitdev/coursehub/internal/app/payments"
	"github.com/codelitdev/coursehub/internal/app/system/auth"
	"github.com/codelitdev/coursehub/internal/app/system/saga"
	"github.com/codelitdev/coursehub/internal/app/workflow/deletion"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It wires the media backend, the payment
// resolver, and the deletion workflows, then mounts the feature routers.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	authMgr := auth.NewManager(appCfg.JWTSecret, deps.MongoDatabase, logger)

	var mediaStore media.Store
	if appCfg.MediaStorage == "s3" {
		s3Store, err := media.NewS3(context.Background(), media.S3Config{
			Region:          appCfg.MediaS3Region,
			Bucket:          appCfg.MediaS3Bucket,
			Prefix:          appCfg.MediaS3Prefix,
			AccessKeyID:     appCfg.MediaS3AccessKeyID,
			SecretAccessKey: appCfg.MediaS3SecretAccessKey,
		}, logger)
		if err != nil {
			logger.Error("s3 media backend init failed", zap.Error(err))
			return nil, err
		}
		mediaStore = s3Store
	} else {
		mediaStore = &media.Disabled{Log: logger}
	}

	var progress saga.ProgressRecorder
	if appCfg.DeletionProgress {
		progress = saga.NewMongoProgress(deps.MongoDatabase)
	}

	workflows := deletion.New(deps.MongoDatabase, logger, payments.Resolve, mediaStore, progress)

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// API routes. LoadSession parses the bearer token and loads a fresh
	// user document per request, so permission changes and deactivations
	// take effect immediately; handlers reject missing sessions themselves.
	r.Route("/api", func(api chi.Router) {
		api.Use(authMgr.LoadSession)

		usersHandler := usersfeature.NewHandler(deps.MongoDatabase, logger, workflows)
		api.Mount("/users", usersfeature.Routes(usersHandler))

		communitiesHandler := communitiesfeature.NewHandler(deps.MongoDatabase, logger, workflows)
		api.Mount("/communities", communitiesfeature.Routes(communitiesHandler))
	})

	return r, nil
}
