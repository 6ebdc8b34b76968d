// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CourseHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: COURSEHUB_MONGO_URI, COURSEHUB_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "coursehub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Bearer token signing secret (must be strong in production)"},

	// Media storage configuration
	{Name: "media_storage", Default: "off", Desc: "Media backend: 's3' or 'off'"},
	{Name: "media_s3_region", Default: "", Desc: "AWS region for the media bucket"},
	{Name: "media_s3_bucket", Default: "", Desc: "S3 bucket holding uploaded media"},
	{Name: "media_s3_prefix", Default: "media/", Desc: "S3 key prefix"},
	{Name: "media_s3_access_key_id", Default: "", Desc: "AWS access key id (blank uses the default credential chain)"},
	{Name: "media_s3_secret_access_key", Default: "", Desc: "AWS secret access key"},
	{Name: "media_reclaim_fields", Default: "featured_image,banner", Desc: "Comma-separated community fields whose media is reclaimed on deletion"},

	// Deletion workflow configuration
	{Name: "deletion_progress", Default: true, Desc: "Persist per-step deletion checkpoints in MongoDB"},

	// First-run bootstrap
	{Name: "default_domain_name", Default: "main", Desc: "Tenant created on startup when no domain exists"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have access
// to configuration before any backends or handlers are built. WAFFLE's
// config.LoadWithAppConfig merges .env files, config files, COURSEHUB_*
// environment variables, and command-line flags, with precedence
// flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "COURSEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret: appValues.String("jwt_secret"),

		MediaStorage:           appValues.String("media_storage"),
		MediaS3Region:          appValues.String("media_s3_region"),
		MediaS3Bucket:          appValues.String("media_s3_bucket"),
		MediaS3Prefix:          appValues.String("media_s3_prefix"),
		MediaS3AccessKeyID:     appValues.String("media_s3_access_key_id"),
		MediaS3SecretAccessKey: appValues.String("media_s3_secret_access_key"),
		MediaReclaimFields:     splitFields(appValues.String("media_reclaim_fields")),

		DeletionProgress: appValues.Bool("deletion_progress"),

		DefaultDomainName: appValues.String("default_domain_name"),
	}

	return coreCfg, appCfg, nil
}

func splitFields(raw string) []string {
	var out []string
	for _, f := range strings.Split(raw, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// CourseHub validates the MongoDB URI format to catch configuration errors
// early, before attempting to connect, and refuses a half-configured S3
// media backend.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.MediaStorage {
	case "off":
	case "s3":
		if appCfg.MediaS3Region == "" || appCfg.MediaS3Bucket == "" {
			return fmt.Errorf("media_storage 's3' requires media_s3_region and media_s3_bucket")
		}
	default:
		return fmt.Errorf("media_storage must be 's3' or 'off', got %q", appCfg.MediaStorage)
	}

	if coreCfg.Env == "prod" && appCfg.JWTSecret == "dev-only-change-me-please-0123456789ABCDEF" {
		return fmt.Errorf("jwt_secret must be changed from the development default in production")
	}

	return nil
}
