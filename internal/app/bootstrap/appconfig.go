// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig handles
// framework-level settings (ports, TLS, logging, CORS); AppConfig is where
// everything specific to this application lives.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// API token configuration
	JWTSecret string // Secret for signing bearer tokens (must be strong in production)

	// Media storage configuration
	MediaStorage           string // Media backend: "s3" or "off"
	MediaS3Region          string
	MediaS3Bucket          string
	MediaS3Prefix          string
	MediaS3AccessKeyID     string
	MediaS3SecretAccessKey string

	// MediaReclaimFields names the community document fields whose media is
	// reclaimed on community deletion, used when a domain has not set its
	// own list.
	MediaReclaimFields []string

	// DeletionProgress enables durable per-step checkpoints for the
	// deletion workflows so a retried run skips completed phases.
	DeletionProgress bool

	// DefaultDomainName is the tenant created on first startup when the
	// domains collection is empty.
	DefaultDomainName string
}
