package config

import (
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	env "github.com/qiangxue/go-env"
	"github.com/moalemy/salla-webhook/pkg/log"
	"gopkg.in/yaml.v2"
)

const (
	defaultServerPort         = 8080
	defaultJWTExpirationHours = 72
	defaultAuthPageSize       = 200
	defaultResolverCacheTTL   = 300 // seconds
)

// Config represents an application configuration.
type Config struct {
	// the server port. Defaults to 8080
	ServerPort int `yaml:"server_port" env:"SERVER_PORT"`
	// the data source name (DSN) for connecting to the database. required.
	DSN string `yaml:"dsn" env:"DATABASE_URL,secret"`
	// base URL of the auth service whose admin API lists registered users. required.
	SupabaseURL string `yaml:"supabase_url" env:"SUPABASE_URL"`
	// service role key used to call the auth admin API. required.
	ServiceRoleKey string `yaml:"service_role_key" env:"SUPABASE_SERVICE_ROLE_KEY,secret"`
	// shared secret the store must send with every webhook. Empty disables the check.
	WebhookSecret string `yaml:"webhook_secret" env:"WEBHOOK_STORE_SECRET,secret"`
	// JWT signing key for the ops API. required.
	JWTSigningKey string `yaml:"jwt_signing_key" env:"JWT_SIGNING_KEY,secret"`
	// JWT expiration in hours. Defaults to 72 hours (3 days)
	JWTExpiration int `yaml:"jwt_expiration" env:"JWT_EXPIRATION"`
	// operator credentials for the ops API login. required.
	OperatorUsername string `yaml:"operator_username" env:"OPERATOR_USERNAME"`
	OperatorPassword string `yaml:"operator_password" env:"OPERATOR_PASSWORD,secret"`
	// page size used when listing users through the auth admin API
	AuthPageSize int `yaml:"auth_page_size" env:"AUTH_PAGE_SIZE"`
	// Redis address for the resolver cache. Empty disables the cache.
	RedisAddr string `yaml:"redis_addr" env:"REDIS_ADDR"`
	// resolver cache TTL in seconds
	ResolverCacheTTL int `yaml:"resolver_cache_ttl" env:"RESOLVER_CACHE_TTL"`
	// S3-compatible storage for archiving raw webhook payloads. Empty bucket disables archiving.
	ArchiveBucket          string `yaml:"archive_bucket" env:"ARCHIVE_BUCKET"`
	ArchiveAccountID       string `yaml:"archive_account_id" env:"ARCHIVE_ACCOUNT_ID"`
	ArchiveAccessKeyID     string `yaml:"archive_access_key_id" env:"ARCHIVE_ACCESS_KEY_ID,secret"`
	ArchiveAccessKeySecret string `yaml:"archive_access_key_secret" env:"ARCHIVE_ACCESS_KEY_SECRET,secret"`
}

// Validate validates the application configuration.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DSN, validation.Required),
		validation.Field(&c.SupabaseURL, validation.Required),
		validation.Field(&c.ServiceRoleKey, validation.Required),
		validation.Field(&c.JWTSigningKey, validation.Required),
		validation.Field(&c.OperatorUsername, validation.Required),
		validation.Field(&c.OperatorPassword, validation.Required),
	)
}

// Load returns an application configuration which is populated from the given configuration file and environment variables.
func Load(file string, logger log.Logger) (*Config, error) {
	// default config
	c := Config{
		ServerPort:       defaultServerPort,
		JWTExpiration:    defaultJWTExpirationHours,
		AuthPageSize:     defaultAuthPageSize,
		ResolverCacheTTL: defaultResolverCacheTTL,
	}

	// load from YAML config file
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	if err = yaml.Unmarshal(bytes, &c); err != nil {
		return nil, err
	}

	// load from environment variables with no prefix so that the names the
	// deployment platform provides (SUPABASE_URL etc.) are used as-is
	if err = env.New("", logger.Infof).Load(&c); err != nil {
		return nil, err
	}

	// validation
	if err = c.Validate(); err != nil {
		return nil, err
	}

	return &c, err
}
