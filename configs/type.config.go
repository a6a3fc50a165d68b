package config

import (
	"efood-checkout/internal/common/enum"
	database "efood-checkout/internal/pkg/db"
	"time"
)

// Config holds all application configuration loaded from environment variables
type Config struct {
	AppEnv  enum.EnvEnum `env:"APP_ENV" envDefault:"development" validate:"enum"`
	AppPort int          `env:"APP_PORT" envDefault:"8080" validate:"min=1,max=65535"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console" validate:"oneof=console json"`

	CatalogBaseURL      string        `env:"CATALOG_BASE_URL" envDefault:"https://fake-api-tau.vercel.app/api/efood" validate:"required,url"`
	CatalogPurchasePath string        `env:"CATALOG_PURCHASE_PATH" envDefault:"checkout"`
	CatalogTimeout      time.Duration `env:"CATALOG_TIMEOUT" envDefault:"15s"`
	CatalogCacheTTL     time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"5m"`

	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionLockTTL time.Duration `env:"SESSION_LOCK_TTL" envDefault:"10s"`
	JWTSecret      string        `env:"JWT_SECRET" envDefault:""`

	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort     int    `env:"REDIS_PORT" envDefault:"6379"`
	RedisUser     string `env:"REDIS_USER" envDefault:""`
	RedisPass     string `env:"REDIS_PASS" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
	RedisPoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"10"`

	RabbitHost string `env:"RABBIT_HOST" envDefault:"localhost"`
	RabbitPort int    `env:"RABBIT_PORT" envDefault:"5672"`
	RabbitUser string `env:"RABBIT_USER" envDefault:"guest"`
	RabbitPass string `env:"RABBIT_PASS" envDefault:"guest"`
	RabbitURI  string `env:"RABBIT_URI" envDefault:""`

	DBDriver     database.DriverEnum `env:"DB_DRIVER" envDefault:"postgres" validate:"enum"`
	DBHost       string              `env:"DB_HOST" envDefault:"localhost"`
	DBPort       int                 `env:"DB_PORT" envDefault:"5432"`
	DBUser       string              `env:"DB_USER" envDefault:"postgres"`
	DBPass       string              `env:"DB_PASS" envDefault:""`
	DBName       string              `env:"DB_NAME" envDefault:"efood"`
	DBSSLMode    string              `env:"DB_SSLMODE" envDefault:"disable"`
	DBCache      bool                `env:"DB_CACHE" envDefault:"true"`
	DBCacheTime  time.Duration       `env:"DB_CACHE_TIME" envDefault:"1m"`

	// S3 receipts are skipped when AWS_BUCKET_NAME is empty.
	AWSAccessKeyID     string `env:"AWS_ACCESS_KEY_ID" envDefault:""`
	AWSSecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" envDefault:""`
	AWSRegion          string `env:"AWS_REGION" envDefault:"us-east-1"`
	AWSEndpoint        string `env:"AWS_ENDPOINT" envDefault:""`
	AWSBucketName      string `env:"AWS_BUCKET_NAME" envDefault:""`
}
