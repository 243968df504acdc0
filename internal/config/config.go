package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Lexicon   LexiconConfig   `yaml:"lexicon"`
	Vocab     VocabConfig     `yaml:"vocab"`
	Import    ImportConfig    `yaml:"import"`
	Admin     AdminConfig     `yaml:"admin"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Admin-Key,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig holds connection settings for the vocabulary store.
// Driver "postgres" uses DSN; driver "sqlite" uses SQLitePath.
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"             env:"DATABASE_DRIVER"             env-default:"postgres"`
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	SQLitePath      string        `yaml:"sqlite_path"        env:"DATABASE_SQLITE_PATH"        env-default:"./vocab.db"`
	AutoMigrate     bool          `yaml:"auto_migrate"       env:"DATABASE_AUTO_MIGRATE"       env-default:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LexiconConfig holds settings of the local dictionary dataset.
//
// Source is a URL: a bare path or file://, http(s)://, s3://bucket/key or
// minio://bucket/key. A .gz, .zst or .lz4 suffix selects decompression.
type LexiconConfig struct {
	Source         string        `yaml:"source"           env:"LEXICON_SOURCE"           env-default:"./public/cedict.json"`
	LoadTimeout    time.Duration `yaml:"load_timeout"     env:"LEXICON_LOAD_TIMEOUT"     env-default:"2m"`
	S3Region       string        `yaml:"s3_region"        env:"LEXICON_S3_REGION"`
	S3Endpoint     string        `yaml:"s3_endpoint"      env:"LEXICON_S3_ENDPOINT"`
	MinioEndpoint  string        `yaml:"minio_endpoint"   env:"LEXICON_MINIO_ENDPOINT"`
	MinioAccessKey string        `yaml:"minio_access_key" env:"LEXICON_MINIO_ACCESS_KEY"`
	MinioSecretKey string        `yaml:"minio_secret_key" env:"LEXICON_MINIO_SECRET_KEY"`
	MinioUseSSL    bool          `yaml:"minio_use_ssl"    env:"LEXICON_MINIO_USE_SSL"    env-default:"true"`
}

// VocabConfig holds vocabulary browsing settings.
type VocabConfig struct {
	PageSize    int           `yaml:"page_size"    env:"VOCAB_PAGE_SIZE"    env-default:"50"`
	MaxSessions int           `yaml:"max_sessions" env:"VOCAB_MAX_SESSIONS" env-default:"1000"`
	SessionTTL  time.Duration `yaml:"session_ttl"  env:"VOCAB_SESSION_TTL"  env-default:"30m"`
}

// ImportConfig describes the column layout of bulk vocabulary text.
// Columns are: level, traditional, simplified, pinyin, english.
type ImportConfig struct {
	Delimiter   string `yaml:"delimiter"    env:"IMPORT_DELIMITER"    env-default:","`
	ColumnCount int    `yaml:"column_count" env:"IMPORT_COLUMN_COUNT" env-default:"5"`
	LevelColumn int    `yaml:"level_column" env:"IMPORT_LEVEL_COLUMN" env-default:"0"`
	MinLevel    int    `yaml:"min_level"    env:"IMPORT_MIN_LEVEL"    env-default:"1"`
	MaxLevel    int    `yaml:"max_level"    env:"IMPORT_MAX_LEVEL"    env-default:"6"`
}

// AdminConfig holds the bcrypt hash of the admin console key.
// An empty hash disables the admin endpoints.
type AdminConfig struct {
	KeyHash string `yaml:"key_hash" env:"ADMIN_KEY_HASH"`
}

// RateLimitConfig holds per-IP request limits.
type RateLimitConfig struct {
	Enabled         bool          `yaml:"enabled"          env:"RATE_LIMIT_ENABLED"          env-default:"true"`
	PerMinute       int           `yaml:"per_minute"       env:"RATE_LIMIT_PER_MINUTE"       env-default:"600"`
	Burst           int           `yaml:"burst"            env:"RATE_LIMIT_BURST"            env-default:"60"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"5m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
