package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Database.validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}

	if strings.TrimSpace(c.Lexicon.Source) == "" {
		return fmt.Errorf("lexicon.source is required")
	}

	if c.Vocab.PageSize <= 0 {
		return fmt.Errorf("vocab.page_size must be > 0 (got %d)", c.Vocab.PageSize)
	}
	if c.Vocab.MaxSessions <= 0 {
		return fmt.Errorf("vocab.max_sessions must be > 0 (got %d)", c.Vocab.MaxSessions)
	}

	if err := c.Import.validate(); err != nil {
		return fmt.Errorf("import: %w", err)
	}

	if c.Admin.KeyHash != "" {
		if _, err := bcrypt.Cost([]byte(c.Admin.KeyHash)); err != nil {
			return fmt.Errorf("admin.key_hash is not a bcrypt hash: %w", err)
		}
	}

	if c.RateLimit.Enabled && c.RateLimit.PerMinute <= 0 {
		return fmt.Errorf("rate_limit.per_minute must be > 0 (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}

func (d *DatabaseConfig) validate() error {
	switch d.Driver {
	case DriverPostgres:
		if d.DSN == "" {
			return fmt.Errorf("dsn is required for driver %q", d.Driver)
		}
	case DriverSQLite:
		if d.SQLitePath == "" {
			return fmt.Errorf("sqlite_path is required for driver %q", d.Driver)
		}
	default:
		return fmt.Errorf("unsupported driver %q", d.Driver)
	}
	return nil
}

func (i *ImportConfig) validate() error {
	if i.Delimiter == "" {
		return fmt.Errorf("delimiter must not be empty")
	}
	// level plus traditional, simplified, pinyin and english
	if i.ColumnCount < 5 {
		return fmt.Errorf("column_count must be >= 5 (got %d)", i.ColumnCount)
	}
	if i.LevelColumn < 0 || i.LevelColumn >= i.ColumnCount {
		return fmt.Errorf("level_column must be within [0, %d) (got %d)", i.ColumnCount, i.LevelColumn)
	}
	if i.MinLevel > i.MaxLevel {
		return fmt.Errorf("min_level %d exceeds max_level %d", i.MinLevel, i.MaxLevel)
	}
	return nil
}
