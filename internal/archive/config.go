package archive

import (
	"fmt"
	"time"
)

// Config holds archive connection configuration.
type Config struct {
	// Driver selects the database: "sqlite" or "postgres"
	Driver string `yaml:"driver" env:"DELVE_ARCHIVE_DRIVER"`

	// SQLitePath is the database file used by the sqlite driver
	SQLitePath string `yaml:"sqlite_path" env:"DELVE_ARCHIVE_SQLITE_PATH"`

	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific configuration.
type PostgresConfig struct {
	Host     string `yaml:"host" env:"DELVE_PG_HOST"`
	Port     int    `yaml:"port" env:"DELVE_PG_PORT"`
	User     string `yaml:"user" env:"DELVE_PG_USER"`
	Password string `yaml:"password" env:"DELVE_PG_PASSWORD"`
	Database string `yaml:"database" env:"DELVE_PG_DATABASE"`
	SSLMode  string `yaml:"sslmode" env:"DELVE_PG_SSLMODE"`

	// Connection pool settings
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

// DefaultConfig returns a Config storing dungeons in a local SQLite file.
func DefaultConfig(sqlitePath string) Config {
	return Config{
		Driver:     DriverSQLite,
		SQLitePath: sqlitePath,
		Postgres:   DefaultPostgresConfig(),
	}
}

// DefaultPostgresConfig returns PostgresConfig with recommended pool settings.
func DefaultPostgresConfig() PostgresConfig {
	return PostgresConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "delve",
		Database:        "delve",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// Validate checks that the selected driver has what it needs to connect.
func (c Config) Validate() error {
	switch c.Driver {
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("archive: sqlite driver needs sqlite_path")
		}
	case DriverPostgres:
		if c.Postgres.Host == "" || c.Postgres.Database == "" {
			return fmt.Errorf("archive: postgres driver needs host and database")
		}
	default:
		return fmt.Errorf("archive: unknown driver %q", c.Driver)
	}
	return nil
}

// ConnString returns the lib/pq keyword/value connection string.
func (p PostgresConfig) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}
