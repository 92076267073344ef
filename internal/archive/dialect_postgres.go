package archive

import (
	"database/sql"
	"strconv"

	_ "github.com/lib/pq"
)

// postgresDialect drives lib/pq.
type postgresDialect struct{}

func (postgresDialect) DriverName() string { return "postgres" }
func (postgresDialect) DSN(cfg Config) string { return cfg.Postgres.ConnString() }
func (postgresDialect) Placeholder(n int) string { return "$" + strconv.Itoa(n) }
func (postgresDialect) SerialPrimaryKey() string { return "BIGSERIAL PRIMARY KEY" }

func (postgresDialect) Returning(column string) string {
	return " RETURNING " + column
}

// InitStatements is empty: PostgreSQL always enforces foreign keys.
func (postgresDialect) InitStatements() []string {
	return nil
}

func (postgresDialect) ConfigurePool(db *sql.DB, cfg Config) {
	pg := cfg.Postgres
	if pg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(pg.MaxOpenConns)
	}
	if pg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(pg.MaxIdleConns)
	}
	if pg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(pg.ConnMaxLifetime)
	}
}
