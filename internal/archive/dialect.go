package archive

import (
	"database/sql"
	"fmt"
)

// Driver names accepted in Config.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Dialect is what the archive needs to know about a SQL backend.
type Dialect interface {
	DriverName() string

	// DSN builds the data source passed to sql.Open.
	DSN(cfg Config) string

	// Placeholder renders the n-th bind parameter, counting from 1.
	Placeholder(n int) string

	// Returning is appended to an INSERT to read back a generated key. An
	// empty result means the driver reports it through LastInsertId.
	Returning(column string) string

	SerialPrimaryKey() string

	// InitStatements run once on a fresh pool, before migrations.
	InitStatements() []string

	ConfigurePool(db *sql.DB, cfg Config)
}

func dialectFor(driver string) (Dialect, error) {
	switch driver {
	case DriverSQLite:
		return sqliteDialect{}, nil
	case DriverPostgres:
		return postgresDialect{}, nil
	}
	return nil, fmt.Errorf("archive: unknown driver %q", driver)
}
