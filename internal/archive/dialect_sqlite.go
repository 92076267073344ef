package archive

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// sqliteDialect drives modernc.org/sqlite.
type sqliteDialect struct{}

func (sqliteDialect) DriverName() string { return "sqlite" }
func (sqliteDialect) DSN(cfg Config) string { return cfg.SQLitePath }
func (sqliteDialect) Placeholder(int) string { return "?" }
func (sqliteDialect) Returning(string) string { return "" }
func (sqliteDialect) SerialPrimaryKey() string { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

func (sqliteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

// ConfigurePool pins the pool to one connection so the PRAGMAs above hold
// for every statement.
func (sqliteDialect) ConfigurePool(db *sql.DB, _ Config) {
	db.SetMaxOpenConns(1)
}
