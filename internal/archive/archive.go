// Package archive stores generated dungeons in SQLite or PostgreSQL so a
// seed's result can be inspected later without regenerating it.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lawnchairsociety/delve/internal/dungeon"
	"github.com/lawnchairsociety/delve/internal/logger"
	"github.com/lawnchairsociety/delve/internal/monster"
	"github.com/lawnchairsociety/delve/internal/theme"
)

// ErrNotFound is returned when no dungeon has the requested id.
var ErrNotFound = errors.New("archived dungeon not found")

// Archive wraps the database connection.
type Archive struct {
	db      *sql.DB
	dialect Dialect
}

// Summary describes one archived dungeon.
type Summary struct {
	ID        int64
	Seed      string
	RoomCount int
	CreatedAt time.Time
}

// RoomRecord is a stored room. Monster is empty for an empty room.
type RoomRecord struct {
	Index      int
	Keyword    string
	Difficulty float32
	Monster    string
	Exits      dungeon.Passages
}

// Open connects to the configured database and creates the schema.
func Open(cfg Config) (*Archive, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialect, err := dialectFor(cfg.Driver)
	if err != nil {
		return nil, err
	}

	if cfg.Driver == DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}
	dialect.ConfigurePool(db, cfg)

	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to initialize archive (%s): %w", stmt, err)
		}
	}

	a := &Archive{db: db, dialect: dialect}
	if err := a.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("Archive opened", "driver", cfg.Driver)
	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS dungeons (
			id ` + a.dialect.SerialPrimaryKey() + `,
			seed TEXT NOT NULL,
			room_count INTEGER NOT NULL,
			created_at BIGINT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS rooms (
			dungeon_id BIGINT NOT NULL REFERENCES dungeons(id) ON DELETE CASCADE,
			idx INTEGER NOT NULL,
			keyword TEXT NOT NULL,
			difficulty REAL NOT NULL,
			monster TEXT,
			PRIMARY KEY (dungeon_id, idx)
		)`,

		`CREATE TABLE IF NOT EXISTS passages (
			dungeon_id BIGINT NOT NULL REFERENCES dungeons(id) ON DELETE CASCADE,
			source INTEGER NOT NULL,
			direction TEXT NOT NULL,
			destination INTEGER NOT NULL,
			PRIMARY KEY (dungeon_id, source, direction)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_dungeons_seed ON dungeons(seed)`,
	}

	for _, m := range migrations {
		if _, err := a.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// SaveDungeon stores d under the given seed label and returns its id.
func (a *Archive) SaveDungeon(ctx context.Context, seed string, d *dungeon.Dungeon) (int64, error) {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id, err := a.insertDungeon(ctx, tx, seed, d.RoomCount())
	if err != nil {
		return 0, err
	}

	insertRoom := rebind(a.dialect, `INSERT INTO rooms (dungeon_id, idx, keyword, difficulty, monster) VALUES (?, ?, ?, ?, ?)`)
	insertPassage := rebind(a.dialect, `INSERT INTO passages (dungeon_id, source, direction, destination) VALUES (?, ?, ?, ?)`)

	for i, room := range d.Rooms() {
		var name sql.NullString
		if room.Monster != nil {
			name = sql.NullString{String: room.Monster.Name(), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, insertRoom, id, i, room.Keyword.String(), room.Difficulty, name); err != nil {
			return 0, fmt.Errorf("failed to insert room %d: %w", i, err)
		}
		for _, dir := range dungeon.AllCompassPoints() {
			dest, ok := d.Adjacent(i, dir)
			if !ok {
				continue
			}
			if _, err := tx.ExecContext(ctx, insertPassage, id, i, dir.String(), dest); err != nil {
				return 0, fmt.Errorf("failed to insert passage %d %s: %w", i, dir, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit dungeon: %w", err)
	}

	logger.Info("Dungeon archived", "id", id, "seed", seed, "rooms", d.RoomCount())
	return id, nil
}

func (a *Archive) insertDungeon(ctx context.Context, tx *sql.Tx, seed string, roomCount int) (int64, error) {
	query := rebind(a.dialect, `INSERT INTO dungeons (seed, room_count, created_at) VALUES (?, ?, ?)`)
	now := time.Now().Unix()

	if returning := a.dialect.Returning("id"); returning != "" {
		var id int64
		if err := tx.QueryRowContext(ctx, query+returning, seed, roomCount, now).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert dungeon: %w", err)
		}
		return id, nil
	}

	res, err := tx.ExecContext(ctx, query, seed, roomCount, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert dungeon: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read dungeon id: %w", err)
	}
	return id, nil
}

// ListDungeons returns every archived dungeon, newest first.
func (a *Archive) ListDungeons(ctx context.Context) ([]Summary, error) {
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, seed, room_count, created_at FROM dungeons ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list dungeons: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		var created int64
		if err := rows.Scan(&s.ID, &s.Seed, &s.RoomCount, &created); err != nil {
			return nil, fmt.Errorf("failed to scan dungeon: %w", err)
		}
		s.CreatedAt = time.Unix(created, 0)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// LoadRooms returns the rooms of an archived dungeon in index order.
func (a *Archive) LoadRooms(ctx context.Context, id int64) ([]RoomRecord, error) {
	var count int
	err := a.db.QueryRowContext(ctx, rebind(a.dialect, `SELECT room_count FROM dungeons WHERE id = ?`), id).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load dungeon %d: %w", id, err)
	}

	rows, err := a.db.QueryContext(ctx,
		rebind(a.dialect, `SELECT idx, keyword, difficulty, monster FROM rooms WHERE dungeon_id = ? ORDER BY idx`), id)
	if err != nil {
		return nil, fmt.Errorf("failed to load rooms: %w", err)
	}
	defer rows.Close()

	records := make([]RoomRecord, 0, count)
	for rows.Next() {
		var r RoomRecord
		var name sql.NullString
		if err := rows.Scan(&r.Index, &r.Keyword, &r.Difficulty, &name); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		r.Monster = name.String
		r.Exits = make(dungeon.Passages)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := a.loadPassages(ctx, id, records); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *Archive) loadPassages(ctx context.Context, id int64, records []RoomRecord) error {
	rows, err := a.db.QueryContext(ctx,
		rebind(a.dialect, `SELECT source, direction, destination FROM passages WHERE dungeon_id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to load passages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source, dest int
		var direction string
		if err := rows.Scan(&source, &direction, &dest); err != nil {
			return fmt.Errorf("failed to scan passage: %w", err)
		}
		dir, ok := dungeon.ParseCompassPoint(direction)
		if !ok || source < 0 || source >= len(records) {
			logger.Warning("Skipping corrupt passage", "dungeon_id", id, "source", source, "direction", direction)
			continue
		}
		records[source].Exits[dir] = dest
	}
	return rows.Err()
}

// LoadDungeon rebuilds an archived dungeon. Monsters are resolved by name
// against bestiary, which may be nil.
func (a *Archive) LoadDungeon(ctx context.Context, id int64, bestiary *monster.Bestiary) (*dungeon.Dungeon, error) {
	records, err := a.LoadRooms(ctx, id)
	if err != nil {
		return nil, err
	}

	rooms := make([]dungeon.Room, len(records))
	for i, r := range records {
		var m *monster.Monster
		if r.Monster != "" {
			resolved := bestiary.Resolve(r.Monster)
			m = &resolved
		}
		rooms[i] = dungeon.NewRoom(theme.New(r.Keyword), m)
		rooms[i].Difficulty = r.Difficulty
	}

	d := dungeon.New(rooms)
	for _, r := range records {
		for dir, dest := range r.Exits {
			if dest < 0 || dest >= len(rooms) {
				return nil, fmt.Errorf("dungeon %d: passage from room %d leads to missing room %d", id, r.Index, dest)
			}
			d.CreatePassage(r.Index, dir, dest)
		}
	}
	return d, nil
}

// DeleteDungeon removes an archived dungeon with its rooms and passages.
func (a *Archive) DeleteDungeon(ctx context.Context, id int64) error {
	res, err := a.db.ExecContext(ctx, rebind(a.dialect, `DELETE FROM dungeons WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete dungeon %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}
