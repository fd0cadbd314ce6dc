// Package sqlite implements todo's Database and TaskRepo interfaces
package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/benjamonnguyen/todo"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var Migrations embed.FS

const (
	migrationsDir = "migrations"

	versionCreateTasks   = 1
	versionAddFinishedAt = 2
)

type database struct {
	conn *sql.DB
	l    todo.Logger
}

var _ todo.Database = (*database)(nil)

func Open(url string, logger todo.Logger) (*database, error) {
	conn, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, err
	}
	// single handle for the process; also keeps a ":memory:" database alive
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open %s: %w", url, err)
	}

	return &database{
		conn: conn,
		l:    logger,
	}, nil
}

func (db *database) Conn() *sql.DB {
	return db.conn
}

func (db *database) Migrate(migrations fs.FS) error {
	src, err := iofs.New(migrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}
	d, err := migratesqlite.WithInstance(db.conn, &migratesqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", d)
	if err != nil {
		return err
	}
	m.Log = migrateLogger{l: db.l}

	if err := db.baseline(m); err != nil {
		return fmt.Errorf("failed to baseline schema: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed migration: %w", err)
	}

	version, _, _ := m.Version()
	db.l.Debug("migrated database", "version", version)
	return nil
}

// baseline stamps a version on a tasks table that predates migration
// tracking, so that only the missing additive migrations run against it.
func (db *database) baseline(m *migrate.Migrate) error {
	if _, _, err := m.Version(); !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	hasTasks, err := db.hasColumn("tasks", "id")
	if err != nil || !hasTasks {
		return err
	}
	hasFinishedAt, err := db.hasColumn("tasks", "finished_at")
	if err != nil {
		return err
	}

	version := versionCreateTasks
	if hasFinishedAt {
		version = versionAddFinishedAt
	}
	db.l.Info("baselining unversioned tasks table", "version", version)
	return m.Force(version)
}

func (db *database) hasColumn(table, column string) (bool, error) {
	var exists bool
	err := db.conn.QueryRow(
		`SELECT COUNT(*) > 0 FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&exists)
	return exists, err
}

func (db *database) Close() error {
	return db.conn.Close()
}

// migrateLogger routes golang-migrate output to the debug log
type migrateLogger struct {
	l todo.Logger
}

func (ml migrateLogger) Printf(format string, v ...interface{}) {
	ml.l.Debug(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (ml migrateLogger) Verbose() bool {
	return false
}
