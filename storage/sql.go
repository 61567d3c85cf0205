package storage

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/wealthflow"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations
var migrations embed.FS

// dialect holds what differs between the supported databases.
type dialect struct {
	name       string // of the database/sql driver
	migrations string // folder in migrations
	numbered   bool   // placeholders are $1, $2... instead of ?
	migrator   func(*sql.DB) (database.Driver, error)
}

var (
	sqliteDialect = dialect{
		name:       "sqlite3",
		migrations: "migrations/sqlite",
		migrator: func(db *sql.DB) (database.Driver, error) {
			return sqlite3.WithInstance(db, &sqlite3.Config{})
		},
	}
	postgresDialect = dialect{
		name:       "postgres",
		migrations: "migrations/postgres",
		numbered:   true,
		migrator: func(db *sql.DB) (database.Driver, error) {
			return postgres.WithInstance(db, &postgres.Config{})
		},
	}
)

// rebind rewrites ? placeholders for the dialect.
func (d dialect) rebind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQL is a Store keeping one JSON document per user in a SQL table.
type SQL struct {
	db      *sql.DB
	dialect dialect
	log     logrus.FieldLogger
	now     func() time.Time
}

// OpenSQLite opens, creating it if needed, the sqlite database at path.
func OpenSQLite(ctx context.Context, path string, log logrus.FieldLogger) (*SQL, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir database dir: %w", err)
		}
	}
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	s, err := open(ctx, sqliteDialect, dsn, log)
	if err != nil {
		return nil, err
	}
	s.db.SetMaxOpenConns(1) // sqlite
	return s, nil
}

// OpenPostgres opens the postgres database at dsn.
func OpenPostgres(ctx context.Context, dsn string, log logrus.FieldLogger) (*SQL, error) {
	return open(ctx, postgresDialect, dsn, log)
}

func open(ctx context.Context, d dialect, dsn string, log logrus.FieldLogger) (*SQL, error) {
	if err := runMigrations(d, dsn); err != nil {
		return nil, fmt.Errorf("migrate %s database: %w", d.name, err)
	}
	db, err := sql.Open(d.name, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", d.name, err)
	}
	log.WithField("driver", d.name).Info("document store opened")
	return &SQL{db: db, dialect: d, log: log, now: time.Now}, nil
}

// runMigrations applies all up migrations on a dedicated connection, since
// closing the migrator closes its database.
func runMigrations(d dialect, dsn string) error {
	db, err := sql.Open(d.name, dsn)
	if err != nil {
		return err
	}
	driver, err := d.migrator(db)
	if err != nil {
		db.Close()
		return err
	}
	src, err := iofs.New(migrations, d.migrations)
	if err != nil {
		driver.Close()
		return err
	}
	m, err := migrate.NewWithInstance("iofs", src, d.name, driver)
	if err != nil {
		driver.Close()
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// Close closes the database.
func (s *SQL) Close() error { return s.db.Close() }

func (s *SQL) Load(ctx context.Context, userID string) (wealthflow.Document, error) {
	var body string
	err := s.db.QueryRowContext(ctx, s.dialect.rebind(`SELECT body FROM documents WHERE user_id = ?`), userID).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return wealthflow.Document{}, fmt.Errorf("user %q: %w", userID, ErrNotFound)
	}
	if err != nil {
		return wealthflow.Document{}, fmt.Errorf("load document of %q: %w", userID, err)
	}
	return wealthflow.DecodeDocument(strings.NewReader(body))
}

func (s *SQL) Save(ctx context.Context, userID string, doc wealthflow.Document) error {
	var buf bytes.Buffer
	if err := wealthflow.EncodeDocument(&buf, doc); err != nil {
		return err
	}
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx, s.dialect.rebind(`
		INSERT INTO documents (user_id, body, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`),
		userID, buf.String(), now, now)
	if err != nil {
		return fmt.Errorf("save document of %q: %w", userID, err)
	}
	s.log.WithFields(logrus.Fields{"user": userID, "bytes": buf.Len()}).Debug("document saved")
	return nil
}
