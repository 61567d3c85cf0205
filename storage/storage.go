// Package storage persists wealthflow documents, one per user.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/etnz/wealthflow"
	"github.com/sirupsen/logrus"
)

// ErrNotFound is returned when a user has no document yet.
var ErrNotFound = errors.New("document not found")

// Store loads and saves the document of a user. Save replaces the whole
// document: the last write wins.
type Store interface {
	Load(ctx context.Context, userID string) (wealthflow.Document, error)
	Save(ctx context.Context, userID string, doc wealthflow.Document) error
}

// Open opens the store of a driver: "memory", "sqlite" or "postgres". The
// database schema is migrated to the latest version.
func Open(ctx context.Context, driver, dsn string, log logrus.FieldLogger) (Store, io.Closer, error) {
	switch driver {
	case "memory":
		return NewMemory(), io.NopCloser(nil), nil
	case "sqlite":
		s, err := OpenSQLite(ctx, dsn, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case "postgres":
		s, err := OpenPostgres(ctx, dsn, log)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", driver)
}
