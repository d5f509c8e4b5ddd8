// Package store persists whole collections. Every call re-reads or rewrites
// the full document; there is no caching and no locking, so concurrent
// writers race and the last Save wins.
package store

import (
	"context"
	"errors"
	"fmt"
)

// ErrWrite is returned (wrapped) when a document cannot be persisted.
var ErrWrite = errors.New("failed to save document")

// Logger is the subset of echo's logger the documents report through.
type Logger interface {
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Document is the load/save capability handed to services.
type Document[T any] interface {
	// Load returns every record. Read or decode failures are logged and
	// yield an empty slice.
	Load(ctx context.Context) []T
	// Save replaces the whole collection.
	Save(ctx context.Context, records []T) error
}

func writeError(name string, err error) error {
	return fmt.Errorf("%w %s: %v", ErrWrite, name, err)
}
