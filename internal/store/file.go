package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileDocument stores a collection as a JSON array in a single file. Save
// overwrites the file in place, so a crash mid-write can leave it truncated.
type FileDocument[T any] struct {
	path   string
	logger Logger
}

var _ Document[struct{}] = (*FileDocument[struct{}])(nil)

// NewFileDocument returns a document backed by the file at path.
func NewFileDocument[T any](path string, logger Logger) *FileDocument[T] {
	return &FileDocument[T]{path: path, logger: logger}
}

// Path returns the backing file path.
func (d *FileDocument[T]) Path() string {
	return d.path
}

// Load reads and decodes the file.
func (d *FileDocument[T]) Load(_ context.Context) []T {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			d.logger.Warnf("document %s does not exist yet", d.path)
		} else {
			d.logger.Errorf("read document %s: %v", d.path, err)
		}
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		d.logger.Errorf("parse document %s: %v", d.path, err)
		return []T{}
	}
	if records == nil {
		return []T{}
	}
	return records
}

// Save encodes records with two-space indentation and overwrites the file.
func (d *FileDocument[T]) Save(_ context.Context, records []T) error {
	if records == nil {
		records = []T{}
	}
	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		d.logger.Errorf("encode document %s: %v", d.path, err)
		return writeError(d.path, err)
	}
	if err := os.MkdirAll(filepath.Dir(d.path), 0o755); err != nil {
		d.logger.Errorf("create directory for %s: %v", d.path, err)
		return writeError(d.path, err)
	}
	if err := os.WriteFile(d.path, payload, 0o644); err != nil {
		d.logger.Errorf("write document %s: %v", d.path, err)
		return writeError(d.path, err)
	}
	return nil
}
