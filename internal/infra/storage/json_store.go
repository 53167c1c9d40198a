package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"project_report_bot/internal/domain/store"
)

// JSONStore persists the whole document as one pretty-printed JSON file.
// There is no locking and no partial write protection: the process is the
// single writer and every operation is a whole-document read-modify-write.
type JSONStore struct {
	path string
}

func NewJSONStore(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads the document, creating the file with an empty document on first
// use.
func (s *JSONStore) Load(ctx context.Context) (*store.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ensureFile(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file %s: %w", s.path, err)
	}

	doc := &store.Document{}
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("failed to decode data file %s: %w", s.path, err)
	}
	doc.EnsureDefaults()
	return doc, nil
}

// Save rewrites the document in place.
func (s *JSONStore) Save(ctx context.Context, doc *store.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode data file: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write data file %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONStore) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	raw, err := json.MarshalIndent(store.NewDocument(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode default document: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to create data file %s: %w", s.path, err)
	}
	return nil
}
