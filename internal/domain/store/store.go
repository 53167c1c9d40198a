package store

import "context"

// Store persists the whole document as a unit. There is no finer-grained
// atomicity: callers load the document, mutate it in memory, and save it
// back. Single process, single writer.
type Store interface {
	Load(ctx context.Context) (*Document, error)
	Save(ctx context.Context, doc *Document) error
}
