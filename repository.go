package storage

import (
	// Standard Library Imports
	"context"
)

// Configure enables a storage backend to create the collections and indexes
// it requires.
type Configure interface {
	Configure(ctx context.Context) error
}

// Repository provides typed, schema-flexible persistence for a single record
// kind. It holds no business rules: stores compose queries, repositories run
// them.
//
// Backend failures are returned as *StorageError. Finding nothing is never an
// error.
type Repository[T Record] interface {
	// Add inserts a record.
	Add(ctx context.Context, record T) error
	// AddMany inserts a batch of records. Unless the engine guarantees it,
	// a failed batch may have been partially applied.
	AddMany(ctx context.Context, records []T) error
	// Single returns the one record matching the query, nil if none match,
	// or ErrAmbiguousResult if more than one does.
	Single(ctx context.Context, query Query) (*T, error)
	// Where returns every record matching the query, in no particular order.
	Where(ctx context.Context, query Query) ([]T, error)
	// All returns every record of the kind.
	All(ctx context.Context) ([]T, error)
	// Delete removes every record matching the query and reports how many
	// were removed.
	Delete(ctx context.Context, query Query) (int64, error)
	// Replace replaces the record matching the query, inserting it if none
	// matches.
	Replace(ctx context.Context, query Query, record T) error
	// CollectionExists reports whether the collection holds any records.
	CollectionExists(ctx context.Context) (bool, error)
}
