package memory

import (
	// Standard Library Imports
	"context"

	// External Imports
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/v2/bson"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// Repository is an in-memory storage.Repository for record kind T.
//
// Implements:
// - storage.Repository
type Repository[T storage.Record] struct {
	db   *DB
	name string
}

// NewRepository returns a repository for T backed by db.
func NewRepository[T storage.Record](db *DB) *Repository[T] {
	return &Repository[T]{
		db:   db,
		name: storage.EntityName[T](),
	}
}

// Add implements storage.Repository.
func (r *Repository[T]) Add(ctx context.Context, record T) error {
	return r.AddMany(ctx, []T{record})
}

// AddMany implements storage.Repository. The batch is encoded before any
// record is stored, so either every record is added or none is.
func (r *Repository[T]) AddMany(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return storage.NewStorageError("insert", r.name, err)
	}
	if len(records) == 0 {
		return nil
	}

	docs := make([]bson.Raw, 0, len(records))
	for _, record := range records {
		raw, err := bson.Marshal(record)
		if err != nil {
			return storage.NewStorageError("insert", r.name, err)
		}
		docs = append(docs, raw)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.collections[r.name] = append(r.db.collections[r.name], docs...)
	return nil
}

// Single implements storage.Repository.
func (r *Repository[T]) Single(ctx context.Context, query storage.Query) (*T, error) {
	results, err := r.find(ctx, "find_one", query, 2)
	if err != nil {
		return nil, err
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return &results[0], nil
	default:
		return nil, errors.Wrapf(storage.ErrAmbiguousResult, "%s %s", r.name, query)
	}
}

// Where implements storage.Repository.
func (r *Repository[T]) Where(ctx context.Context, query storage.Query) ([]T, error) {
	return r.find(ctx, "find", query, 0)
}

// All implements storage.Repository.
func (r *Repository[T]) All(ctx context.Context) ([]T, error) {
	return r.find(ctx, "find", nil, 0)
}

// find decodes up to limit matching records. A limit of zero means no limit.
func (r *Repository[T]) find(ctx context.Context, op string, query storage.Query, limit int) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, storage.NewStorageError(op, r.name, err)
	}
	m, err := compile(query)
	if err != nil {
		return nil, storage.NewStorageError(op, r.name, err)
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	results := []T{}
	for _, raw := range r.db.collections[r.name] {
		ok, err := m.matches(raw)
		if err != nil {
			return nil, storage.NewStorageError(op, r.name, err)
		}
		if !ok {
			continue
		}

		var record T
		if err := bson.Unmarshal(raw, &record); err != nil {
			return nil, storage.NewStorageError(op, r.name, err)
		}
		results = append(results, record)

		if limit > 0 && len(results) >= limit {
			break
		}
	}
	return results, nil
}

// Delete implements storage.Repository.
func (r *Repository[T]) Delete(ctx context.Context, query storage.Query) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, storage.NewStorageError("delete", r.name, err)
	}
	m, err := compile(query)
	if err != nil {
		return 0, storage.NewStorageError("delete", r.name, err)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	kept, deleted, err := r.partition(m)
	if err != nil {
		return 0, storage.NewStorageError("delete", r.name, err)
	}
	r.db.collections[r.name] = kept
	return deleted, nil
}

// Replace implements storage.Repository. Every record matching the query is
// removed before record is stored.
func (r *Repository[T]) Replace(ctx context.Context, query storage.Query, record T) error {
	if err := ctx.Err(); err != nil {
		return storage.NewStorageError("replace", r.name, err)
	}
	m, err := compile(query)
	if err != nil {
		return storage.NewStorageError("replace", r.name, err)
	}
	raw, err := bson.Marshal(record)
	if err != nil {
		return storage.NewStorageError("replace", r.name, err)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	kept, _, err := r.partition(m)
	if err != nil {
		return storage.NewStorageError("replace", r.name, err)
	}
	r.db.collections[r.name] = append(kept, raw)
	return nil
}

// partition splits the collection into records that do not match and a count
// of those that do. The caller must hold the write lock.
func (r *Repository[T]) partition(m matcher) ([]bson.Raw, int64, error) {
	docs := r.db.collections[r.name]
	kept := make([]bson.Raw, 0, len(docs))
	var matched int64
	for _, raw := range docs {
		ok, err := m.matches(raw)
		if err != nil {
			return nil, 0, err
		}
		if ok {
			matched++
			continue
		}
		kept = append(kept, raw)
	}
	return kept, matched, nil
}

// CollectionExists implements storage.Repository.
func (r *Repository[T]) CollectionExists(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, storage.NewStorageError("count", r.name, err)
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.collections[r.name]) > 0, nil
}
