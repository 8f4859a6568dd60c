package mongo

import (
	// Standard Library Imports
	"context"
	"time"

	// External Imports
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.opentelemetry.io/otel/trace"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// Repository provides a mongo backed storage.Repository for record kind T.
// Records of a kind are stored in the collection named by the kind's
// EntityName.
//
// Implements:
// - storage.Repository
type Repository[T storage.Record] struct {
	DB *DB

	name string
}

// NewRepository returns a repository for T backed by db.
func NewRepository[T storage.Record](db *DB) *Repository[T] {
	return &Repository[T]{
		DB:   db,
		name: storage.EntityName[T](),
	}
}

// call tracks logging, tracing and metrics for a single repository operation.
type call struct {
	log        *logrus.Entry
	span       trace.Span
	collection string
	operation  string
	start      time.Time
}

func (r *Repository[T]) begin(ctx context.Context, operation string, query interface{}) (context.Context, *call) {
	span, ctx := traceMongoCall(ctx, dbTrace{
		Manager:    "Repository",
		Method:     operation,
		Collection: r.name,
		Query:      query,
	})
	return ctx, &call{
		log: logger.WithFields(logrus.Fields{
			"package":    "mongo",
			"collection": r.name,
			"method":     operation,
		}),
		span:       span,
		collection: r.name,
		operation:  operation,
		start:      time.Now(),
	}
}

// end finishes the span and records the operation metrics.
func (c *call) end(err error) {
	observe(c.collection, c.operation, c.start, err)
	c.span.End()
}

// fail logs err and returns it as a storage.StorageError.
func (c *call) fail(err error) error {
	// Log to StdOut
	c.log.WithError(err).Error(logError)
	// Log to OpenTelemetry
	otLogErr(c.span, err)
	return storage.NewStorageError(c.operation, c.collection, err)
}

// conflict logs a duplicate key error and returns storage.ErrResourceExists.
func (c *call) conflict(err error) error {
	c.log.WithError(err).Debug(logConflict)
	otLogErr(c.span, err)
	return storage.NewStorageError(c.operation, c.collection, storage.ErrResourceExists)
}

// Add implements storage.Repository.
func (r *Repository[T]) Add(ctx context.Context, record T) (err error) {
	ctx, op := r.begin(ctx, "insert", nil)
	defer func() { op.end(err) }()

	_, err = r.DB.Collection(r.name).InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return op.conflict(err)
		}
		return op.fail(err)
	}
	return nil
}

// AddMany implements storage.Repository. The batch is inserted in order and
// stops at the first failure; records before it remain stored.
func (r *Repository[T]) AddMany(ctx context.Context, records []T) (err error) {
	if len(records) == 0 {
		return nil
	}

	ctx, op := r.begin(ctx, "insert_many", nil)
	defer func() { op.end(err) }()

	_, err = r.DB.Collection(r.name).InsertMany(ctx, records)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return op.conflict(err)
		}
		return op.fail(err)
	}
	return nil
}

// Single implements storage.Repository.
func (r *Repository[T]) Single(ctx context.Context, query storage.Query) (result *T, err error) {
	ctx, op := r.begin(ctx, "find_one", query)
	defer func() { op.end(err) }()

	results, err := r.find(ctx, op, query, options.Find().SetLimit(2))
	if err != nil {
		return nil, err
	}

	switch len(results) {
	case 0:
		op.log.WithField("query", query.String()).Debug(logNotFound)
		return nil, nil
	case 1:
		return &results[0], nil
	default:
		err = errors.Wrapf(storage.ErrAmbiguousResult, "%s %s", r.name, query)
		op.log.WithError(err).Error(logError)
		otLogErr(op.span, err)
		return nil, err
	}
}

// Where implements storage.Repository.
func (r *Repository[T]) Where(ctx context.Context, query storage.Query) (results []T, err error) {
	ctx, op := r.begin(ctx, "find", query)
	defer func() { op.end(err) }()

	return r.find(ctx, op, query, options.Find())
}

// All implements storage.Repository.
func (r *Repository[T]) All(ctx context.Context) (results []T, err error) {
	ctx, op := r.begin(ctx, "find_all", nil)
	defer func() { op.end(err) }()

	return r.find(ctx, op, nil, options.Find())
}

func (r *Repository[T]) find(ctx context.Context, op *call, query storage.Query, opts *options.FindOptionsBuilder) ([]T, error) {
	filter, err := toFilter(query)
	if err != nil {
		return nil, op.fail(err)
	}

	cursor, err := r.DB.Collection(r.name).Find(ctx, filter, opts)
	if err != nil {
		return nil, op.fail(err)
	}

	results := []T{}
	err = cursor.All(ctx, &results)
	if err != nil {
		return nil, op.fail(err)
	}
	if results == nil {
		results = []T{}
	}
	return results, nil
}

// Delete implements storage.Repository.
func (r *Repository[T]) Delete(ctx context.Context, query storage.Query) (deleted int64, err error) {
	ctx, op := r.begin(ctx, "delete", query)
	defer func() { op.end(err) }()

	filter, err := toFilter(query)
	if err != nil {
		return 0, op.fail(err)
	}

	res, err := r.DB.Collection(r.name).DeleteMany(ctx, filter)
	if err != nil {
		return 0, op.fail(err)
	}
	return res.DeletedCount, nil
}

// Replace implements storage.Repository. The query is expected to match at
// most one record, which a unique index should guarantee.
func (r *Repository[T]) Replace(ctx context.Context, query storage.Query, record T) (err error) {
	ctx, op := r.begin(ctx, "replace", query)
	defer func() { op.end(err) }()

	filter, err := toFilter(query)
	if err != nil {
		return op.fail(err)
	}

	opts := options.Replace().SetUpsert(true)
	_, err = r.DB.Collection(r.name).ReplaceOne(ctx, filter, record, opts)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return op.conflict(err)
		}
		return op.fail(err)
	}
	return nil
}

// CollectionExists implements storage.Repository.
func (r *Repository[T]) CollectionExists(ctx context.Context) (exists bool, err error) {
	ctx, op := r.begin(ctx, "count", nil)
	defer func() { op.end(err) }()

	count, err := r.DB.Collection(r.name).CountDocuments(ctx, bson.D{}, options.Count().SetLimit(1))
	if err != nil {
		return false, op.fail(err)
	}
	return count > 0, nil
}
