// Package mongo provides a MongoDB storage engine for the storage Repository
// contract, and a Store that wires the grant, resource and client managers
// onto it.
package mongo

import (
	// Standard Library Imports
	"context"
	"time"

	// External Imports
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
	"github.com/p000ic/go-grantstore-mongo/manager"
)

// DB wraps the mongo database grants and resources are stored in.
type DB struct {
	*mongo.Database
}

// Store provides a mongo backed datastore for persisted grants, resources
// and clients. The connection is opened once by New and shared by every
// repository until Close.
type Store struct {
	// Internals
	DB *DB

	// Public API
	GrantManager    storage.GrantStore
	ResourceManager storage.ResourceStore
	ClientManager   storage.ClientStore
}

// New connects to mongo using cfg, creates the required indexes and returns a
// Store ready to use. A nil cfg uses DefaultConfig. A nil log keeps the
// package logger. opts are applied to every manager the store wires.
func New(cfg *Config, log *logrus.Logger, opts ...manager.Option) (*Store, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	SetLogger(log)

	entry := logger.WithFields(logrus.Fields{
		"package":  "mongo",
		"method":   "New",
		"database": cfg.DatabaseName,
	})

	client, err := mongo.Connect(cfg.clientOptions())
	if err != nil {
		entry.WithError(err).Error("error connecting to mongo")
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		entry.WithError(err).Error("error pinging mongo")
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	store := NewStore(&DB{Database: client.Database(cfg.DatabaseName)}, opts...)
	if cfg.ResourceCacheTTL > 0 {
		store.ResourceManager = manager.NewCachedResourceManager(
			store.ResourceManager,
			manager.WithTTL(cfg.ResourceCacheTTL),
		)
	}
	err = store.Configure(ctx)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	entry.Debug("mongo store configured")
	return store, nil
}

// NewStore wires the managers onto an already connected database. Managers
// log to the package logger unless opts say otherwise.
func NewStore(db *DB, opts ...manager.Option) *Store {
	opts = append([]manager.Option{manager.WithLogger(logger)}, opts...)
	return &Store{
		DB: db,
		GrantManager: manager.NewGrantManager(
			NewRepository[storage.Grant](db),
			opts...,
		),
		ResourceManager: manager.NewResourceManager(
			NewRepository[storage.APIResource](db),
			NewRepository[storage.IdentityResource](db),
			NewRepository[storage.APIScope](db),
			opts...,
		),
		ClientManager: manager.NewClientManager(
			NewRepository[storage.Client](db),
			NewRepository[storage.DeniedJTI](db),
			opts...,
		),
	}
}

// NewSession creates a new mongo session, binds it to the returned context
// and returns a function to end it. Repository calls made with the returned
// context run within the session.
func (s *Store) NewSession(ctx context.Context) (context.Context, func(), error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return newSession(ctx, s.DB)
}

// Close terminates the mongo connection.
func (s *Store) Close() {
	err := s.DB.Client().Disconnect(context.Background())
	if err != nil {
		logger.WithError(err).Error("error disconnecting from mongo")
	}
}

// ContextToSession returns the mongo session bound to ctx, if any.
func ContextToSession(ctx context.Context) (sess *mongo.Session, ok bool) {
	sess = mongo.SessionFromContext(ctx)
	return sess, sess != nil
}

// newSession starts a session on db unless ctx already carries one.
func newSession(ctx context.Context, db *DB) (context.Context, func(), error) {
	if _, ok := ContextToSession(ctx); ok {
		return ctx, func() {}, nil
	}

	sess, err := db.Client().StartSession()
	if err != nil {
		return ctx, func() {}, err
	}
	return mongo.NewSessionContext(ctx, sess), func() {
		sess.EndSession(ctx)
	}, nil
}
