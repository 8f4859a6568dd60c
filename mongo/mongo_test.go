//go:build integration

package mongo

import (
	// Standard Library Imports
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	// External Imports
	"github.com/ory/fosite"
	"github.com/smartystreets/goconvey/convey"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/v2/bson"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// mongoURI is the connection string of the container shared by every test.
var mongoURI string

func TestMain(m *testing.M) {
	// If needed, enable logging when debugging for tests
	// SetLogger(logrus.New())
	// SetDebug(true)

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		fmt.Fprintf(os.Stderr, "error starting mongo container: %s\n", err)
		os.Exit(1)
	}

	mongoURI, err = container.ConnectionString(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error getting mongo connection string: %s\n", err)
		_ = testcontainers.TerminateContainer(container)
		os.Exit(1)
	}

	exitCode := m.Run()
	_ = testcontainers.TerminateContainer(container)
	os.Exit(exitCode)
}

func AssertFatal(t *testing.T, got interface{}, want interface{}, msg string) {
	t.Fatalf("Fatal: %s\n	 got: %#+v\n	want: %#+v", msg, got, want)
}

func setup(t *testing.T) (*Store, context.Context, func()) {
	cfg := DefaultConfig()
	cfg.URI = mongoURI
	cfg.DatabaseName = fmt.Sprintf("oauth2_%d", time.Now().UnixNano())

	store, err := New(cfg, nil)
	if err != nil {
		AssertFatal(t, err, nil, "mongo connection error")
	}

	// Build a context with a mongo session ready to use for testing
	ctx := context.Background()
	var sess func()
	ctx, sess, err = store.NewSession(ctx)
	if err != nil {
		AssertFatal(t, err, nil, "error getting mongo session")
	}

	teardown := func() {
		// Drop the database.
		err = store.DB.Drop(ctx)
		if err != nil {
			t.Errorf("error dropping database on cleanup: %s", err)
		}

		// Close the inner (test) session if it exists.
		sess()

		// Close the database connection.
		store.Close()
	}

	return store, ctx, teardown
}

func expiresAt(t time.Time) *time.Time {
	return &t
}

func TestNewStore(t *testing.T) {
	store, ctx, teardown := setup(t)
	defer teardown()

	convey.Convey("Default store", t, func() {
		convey.So(store.DB, convey.ShouldNotBeNil)

		convey.Convey("Indexes should be created", func() {
			collNames, err := store.DB.ListCollectionNames(ctx, bson.D{})
			convey.So(err, convey.ShouldBeNil)
			convey.So(collNames, convey.ShouldContain, storage.EntityGrants)
			convey.So(collNames, convey.ShouldContain, storage.EntityJtiDenylist)
		})
	})
}

func TestGrantManager(t *testing.T) {
	store, ctx, teardown := setup(t)
	defer teardown()

	now := time.Now().UTC().Truncate(time.Millisecond)
	grants := store.GrantManager

	convey.Convey("Given stored grants", t, func() {
		for _, g := range []storage.Grant{
			{Key: "k1", Type: storage.GrantTypeRefreshToken, SubjectID: "alice", SessionID: "s1", ClientID: "web", CreationTime: now, Expiration: expiresAt(now.Add(-time.Minute))},
			{Key: "k2", Type: storage.GrantTypeUserConsent, SubjectID: "alice", ClientID: "web", CreationTime: now},
			{Key: "k3", Type: storage.GrantTypeRefreshToken, SubjectID: "bob", SessionID: "s2", ClientID: "web", CreationTime: now, Expiration: expiresAt(now.Add(time.Hour))},
		} {
			convey.So(grants.Store(ctx, g), convey.ShouldBeNil)
		}

		convey.Convey("Storing an existing key replaces the grant", func() {
			err := grants.Store(ctx, storage.Grant{Key: "k2", Type: storage.GrantTypeUserConsent, SubjectID: "alice", ClientID: "web", Data: "v2"})
			convey.So(err, convey.ShouldBeNil)

			got, err := grants.Get(ctx, "k2")
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldNotBeNil)
			convey.So(got.Data, convey.ShouldEqual, "v2")

			all, err := grants.ListBySubject(ctx, "alice")
			convey.So(err, convey.ShouldBeNil)
			convey.So(all, convey.ShouldHaveLength, 2)
		})

		convey.Convey("Listing by filter returns the conjunction", func() {
			got, err := grants.List(ctx, storage.GrantFilter{SubjectID: "alice", Type: storage.GrantTypeRefreshToken})
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldHaveLength, 1)
			convey.So(got[0].Key, convey.ShouldEqual, "k1")
			convey.So(got[0].CreationTime.Equal(now), convey.ShouldBeTrue)
		})

		convey.Convey("An empty filter is rejected", func() {
			_, err := grants.List(ctx, storage.GrantFilter{})
			convey.So(errors.Is(err, storage.ErrValidation), convey.ShouldBeTrue)
		})

		convey.Convey("Ambiguous single lookups fail", func() {
			repo := NewRepository[storage.Grant](store.DB)
			_, err := repo.Single(ctx, storage.Where(storage.Eq(storage.GrantFieldClientID, "web")))
			convey.So(errors.Is(err, storage.ErrAmbiguousResult), convey.ShouldBeTrue)
		})

		convey.Convey("Duplicate keys conflict on insert", func() {
			repo := NewRepository[storage.Grant](store.DB)
			err := repo.Add(ctx, storage.Grant{Key: "k1"})
			convey.So(errors.Is(err, storage.ErrResourceExists), convey.ShouldBeTrue)
		})

		convey.Convey("RemoveAll removes only matching grants", func() {
			err := grants.RemoveAll(ctx, storage.GrantFilter{SessionID: "s1"})
			convey.So(err, convey.ShouldBeNil)

			got, err := grants.Get(ctx, "k1")
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldBeNil)

			got, err = grants.Get(ctx, "k3")
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldNotBeNil)
		})

		convey.Convey("RemoveExpired sweeps expired grants", func() {
			deleted, err := grants.RemoveExpired(ctx, now)
			convey.So(err, convey.ShouldBeNil)
			convey.So(deleted, convey.ShouldEqual, int64(1))
		})

		convey.Reset(func() {
			_, err := NewRepository[storage.Grant](store.DB).Delete(ctx, storage.Where())
			convey.So(err, convey.ShouldBeNil)
		})
	})
}

func TestResourceManager(t *testing.T) {
	store, ctx, teardown := setup(t)
	defer teardown()

	convey.Convey("Given a seeded catalog", t, func() {
		apis := NewRepository[storage.APIResource](store.DB)
		err := apis.AddMany(ctx, []storage.APIResource{
			{Resource: storage.Resource{Name: "orders"}, Scopes: []string{"orders.read", "orders.write"}},
			{Resource: storage.Resource{Name: "billing"}, Scopes: []string{"billing.read"}},
		})
		convey.So(err, convey.ShouldBeNil)

		identity := NewRepository[storage.IdentityResource](store.DB)
		err = identity.Add(ctx, storage.IdentityResource{Resource: storage.Resource{Name: "openid"}, Required: true})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("API resources are found by any of their scopes", func() {
			got, err := store.ResourceManager.FindAPIResourcesByScopeName(ctx, []string{"orders.write"})
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldHaveLength, 1)
			convey.So(got[0].Name, convey.ShouldEqual, "orders")
		})

		convey.Convey("An empty scope list finds nothing", func() {
			got, err := store.ResourceManager.FindAPIResourcesByScopeName(ctx, []string{})
			convey.So(err, convey.ShouldBeNil)
			convey.So(got, convey.ShouldBeEmpty)
		})

		convey.Convey("All resources are returned", func() {
			all, err := store.ResourceManager.GetAllResources(ctx)
			convey.So(err, convey.ShouldBeNil)
			convey.So(all.APIResources, convey.ShouldHaveLength, 2)
			convey.So(all.IdentityResources, convey.ShouldHaveLength, 1)
			convey.So(all.APIScopes, convey.ShouldBeEmpty)
		})

		convey.Reset(func() {
			_, _ = apis.Delete(ctx, storage.Where())
			_, _ = identity.Delete(ctx, storage.Where())
		})
	})
}

func TestClientManager(t *testing.T) {
	store, ctx, teardown := setup(t)
	defer teardown()

	convey.Convey("Given a registered client", t, func() {
		clients := NewRepository[storage.Client](store.DB)
		err := clients.Add(ctx, storage.Client{ID: "web", Scopes: []string{"openid"}})
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("The client is found", func() {
			client, err := store.ClientManager.GetClient(ctx, "web")
			convey.So(err, convey.ShouldBeNil)
			convey.So(client.GetID(), convey.ShouldEqual, "web")
		})

		convey.Convey("An unknown client is not found", func() {
			_, err := store.ClientManager.GetClient(ctx, "unknown")
			convey.So(errors.Is(err, fosite.ErrNotFound), convey.ShouldBeTrue)
		})

		convey.Convey("A JTI can only be used once", func() {
			err := store.ClientManager.SetClientAssertionJWT(ctx, "jti-1", time.Now().Add(time.Hour))
			convey.So(err, convey.ShouldBeNil)

			err = store.ClientManager.ClientAssertionJWTValid(ctx, "jti-1")
			convey.So(errors.Is(err, fosite.ErrJTIKnown), convey.ShouldBeTrue)
		})

		convey.Reset(func() {
			_, _ = clients.Delete(ctx, storage.Where())
			_, _ = NewRepository[storage.DeniedJTI](store.DB).Delete(ctx, storage.Where())
		})
	})
}
