package mongo

import (
	// Standard Library Imports
	"testing"
	"time"

	// External Imports
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
	"github.com/p000ic/go-grantstore-mongo/manager"
)

func TestRepositoryImplementsStorageRepository(t *testing.T) {
	r := &Repository[storage.Grant]{}

	var i interface{} = r
	if _, ok := i.(storage.Repository[storage.Grant]); !ok {
		t.Error("Repository does not implement interface storage.Repository")
	}
}

func TestStoreImplementsStorageConfigure(t *testing.T) {
	s := &Store{}

	var i interface{} = s
	if _, ok := i.(storage.Configure); !ok {
		t.Error("Store does not implement interface storage.Configure")
	}
}

func TestNewRepository_UsesEntityName(t *testing.T) {
	assert.Equal(t, storage.EntityGrants, NewRepository[storage.Grant](nil).name)
	assert.Equal(t, storage.EntityJtiDenylist, NewRepository[storage.DeniedJTI](nil).name)
}

func TestCollectionIndexes(t *testing.T) {
	indexes := collectionIndexes()

	for _, name := range []string{
		storage.EntityGrants,
		storage.EntityAPIResources,
		storage.EntityIdentityResources,
		storage.EntityAPIScopes,
		storage.EntityClients,
		storage.EntityJtiDenylist,
	} {
		assert.NotEmpty(t, indexes[name], "missing indexes for %s", name)
	}

	grantKey := indexes[storage.EntityGrants][0]
	assert.Equal(t, indexKeys(storage.GrantFieldKey), grantKey.Keys)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("MONGO_HOSTNAMES", "mongo-0,mongo-1")
	t.Setenv("MONGO_PORT", "27018")
	t.Setenv("MONGO_DATABASE", "identity")
	t.Setenv("MONGO_USERNAME", "grants")
	t.Setenv("MONGO_PASSWORD", "secret")
	t.Setenv("MONGO_REPLSET", "rs0")
	t.Setenv("MONGO_TIMEOUT", "3s")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, []string{"mongo-0", "mongo-1"}, cfg.Hostnames)
	assert.Equal(t, 27018, cfg.Port)
	assert.Equal(t, "identity", cfg.DatabaseName)
	assert.Equal(t, "admin", cfg.AuthDB)
	assert.Equal(t, 3*time.Second, cfg.Timeout)

	opts := cfg.clientOptions()
	assert.Equal(t, []string{"mongo-0:27018", "mongo-1:27018"}, opts.Hosts)
	require.NotNil(t, opts.Auth)
	assert.Equal(t, "grants", opts.Auth.Username)
	assert.Equal(t, "admin", opts.Auth.AuthSource)
	require.NotNil(t, opts.ReplicaSet)
	assert.Equal(t, "rs0", *opts.ReplicaSet)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	opts := cfg.clientOptions()
	assert.Equal(t, []string{"localhost:27017"}, opts.Hosts)
	assert.Nil(t, opts.Auth)
}

func TestNewStore_AppliesManagerOptions(t *testing.T) {
	store := NewStore(&DB{})
	grants, ok := store.GrantManager.(*manager.GrantManager)
	require.True(t, ok)
	assert.Equal(t, storage.RevokeBestEffort, grants.Policy())

	store = NewStore(&DB{}, manager.WithRevokePolicy(storage.RevokeStrict))
	grants, ok = store.GrantManager.(*manager.GrantManager)
	require.True(t, ok)
	assert.Equal(t, storage.RevokeStrict, grants.Policy())
}
