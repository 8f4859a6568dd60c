package manager_test

import (
	// Standard Library Imports
	"context"
	"testing"
	"time"

	// External Imports
	"github.com/ory/fosite"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
	"github.com/p000ic/go-grantstore-mongo/manager"
	"github.com/p000ic/go-grantstore-mongo/memory"
)

func TestGrantManagerImplementsStorageGrantStore(t *testing.T) {
	g := &manager.GrantManager{}

	var i interface{} = g
	if _, ok := i.(storage.GrantStore); !ok {
		t.Error("GrantManager does not implement interface storage.GrantStore")
	}
}

func TestResourceManagerImplementsStorageResourceStore(t *testing.T) {
	r := &manager.ResourceManager{}

	var i interface{} = r
	if _, ok := i.(storage.ResourceStore); !ok {
		t.Error("ResourceManager does not implement interface storage.ResourceStore")
	}
}

func TestCachedResourceManagerImplementsStorageResourceStore(t *testing.T) {
	r := &manager.CachedResourceManager{}

	var i interface{} = r
	if _, ok := i.(storage.ResourceStore); !ok {
		t.Error("CachedResourceManager does not implement interface storage.ResourceStore")
	}
}

func TestClientManagerImplementsFositeStorage(t *testing.T) {
	c := &manager.ClientManager{}

	var i interface{} = c
	if _, ok := i.(fosite.Storage); !ok {
		t.Error("ClientManager does not implement interface fosite.Storage")
	}
}

func TestClientManagerImplementsStorageClientStore(t *testing.T) {
	c := &manager.ClientManager{}

	var i interface{} = c
	if _, ok := i.(storage.ClientStore); !ok {
		t.Error("ClientManager does not implement interface storage.ClientStore")
	}
}

// newLogger returns a debug level logger that records entries instead of
// writing them.
func newLogger() (*logrus.Logger, *test.Hook) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	return log, hook
}

func newGrantManager(opts ...manager.Option) (*manager.GrantManager, *memory.Repository[storage.Grant]) {
	repo := memory.NewRepository[storage.Grant](memory.NewDB())
	return manager.NewGrantManager(repo, opts...), repo
}

func expiresAt(t time.Time) *time.Time {
	return &t
}

func grantKeys(grants []storage.Grant) []string {
	out := make([]string, 0, len(grants))
	for _, g := range grants {
		out = append(out, g.Key)
	}
	return out
}

var errBackend = errors.New("backend unavailable")

// faultyGrants fails the configured operations and passes everything else to
// an in-memory repository.
type faultyGrants struct {
	storage.Repository[storage.Grant]

	failWhere  bool
	failDelete bool
	calls      int
}

func (f *faultyGrants) Where(ctx context.Context, query storage.Query) ([]storage.Grant, error) {
	f.calls++
	if f.failWhere {
		return nil, storage.NewStorageError("find", storage.EntityGrants, errBackend)
	}
	return f.Repository.Where(ctx, query)
}

func (f *faultyGrants) Delete(ctx context.Context, query storage.Query) (int64, error) {
	f.calls++
	if f.failDelete {
		return 0, storage.NewStorageError("delete", storage.EntityGrants, errBackend)
	}
	return f.Repository.Delete(ctx, query)
}
