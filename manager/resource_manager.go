package manager

import (
	// Standard Library Imports
	"context"

	// External Imports
	"github.com/sirupsen/logrus"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// ResourceManager resolves API resources, identity resources and API scopes.
// The catalog is seeded externally and only ever read here.
//
// Implements:
// - storage.ResourceStore
type ResourceManager struct {
	APIResources      storage.Repository[storage.APIResource]
	IdentityResources storage.Repository[storage.IdentityResource]
	APIScopes         storage.Repository[storage.APIScope]

	log logrus.FieldLogger
}

// NewResourceManager returns a ResourceManager reading from the given
// repositories.
func NewResourceManager(
	apiResources storage.Repository[storage.APIResource],
	identityResources storage.Repository[storage.IdentityResource],
	apiScopes storage.Repository[storage.APIScope],
	opts ...Option,
) *ResourceManager {
	cfg := newConfig(opts)
	return &ResourceManager{
		APIResources:      apiResources,
		IdentityResources: identityResources,
		APIScopes:         apiScopes,
		log:               cfg.log,
	}
}

func (r *ResourceManager) logger(collection, method string) logrus.FieldLogger {
	return r.log.WithFields(logrus.Fields{
		"package":    "manager",
		"collection": collection,
		"method":     method,
	})
}

// FindAPIResource implements storage.ResourceStore.
func (r *ResourceManager) FindAPIResource(ctx context.Context, name string) (*storage.APIResource, error) {
	if err := storage.ValidateName("name", name); err != nil {
		return nil, err
	}
	return r.APIResources.Single(ctx, storage.Where(storage.Eq(storage.ResourceFieldName, name)))
}

// FindAPIResourcesByScope implements storage.ResourceStore.
func (r *ResourceManager) FindAPIResourcesByScope(ctx context.Context, scopeNames []string) ([]storage.APIResource, error) {
	return r.APIResources.Where(ctx, storage.Where(storage.In(storage.ResourceFieldScopes, scopeNames)))
}

// FindAPIResourcesByScopeName implements storage.ResourceStore.
func (r *ResourceManager) FindAPIResourcesByScopeName(ctx context.Context, scopeNames []string) ([]storage.APIResource, error) {
	results, err := r.FindAPIResourcesByScope(ctx, scopeNames)
	if err != nil {
		return nil, err
	}

	r.logger(storage.EntityAPIResources, "FindAPIResourcesByScopeName").
		WithField("apis", resourceNames(results)).
		Debug("found API resources in database")
	return results, nil
}

// FindIdentityResourcesByScope implements storage.ResourceStore.
func (r *ResourceManager) FindIdentityResourcesByScope(ctx context.Context, scopeNames []string) ([]storage.IdentityResource, error) {
	return r.IdentityResources.Where(ctx, storage.Where(storage.In(storage.ResourceFieldName, scopeNames)))
}

// FindIdentityResourcesByScopeName implements storage.ResourceStore.
func (r *ResourceManager) FindIdentityResourcesByScopeName(ctx context.Context, scopeNames []string) ([]storage.IdentityResource, error) {
	results, err := r.FindIdentityResourcesByScope(ctx, scopeNames)
	if err != nil {
		return nil, err
	}

	r.logger(storage.EntityIdentityResources, "FindIdentityResourcesByScopeName").
		WithField("scopes", identityResourceNames(results)).
		Debug("found identity scopes in database")
	return results, nil
}

// FindAPIScopesByName implements storage.ResourceStore.
func (r *ResourceManager) FindAPIScopesByName(ctx context.Context, scopeNames []string) ([]storage.APIScope, error) {
	results, err := r.APIScopes.Where(ctx, storage.Where(storage.In(storage.ResourceFieldName, scopeNames)))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(results))
	for _, scope := range results {
		names = append(names, scope.Name)
	}
	r.logger(storage.EntityAPIScopes, "FindAPIScopesByName").
		WithField("scopes", names).
		Debug("found scopes in database")
	return results, nil
}

// FindAPIResourcesByName implements storage.ResourceStore.
func (r *ResourceManager) FindAPIResourcesByName(ctx context.Context, names []string) ([]storage.APIResource, error) {
	if err := storage.ValidateNames("names", names); err != nil {
		return nil, err
	}

	results, err := r.APIResources.Where(ctx, storage.Where(storage.In(storage.ResourceFieldName, names)))
	if err != nil {
		return nil, err
	}

	log := r.logger(storage.EntityAPIResources, "FindAPIResourcesByName")
	if len(results) > 0 {
		log.WithField("apis", resourceNames(results)).Debug("found API resources in database")
	} else {
		log.WithField("apis", names).Debug("did not find API resources in database")
	}
	return results, nil
}

// GetAllResources implements storage.ResourceStore. Each kind is scanned
// separately.
func (r *ResourceManager) GetAllResources(ctx context.Context) (storage.Resources, error) {
	var (
		result storage.Resources
		err    error
	)

	result.IdentityResources, err = r.IdentityResources.All(ctx)
	if err != nil {
		return storage.Resources{}, err
	}
	result.APIResources, err = r.APIResources.All(ctx)
	if err != nil {
		return storage.Resources{}, err
	}
	result.APIScopes, err = r.APIScopes.All(ctx)
	if err != nil {
		return storage.Resources{}, err
	}

	r.logger("", "GetAllResources").WithFields(logrus.Fields{
		"scopes": result.ScopeNames(),
		"apis":   result.APIResourceNames(),
	}).Debug("found all scopes and API resources")
	return result, nil
}

func resourceNames(resources []storage.APIResource) []string {
	names := make([]string, 0, len(resources))
	for _, res := range resources {
		names = append(names, res.Name)
	}
	return names
}

func identityResourceNames(resources []storage.IdentityResource) []string {
	names := make([]string, 0, len(resources))
	for _, res := range resources {
		names = append(names, res.Name)
	}
	return names
}
