package storage

import (
	// Standard Library Imports
	"context"
)

// ResourceStore resolves API and identity resource definitions. Lookups that
// find nothing return nil or an empty list, never an error.
type ResourceStore interface {
	// FindAPIResource returns the API resource called name, or nil. An empty
	// name is rejected with ErrValidation.
	FindAPIResource(ctx context.Context, name string) (*APIResource, error)
	// FindAPIResourcesByScope returns the API resources exposing any of
	// scopeNames.
	FindAPIResourcesByScope(ctx context.Context, scopeNames []string) ([]APIResource, error)
	// FindAPIResourcesByScopeName returns the API resources exposing any of
	// scopeNames.
	FindAPIResourcesByScopeName(ctx context.Context, scopeNames []string) ([]APIResource, error)
	// FindIdentityResourcesByScope returns the identity resources named in
	// scopeNames.
	FindIdentityResourcesByScope(ctx context.Context, scopeNames []string) ([]IdentityResource, error)
	// FindIdentityResourcesByScopeName returns the identity resources named
	// in scopeNames.
	FindIdentityResourcesByScopeName(ctx context.Context, scopeNames []string) ([]IdentityResource, error)
	// FindAPIScopesByName returns the API scopes named in scopeNames.
	FindAPIScopesByName(ctx context.Context, scopeNames []string) ([]APIScope, error)
	// FindAPIResourcesByName returns the API resources named in names. A nil
	// list is rejected with ErrValidation; unknown names are skipped.
	FindAPIResourcesByName(ctx context.Context, names []string) ([]APIResource, error)
	// GetAllResources returns the whole catalog.
	GetAllResources(ctx context.Context) (Resources, error)
}
