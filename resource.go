package storage

import (
	// Standard Library Imports
	"maps"
	"slices"
)

// Stored field names for resources, used to build queries.
const (
	ResourceFieldName   = "name"
	ResourceFieldScopes = "scopes"
)

// Resource holds the fields shared by every catalog entry.
type Resource struct {
	// Name is unique within a resource kind.
	Name        string            `bson:"name" json:"name" yaml:"name"`
	DisplayName string            `bson:"display_name" json:"display_name" yaml:"display_name"`
	Description string            `bson:"description" json:"description" yaml:"description"`
	Enabled     bool              `bson:"enabled" json:"enabled" yaml:"enabled"`
	UserClaims  []string          `bson:"user_claims" json:"user_claims" yaml:"user_claims"`
	Properties  map[string]string `bson:"properties" json:"properties" yaml:"properties"`
}

// IdentityResource is a named group of user claims requestable as a scope.
type IdentityResource struct {
	Resource `bson:",inline" yaml:",inline"`

	Required                bool `bson:"required" json:"required" yaml:"required"`
	Emphasize               bool `bson:"emphasize" json:"emphasize" yaml:"emphasize"`
	ShowInDiscoveryDocument bool `bson:"show_in_discovery_document" json:"show_in_discovery_document" yaml:"show_in_discovery_document"`
}

// EntityName implements Record.
func (IdentityResource) EntityName() string { return EntityIdentityResources }

// APIScope is a scope a client may request access to.
type APIScope struct {
	Resource `bson:",inline" yaml:",inline"`

	Required                bool `bson:"required" json:"required" yaml:"required"`
	Emphasize               bool `bson:"emphasize" json:"emphasize" yaml:"emphasize"`
	ShowInDiscoveryDocument bool `bson:"show_in_discovery_document" json:"show_in_discovery_document" yaml:"show_in_discovery_document"`
}

// EntityName implements Record.
func (APIScope) EntityName() string { return EntityAPIScopes }

// APIResource is a protected API and the scopes that grant access to it.
type APIResource struct {
	Resource `bson:",inline" yaml:",inline"`

	Scopes                              []string `bson:"scopes" json:"scopes" yaml:"scopes"`
	AllowedAccessTokenSigningAlgorithms []string `bson:"allowed_access_token_signing_algorithms" json:"allowed_access_token_signing_algorithms" yaml:"allowed_access_token_signing_algorithms"`
}

// EntityName implements Record.
func (APIResource) EntityName() string { return EntityAPIResources }

// Resources is a snapshot of the resource catalog. The three lists are read
// independently and are not guaranteed to be consistent with each other.
type Resources struct {
	IdentityResources []IdentityResource `json:"identity_resources"`
	APIResources      []APIResource      `json:"api_resources"`
	APIScopes         []APIScope         `json:"api_scopes"`
}

// ScopeNames returns the names of every identity resource and API scope.
func (r Resources) ScopeNames() []string {
	names := make([]string, 0, len(r.IdentityResources)+len(r.APIScopes))
	for _, res := range r.IdentityResources {
		names = append(names, res.Name)
	}
	for _, scope := range r.APIScopes {
		names = append(names, scope.Name)
	}
	return names
}

// APIResourceNames returns the names of every API resource.
func (r Resources) APIResourceNames() []string {
	names := make([]string, 0, len(r.APIResources))
	for _, res := range r.APIResources {
		names = append(names, res.Name)
	}
	return names
}

// Clone returns a copy that shares no slices or maps with r.
func (r Resource) Clone() Resource {
	r.UserClaims = slices.Clone(r.UserClaims)
	r.Properties = maps.Clone(r.Properties)
	return r
}

// Clone returns a copy that shares no slices or maps with r.
func (r IdentityResource) Clone() IdentityResource {
	r.Resource = r.Resource.Clone()
	return r
}

// Clone returns a copy that shares no slices or maps with s.
func (s APIScope) Clone() APIScope {
	s.Resource = s.Resource.Clone()
	return s
}

// Clone returns a copy that shares no slices or maps with r.
func (r APIResource) Clone() APIResource {
	r.Resource = r.Resource.Clone()
	r.Scopes = slices.Clone(r.Scopes)
	r.AllowedAccessTokenSigningAlgorithms = slices.Clone(r.AllowedAccessTokenSigningAlgorithms)
	return r
}

// Clone returns a deep copy of the snapshot.
func (r Resources) Clone() Resources {
	return Resources{
		IdentityResources: CloneAll(r.IdentityResources),
		APIResources:      CloneAll(r.APIResources),
		APIScopes:         CloneAll(r.APIScopes),
	}
}

// CloneAll clones every element of records. A nil slice stays nil.
func CloneAll[T interface{ Clone() T }](records []T) []T {
	if records == nil {
		return nil
	}
	out := make([]T, len(records))
	for i, record := range records {
		out[i] = record.Clone()
	}
	return out
}
