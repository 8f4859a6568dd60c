package storage

const (
	// EntityGrants provides the name of the entity to use in order to create,
	// read and delete persisted grants (authorization codes, refresh tokens,
	// reference tokens and consent records).
	EntityGrants = "persisted_grant"

	// EntityAPIResources provides the name of the entity to use in order to
	// read API resource definitions.
	EntityAPIResources = "api_resource"

	// EntityIdentityResources provides the name of the entity to use in order
	// to read identity resource definitions.
	EntityIdentityResources = "identity_resource"

	// EntityAPIScopes provides the name of the entity to use in order to read
	// API scope definitions.
	EntityAPIScopes = "api_scope"

	// EntityClients provides the name of the entity to use in order to create,
	// read, update and delete Clients.
	EntityClients = "client"

	// EntityJtiDenylist provides the name of the entity to use in order to
	// track and deny.
	EntityJtiDenylist = "jti_deny_list"
)

// Record is implemented by every kind stored through a Repository. The
// collection a record lives in is derived from its kind alone.
type Record interface {
	EntityName() string
}

// EntityName returns the collection name for record kind T.
func EntityName[T Record]() string {
	var zero T
	return zero.EntityName()
}
