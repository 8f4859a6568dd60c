package storage

import (
	// Standard Library Imports
	"context"

	// External Imports
	"github.com/ory/fosite"
)

// ClientStore resolves registered clients and conforms to fosite.Storage so
// it can back a fosite OAuth2 provider directly.
type ClientStore interface {
	// Storage fosite.Storage provides get client and client assertion JTI
	// replay protection.
	fosite.Storage

	// FindClientByID returns the client registered as clientID, or nil.
	FindClientByID(ctx context.Context, clientID string) (*Client, error)
}
