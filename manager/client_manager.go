package manager

import (
	// Standard Library Imports
	"context"
	"errors"
	"time"

	// External Imports
	"github.com/ory/fosite"
	"github.com/sirupsen/logrus"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// ClientManager provides a fosite storage implementation for Clients.
//
// Implements:
// - fosite.Storage
// - fosite.ClientManager
// - storage.ClientStore
type ClientManager struct {
	Clients    storage.Repository[storage.Client]
	DeniedJTIs storage.Repository[storage.DeniedJTI]

	log   logrus.FieldLogger
	clock func() time.Time
}

// NewClientManager returns a ClientManager reading clients from clients and
// tracking client assertion JTIs in deniedJTIs.
func NewClientManager(clients storage.Repository[storage.Client], deniedJTIs storage.Repository[storage.DeniedJTI], opts ...Option) *ClientManager {
	cfg := newConfig(opts)
	return &ClientManager{
		Clients:    clients,
		DeniedJTIs: deniedJTIs,
		log:        cfg.log,
		clock:      cfg.clock,
	}
}

// FindClientByID implements storage.ClientStore.
func (c *ClientManager) FindClientByID(ctx context.Context, clientID string) (*storage.Client, error) {
	return c.Clients.Single(ctx, storage.Where(storage.Eq(storage.ClientFieldID, clientID)))
}

// GetClient finds and returns an OAuth 2.0 client resource.
//
// GetClient implements:
// - fosite.Storage
// - fosite.ClientManager
func (c *ClientManager) GetClient(ctx context.Context, clientID string) (fosite.Client, error) {
	client, err := c.FindClientByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fosite.ErrNotFound
	}
	return client, nil
}

// ClientAssertionJWTValid returns an error if the JTI is known or the DB check
// failed and nil if the JTI is not known.
func (c *ClientManager) ClientAssertionJWTValid(ctx context.Context, jti string) error {
	denied, err := c.DeniedJTIs.Single(ctx, storage.Where(
		storage.Eq(storage.DeniedJTIFieldSignature, storage.SignatureFromJTI(jti)),
	))
	if err != nil {
		return err
	}
	if denied == nil {
		// the jti is not known => valid
		return nil
	}

	if time.Unix(denied.Expiry, 0).After(c.clock()) {
		// the jti is not expired yet => invalid
		return fosite.ErrJTIKnown
	}
	return nil
}

// SetClientAssertionJWT marks a JTI as known for the given expiry time.
// Before inserting the new JTI, it will clean up any existing JTIs that have
// expired as those tokens can not be replayed due to the expiry.
func (c *ClientManager) SetClientAssertionJWT(ctx context.Context, jti string, exp time.Time) error {
	log := c.log.WithFields(logrus.Fields{
		"package":    "manager",
		"collection": storage.EntityJtiDenylist,
		"method":     "SetClientAssertionJWT",
	})

	// delete expired JTIs
	deleted, err := c.DeniedJTIs.Delete(ctx, storage.Where(
		storage.Lt(storage.DeniedJTIFieldExpiry, c.clock().Unix()),
	))
	if err != nil {
		return err
	}
	log.WithField("count", deleted).Debug("removed expired JTIs")

	signature := storage.SignatureFromJTI(jti)
	existing, err := c.DeniedJTIs.Single(ctx, storage.Where(storage.Eq(storage.DeniedJTIFieldSignature, signature)))
	if err != nil {
		return err
	}
	if existing != nil {
		return fosite.ErrJTIKnown
	}

	err = c.DeniedJTIs.Add(ctx, storage.NewDeniedJTI(jti, exp))
	if err != nil {
		if errors.Is(err, storage.ErrResourceExists) {
			// lost a race with a concurrent insert of the same JTI
			return fosite.ErrJTIKnown
		}
		return err
	}
	return nil
}

// IsJWTUsed reports whether the JTI has already been used.
func (c *ClientManager) IsJWTUsed(ctx context.Context, jti string) (bool, error) {
	err := c.ClientAssertionJWTValid(ctx, jti)
	if err != nil {
		if errors.Is(err, fosite.ErrJTIKnown) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// MarkJWTUsedForTime marks the JTI as used until exp.
func (c *ClientManager) MarkJWTUsedForTime(ctx context.Context, jti string, exp time.Time) error {
	return c.SetClientAssertionJWT(ctx, jti, exp)
}
