package manager

import (
	// Standard Library Imports
	"context"
	"time"

	// External Imports
	"github.com/sirupsen/logrus"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// GrantManager handles consent decisions, authorization codes, refresh tokens
// and reference tokens.
//
// Implements:
// - storage.GrantStore
type GrantManager struct {
	Grants storage.Repository[storage.Grant]

	log    logrus.FieldLogger
	policy storage.RevokePolicy
}

// NewGrantManager returns a GrantManager storing grants in grants. Bulk
// revocation is best effort unless WithRevokePolicy says otherwise.
func NewGrantManager(grants storage.Repository[storage.Grant], opts ...Option) *GrantManager {
	cfg := newConfig(opts)
	return &GrantManager{
		Grants: grants,
		log:    cfg.log,
		policy: cfg.policy,
	}
}

func (g *GrantManager) logger(method string) logrus.FieldLogger {
	return g.log.WithFields(logrus.Fields{
		"package":    "manager",
		"collection": storage.EntityGrants,
		"method":     method,
	})
}

// ListBySubject implements storage.GrantStore.
func (g *GrantManager) ListBySubject(ctx context.Context, subjectID string) ([]storage.Grant, error) {
	return g.Grants.Where(ctx, storage.Where(storage.Eq(storage.GrantFieldSubjectID, subjectID)))
}

// List implements storage.GrantStore.
func (g *GrantManager) List(ctx context.Context, filter storage.GrantFilter) ([]storage.Grant, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	grants, err := g.Grants.Where(ctx, filter.Query())
	if err != nil {
		return nil, err
	}

	g.logger("List").WithFields(logrus.Fields{
		"count":  len(grants),
		"filter": filter,
	}).Debug("persisted grants found")
	return grants, nil
}

// Get implements storage.GrantStore.
func (g *GrantManager) Get(ctx context.Context, key string) (*storage.Grant, error) {
	return g.Grants.Single(ctx, storage.Where(storage.Eq(storage.GrantFieldKey, key)))
}

// Store implements storage.GrantStore.
func (g *GrantManager) Store(ctx context.Context, grant storage.Grant) error {
	if err := grant.Validate(); err != nil {
		return err
	}
	return g.Grants.Replace(ctx, storage.Where(storage.Eq(storage.GrantFieldKey, grant.Key)), grant)
}

// Remove implements storage.GrantStore.
func (g *GrantManager) Remove(ctx context.Context, key string) error {
	_, err := g.Grants.Delete(ctx, storage.Where(storage.Eq(storage.GrantFieldKey, key)))
	return err
}

// RemoveAllBySubjectClient implements storage.GrantStore.
func (g *GrantManager) RemoveAllBySubjectClient(ctx context.Context, subjectID string, clientID string) error {
	_, err := g.Grants.Delete(ctx, storage.Where(
		storage.Eq(storage.GrantFieldSubjectID, subjectID),
		storage.Eq(storage.GrantFieldClientID, clientID),
	))
	return err
}

// RemoveAllBySubjectClientType implements storage.GrantStore.
func (g *GrantManager) RemoveAllBySubjectClientType(ctx context.Context, subjectID string, clientID string, grantType string) error {
	_, err := g.Grants.Delete(ctx, storage.Where(
		storage.Eq(storage.GrantFieldSubjectID, subjectID),
		storage.Eq(storage.GrantFieldClientID, clientID),
		storage.Eq(storage.GrantFieldType, grantType),
	))
	return err
}

// Policy returns the RevokePolicy RemoveAll applies.
func (g *GrantManager) Policy() storage.RevokePolicy {
	return g.policy
}

// RemoveAll implements storage.GrantStore.
func (g *GrantManager) RemoveAll(ctx context.Context, filter storage.GrantFilter) error {
	return g.RemoveAllWithPolicy(ctx, filter, g.policy)
}

// RemoveAllWithPolicy implements storage.GrantStore. The matching grants are
// read first and then deleted by key, so a grant stored in between is left
// alone. Validation errors are always returned.
func (g *GrantManager) RemoveAllWithPolicy(ctx context.Context, filter storage.GrantFilter, policy storage.RevokePolicy) error {
	if err := filter.Validate(); err != nil {
		return err
	}

	log := g.logger("RemoveAll").WithFields(logrus.Fields{
		"filter": filter,
		"policy": policy.String(),
	})

	grants, err := g.Grants.Where(ctx, filter.Query())
	if err != nil {
		return revokeFailed(log, policy, 0, err)
	}

	log.WithField("count", len(grants)).Debug("removing persisted grants")
	if len(grants) == 0 {
		return nil
	}

	keys := make([]string, 0, len(grants))
	for _, grant := range grants {
		keys = append(keys, grant.Key)
	}

	_, err = g.Grants.Delete(ctx, storage.Where(storage.In(storage.GrantFieldKey, keys)))
	if err != nil {
		return revokeFailed(log, policy, len(grants), err)
	}
	return nil
}

// revokeFailed applies policy to a storage failure during bulk revocation.
func revokeFailed(log logrus.FieldLogger, policy storage.RevokePolicy, count int, err error) error {
	log = log.WithField("count", count).WithError(err)
	if policy == storage.RevokeStrict {
		log.Error("error removing persisted grants")
		return err
	}
	log.Warn("error removing persisted grants")
	return nil
}

// RemoveExpired implements storage.GrantStore.
func (g *GrantManager) RemoveExpired(ctx context.Context, now time.Time) (int64, error) {
	deleted, err := g.Grants.Delete(ctx, storage.Where(storage.Lt(storage.GrantFieldExpiration, now)))
	if err != nil {
		return 0, err
	}

	g.logger("RemoveExpired").WithFields(logrus.Fields{
		"count":  deleted,
		"before": now,
	}).Debug("removed expired persisted grants")
	return deleted, nil
}
