package storage

import (
	// Standard Library Imports
	"context"
	"time"
)

// GrantStore manages the lifecycle of persisted grants: authorization codes,
// refresh tokens, reference tokens and consent records.
type GrantStore interface {
	// ListBySubject returns every grant issued to subjectID.
	ListBySubject(ctx context.Context, subjectID string) ([]Grant, error)
	// List returns every grant matching filter. An empty filter is rejected
	// with ErrValidation.
	List(ctx context.Context, filter GrantFilter) ([]Grant, error)
	// Get returns the grant stored under key, or nil if there is none.
	Get(ctx context.Context, key string) (*Grant, error)
	// Store inserts grant, replacing any grant with the same key.
	Store(ctx context.Context, grant Grant) error
	// Remove deletes the grant stored under key. Removing an unknown key is
	// not an error.
	Remove(ctx context.Context, key string) error
	// RemoveAllBySubjectClient deletes every grant for subjectID and clientID.
	RemoveAllBySubjectClient(ctx context.Context, subjectID string, clientID string) error
	// RemoveAllBySubjectClientType deletes every grant of grantType for
	// subjectID and clientID.
	RemoveAllBySubjectClientType(ctx context.Context, subjectID string, clientID string, grantType string) error
	// RemoveAll deletes every grant matching filter using the store's default
	// RevokePolicy. An empty filter is rejected with ErrValidation.
	RemoveAll(ctx context.Context, filter GrantFilter) error
	// RemoveAllWithPolicy deletes every grant matching filter using policy.
	RemoveAllWithPolicy(ctx context.Context, filter GrantFilter, policy RevokePolicy) error
	// RemoveExpired deletes every grant that expired before now and reports
	// how many were removed. Grants without an expiration are kept.
	RemoveExpired(ctx context.Context, now time.Time) (int64, error)
}

// RevokePolicy decides what happens when a bulk revocation fails in storage.
type RevokePolicy int

const (
	// RevokeBestEffort logs storage failures and reports success, so a
	// failed revocation does not abort the caller's flow (e.g. logout).
	RevokeBestEffort RevokePolicy = iota
	// RevokeStrict returns storage failures to the caller.
	RevokeStrict
)

func (p RevokePolicy) String() string {
	switch p {
	case RevokeBestEffort:
		return "best_effort"
	case RevokeStrict:
		return "strict"
	default:
		return "unknown"
	}
}
