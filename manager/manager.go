// Package manager implements the grant, resource and client stores on top of
// the storage Repository contract. Managers never touch a storage engine
// directly, so the same manager runs over the mongo and memory engines.
package manager

import (
	// Standard Library Imports
	"time"

	// External Imports
	"github.com/sirupsen/logrus"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// DefaultCacheTTL is how long CachedResourceManager keeps a lookup.
const DefaultCacheTTL = 5 * time.Minute

type config struct {
	log    logrus.FieldLogger
	policy storage.RevokePolicy
	ttl    time.Duration
	clock  func() time.Time
}

// Option configures a manager.
type Option func(*config)

// WithLogger sets the logger audit and failure lines are written to.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithRevokePolicy sets the policy GrantManager.RemoveAll applies.
func WithRevokePolicy(policy storage.RevokePolicy) Option {
	return func(c *config) {
		c.policy = policy
	}
}

// WithTTL sets how long CachedResourceManager keeps a lookup.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock sets the clock used to expire denied JTIs.
func WithClock(clock func() time.Time) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		log:    logrus.StandardLogger(),
		policy: storage.RevokeBestEffort,
		ttl:    DefaultCacheTTL,
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}
	return c
}
