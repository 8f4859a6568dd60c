package mongo

import (
	// Standard Library Imports
	"crypto/tls"
	"fmt"
	"time"

	// External Imports
	"github.com/caarlos0/env/v11"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// Config provides a way to define the specific pieces that make up a mongo
// connection.
type Config struct {
	// URI, when set, takes precedence over Hostnames and Port.
	URI string `env:"MONGO_URI"`
	// Hostnames are the mongo hosts to connect to.
	Hostnames []string `env:"MONGO_HOSTNAMES" envSeparator:"," envDefault:"localhost"`
	// Port is shared by every host in Hostnames.
	Port int `env:"MONGO_PORT" envDefault:"27017"`
	// DatabaseName is the database grants and resources are stored in.
	DatabaseName string `env:"MONGO_DATABASE" envDefault:"oauth2"`
	Username     string `env:"MONGO_USERNAME"`
	Password     string `env:"MONGO_PASSWORD"`
	// AuthDB is the database the user authenticates against.
	AuthDB  string `env:"MONGO_AUTH_DB" envDefault:"admin"`
	Replset string `env:"MONGO_REPLSET"`
	SSL     bool   `env:"MONGO_SSL"`
	// Timeout bounds connecting and server selection.
	Timeout time.Duration `env:"MONGO_TIMEOUT" envDefault:"10s"`
	// ResourceCacheTTL caches resource lookups for the given duration. Zero
	// disables the cache.
	ResourceCacheTTL time.Duration `env:"MONGO_RESOURCE_CACHE_TTL"`
}

// DefaultConfig returns a configuration for a local, unauthenticated mongo.
func DefaultConfig() *Config {
	return &Config{
		Hostnames:    []string{"localhost"},
		Port:         27017,
		DatabaseName: "oauth2",
		AuthDB:       "admin",
		Timeout:      10 * time.Second,
	}
}

// ConfigFromEnv loads a configuration from MONGO_* environment variables.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// clientOptions builds the driver options for the configuration.
func (c *Config) clientOptions() *options.ClientOptions {
	opts := options.Client()
	if c.URI != "" {
		opts.ApplyURI(c.URI)
	} else {
		hosts := make([]string, 0, len(c.Hostnames))
		for _, host := range c.Hostnames {
			hosts = append(hosts, fmt.Sprintf("%s:%d", host, c.Port))
		}
		opts.SetHosts(hosts)
	}

	if c.Username != "" {
		opts.SetAuth(options.Credential{
			AuthSource: c.AuthDB,
			Username:   c.Username,
			Password:   c.Password,
		})
	}
	if c.Replset != "" {
		opts.SetReplicaSet(c.Replset)
	}
	if c.SSL {
		opts.SetTLSConfig(&tls.Config{MinVersion: tls.VersionTLS12})
	}
	if c.Timeout > 0 {
		opts.SetConnectTimeout(c.Timeout)
		opts.SetServerSelectionTimeout(c.Timeout)
	}
	return opts
}
