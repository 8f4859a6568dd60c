package storage

import (
	// External Imports
	"github.com/ory/fosite"
)

// Stored field names for Client, used to build queries.
const (
	ClientFieldID = "id"
)

// Client is a registered OAuth 2.0 client.
//
// Implements:
// - fosite.Client
type Client struct {
	// ID is the client identifier.
	ID string `bson:"id" json:"id" yaml:"id"`
	// Name is a human readable name for the client.
	Name string `bson:"name" json:"name" yaml:"name"`
	// Secret is the hashed client secret. Public clients have none.
	Secret string `bson:"secret,omitempty" json:"secret,omitempty" yaml:"secret,omitempty"`
	// RedirectURIs are the allowed redirect targets.
	RedirectURIs []string `bson:"redirect_uris" json:"redirect_uris" yaml:"redirect_uris"`
	// GrantTypes the client may use.
	GrantTypes []string `bson:"grant_types" json:"grant_types" yaml:"grant_types"`
	// ResponseTypes the client may use.
	ResponseTypes []string `bson:"response_types" json:"response_types" yaml:"response_types"`
	// Scopes the client may request.
	Scopes []string `bson:"scopes" json:"scopes" yaml:"scopes"`
	// Audience the client may request tokens for.
	Audience []string `bson:"audience" json:"audience" yaml:"audience"`
	// Public clients authenticate without a secret.
	Public bool `bson:"public" json:"public" yaml:"public"`
	// Disabled clients are denied access.
	Disabled bool `bson:"disabled" json:"disabled" yaml:"disabled"`
	// CreateTime is when the client was created, in unix seconds.
	CreateTime int64 `bson:"create_time" json:"create_time" yaml:"create_time"`
	// UpdateTime is when the client was last updated, in unix seconds.
	UpdateTime int64 `bson:"update_time" json:"update_time" yaml:"update_time"`
}

// EntityName implements Record.
func (Client) EntityName() string { return EntityClients }

// GetID returns the client ID.
func (c *Client) GetID() string {
	return c.ID
}

// GetHashedSecret returns the hashed secret as it is stored in the store.
func (c *Client) GetHashedSecret() []byte {
	return []byte(c.Secret)
}

// GetRedirectURIs returns the client's allowed redirect URIs.
func (c *Client) GetRedirectURIs() []string {
	return c.RedirectURIs
}

// GetGrantTypes returns the client's allowed grant types.
func (c *Client) GetGrantTypes() fosite.Arguments {
	// https://openid.net/specs/openid-connect-registration-1_0.html#ClientMetadata
	// If omitted, the default is that the Client will use only the
	// authorization_code Grant Type.
	if len(c.GrantTypes) == 0 {
		return fosite.Arguments{"authorization_code"}
	}
	return c.GrantTypes
}

// GetResponseTypes returns the client's allowed response types.
func (c *Client) GetResponseTypes() fosite.Arguments {
	// If omitted, the default is that the Client will use only the code
	// Response Type.
	if len(c.ResponseTypes) == 0 {
		return fosite.Arguments{"code"}
	}
	return c.ResponseTypes
}

// GetScopes returns the scopes this client is allowed to request.
func (c *Client) GetScopes() fosite.Arguments {
	return c.Scopes
}

// IsPublic returns true if the client does not authenticate with a secret.
func (c *Client) IsPublic() bool {
	return c.Public
}

// GetAudience returns the audiences the client may request tokens for.
func (c *Client) GetAudience() fosite.Arguments {
	return c.Audience
}

// HasScope reports whether the client may request every one of scopes.
func (c *Client) HasScope(scopes ...string) bool {
	return c.GetScopes().Has(scopes...)
}
