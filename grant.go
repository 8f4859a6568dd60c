package storage

import (
	// Standard Library Imports
	"strings"
	"time"
)

// Grant types issued by the protocol engine.
const (
	GrantTypeAuthorizationCode = "authorization_code"
	GrantTypeRefreshToken      = "refresh_token"
	GrantTypeReferenceToken    = "reference_token"
	GrantTypeUserConsent       = "user_consent"
	GrantTypeDeviceCode        = "device_code"
)

// Stored field names for Grant, used to build queries.
const (
	GrantFieldKey        = "key"
	GrantFieldType       = "type"
	GrantFieldSubjectID  = "subject_id"
	GrantFieldSessionID  = "session_id"
	GrantFieldClientID   = "client_id"
	GrantFieldExpiration = "expiration"
)

// Grant is a short-lived security grant such as an authorization code, a
// refresh token, a reference token or a consent record.
type Grant struct {
	// Key uniquely identifies the grant.
	Key string `bson:"key" json:"key"`
	// Type is one of the GrantType constants.
	Type         string     `bson:"type" json:"type"`
	SubjectID    string     `bson:"subject_id" json:"subject_id"`
	SessionID    string     `bson:"session_id" json:"session_id"`
	ClientID     string     `bson:"client_id" json:"client_id"`
	Description  string     `bson:"description" json:"description"`
	CreationTime time.Time  `bson:"creation_time" json:"creation_time"`
	Expiration   *time.Time `bson:"expiration" json:"expiration"`
	ConsumedTime *time.Time `bson:"consumed_time" json:"consumed_time"`
	// Data is the serialized grant payload. It is opaque to storage.
	Data string `bson:"data" json:"data"`
}

// EntityName implements Record.
func (Grant) EntityName() string { return EntityGrants }

// Validate ensures the grant can be addressed by key.
func (g Grant) Validate() error {
	return ValidateName("grant key", g.Key)
}

// IsExpired reports whether the grant has an expiration before now.
func (g Grant) IsExpired(now time.Time) bool {
	return g.Expiration != nil && g.Expiration.Before(now)
}

// GrantFilter selects grants by a conjunction of optional criteria. At least
// one criterion must be set.
type GrantFilter struct {
	// SubjectID filters grants based on subject.
	SubjectID string `json:"subject_id" xml:"subject_id" validate:"required_without_all=SessionID ClientID Type"`
	// SessionID filters grants based on session.
	SessionID string `json:"session_id" xml:"session_id"`
	// ClientID filters grants based on client.
	ClientID string `json:"client_id" xml:"client_id"`
	// Type filters grants based on grant type.
	Type string `json:"type" xml:"type"`
}

// normalized trims every criterion so whitespace-only values count as unset.
func (f GrantFilter) normalized() GrantFilter {
	return GrantFilter{
		SubjectID: strings.TrimSpace(f.SubjectID),
		SessionID: strings.TrimSpace(f.SessionID),
		ClientID:  strings.TrimSpace(f.ClientID),
		Type:      strings.TrimSpace(f.Type),
	}
}

// Validate rejects a filter with no criteria, which would otherwise select
// every grant.
func (f GrantFilter) Validate() error {
	if err := validate.Struct(f.normalized()); err != nil {
		return NewValidationError("grant filter requires at least one of subject_id, session_id, client_id or type")
	}
	return nil
}

// Query builds the conjunction of the filter's set criteria.
func (f GrantFilter) Query() Query {
	f = f.normalized()

	var q Query
	if f.ClientID != "" {
		q = append(q, Eq(GrantFieldClientID, f.ClientID))
	}
	if f.SessionID != "" {
		q = append(q, Eq(GrantFieldSessionID, f.SessionID))
	}
	if f.SubjectID != "" {
		q = append(q, Eq(GrantFieldSubjectID, f.SubjectID))
	}
	if f.Type != "" {
		q = append(q, Eq(GrantFieldType, f.Type))
	}
	return q
}
