package storage

import (
	// Standard Library Imports
	"crypto/sha256"
	"encoding/hex"
	"time"

	// External Imports
	"github.com/google/uuid"
)

// Stored field names for DeniedJTI, used to build queries.
const (
	DeniedJTIFieldSignature = "signature"
	DeniedJTIFieldExpiry    = "exp"
)

// DeniedJTI records a JSON Web Token ID that must not be accepted again until
// it expires.
type DeniedJTI struct {
	ID        string `bson:"id" json:"id" xml:"id"`
	Signature string `bson:"signature" json:"signature" xml:"signature"`
	// Expiry is the unix time after which the JTI may be forgotten.
	Expiry int64 `bson:"exp" json:"exp" xml:"exp"`
}

// EntityName implements Record.
func (DeniedJTI) EntityName() string { return EntityJtiDenylist }

// NewDeniedJTI returns a new DeniedJTI for jti, denied until exp.
func NewDeniedJTI(jti string, exp time.Time) DeniedJTI {
	return DeniedJTI{
		ID:        uuid.NewString(),
		Signature: SignatureFromJTI(jti),
		Expiry:    exp.Unix(),
	}
}

// SignatureFromJTI returns the stored signature for jti so raw token IDs are
// never persisted.
func SignatureFromJTI(jti string) string {
	sum := sha256.Sum256([]byte(jti))
	return hex.EncodeToString(sum[:])
}
