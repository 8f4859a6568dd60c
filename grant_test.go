package storage_test

import (
	// Standard Library Imports
	"errors"
	"testing"
	"time"

	// External Imports
	"github.com/stretchr/testify/assert"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

func TestGrantFilter_Validate(t *testing.T) {
	tests := []struct {
		name    string
		filter  storage.GrantFilter
		invalid bool
	}{
		{name: "empty", filter: storage.GrantFilter{}, invalid: true},
		{name: "whitespace only", filter: storage.GrantFilter{SubjectID: "  ", ClientID: "\t"}, invalid: true},
		{name: "subject", filter: storage.GrantFilter{SubjectID: "alice"}},
		{name: "session", filter: storage.GrantFilter{SessionID: "s1"}},
		{name: "client", filter: storage.GrantFilter{ClientID: "web"}},
		{name: "type", filter: storage.GrantFilter{Type: storage.GrantTypeRefreshToken}},
		{name: "all", filter: storage.GrantFilter{SubjectID: "alice", SessionID: "s1", ClientID: "web", Type: storage.GrantTypeUserConsent}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.filter.Validate()
			if tt.invalid {
				assert.True(t, errors.Is(err, storage.ErrValidation), "expected validation error, got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestGrantFilter_Query(t *testing.T) {
	filter := storage.GrantFilter{SubjectID: " alice ", Type: storage.GrantTypeRefreshToken}

	assert.Equal(t, storage.Where(
		storage.Eq(storage.GrantFieldSubjectID, "alice"),
		storage.Eq(storage.GrantFieldType, storage.GrantTypeRefreshToken),
	), filter.Query())

	full := storage.GrantFilter{SubjectID: "alice", SessionID: "s1", ClientID: "web", Type: "t"}
	assert.Equal(t, storage.Where(
		storage.Eq(storage.GrantFieldClientID, "web"),
		storage.Eq(storage.GrantFieldSessionID, "s1"),
		storage.Eq(storage.GrantFieldSubjectID, "alice"),
		storage.Eq(storage.GrantFieldType, "t"),
	), full.Query())
}

func TestGrant_Validate(t *testing.T) {
	assert.NoError(t, storage.Grant{Key: "k1"}.Validate())
	assert.True(t, errors.Is(storage.Grant{}.Validate(), storage.ErrValidation))
	assert.True(t, errors.Is(storage.Grant{Key: "   "}.Validate(), storage.ErrValidation))
}

func TestGrant_IsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	assert.False(t, storage.Grant{}.IsExpired(now))
	assert.True(t, storage.Grant{Expiration: &past}.IsExpired(now))
	assert.False(t, storage.Grant{Expiration: &future}.IsExpired(now))
}

func TestEntityName(t *testing.T) {
	assert.Equal(t, "persisted_grant", storage.EntityName[storage.Grant]())
	assert.Equal(t, "api_resource", storage.EntityName[storage.APIResource]())
	assert.Equal(t, "identity_resource", storage.EntityName[storage.IdentityResource]())
	assert.Equal(t, "api_scope", storage.EntityName[storage.APIScope]())
}

func TestValidateNames(t *testing.T) {
	assert.True(t, errors.Is(storage.ValidateNames("names", nil), storage.ErrValidation))
	assert.NoError(t, storage.ValidateNames("names", []string{}))
	assert.NoError(t, storage.ValidateNames("names", []string{"api1"}))
}

func TestSignatureFromJTI(t *testing.T) {
	sig := storage.SignatureFromJTI("jti-1")

	assert.Len(t, sig, 64)
	assert.Equal(t, sig, storage.SignatureFromJTI("jti-1"))
	assert.NotEqual(t, sig, storage.SignatureFromJTI("jti-2"))

	exp := time.Unix(1700000000, 0)
	denied := storage.NewDeniedJTI("jti-1", exp)
	assert.Equal(t, sig, denied.Signature)
	assert.Equal(t, int64(1700000000), denied.Expiry)
	assert.NotEmpty(t, denied.ID)
}

func TestResources_CloneSharesNothing(t *testing.T) {
	all := storage.Resources{
		APIResources: []storage.APIResource{{
			Resource: storage.Resource{Name: "orders", Properties: map[string]string{"tier": "gold"}},
			Scopes:   []string{"orders.read"},
		}},
	}

	clone := all.Clone()
	clone.APIResources[0].Name = "changed"
	clone.APIResources[0].Scopes[0] = "changed"
	clone.APIResources[0].Properties["tier"] = "changed"

	assert.Equal(t, "orders", all.APIResources[0].Name)
	assert.Equal(t, []string{"orders.read"}, all.APIResources[0].Scopes)
	assert.Equal(t, "gold", all.APIResources[0].Properties["tier"])
	assert.Nil(t, clone.IdentityResources)
	assert.Nil(t, storage.CloneAll[storage.APIScope](nil))
}
