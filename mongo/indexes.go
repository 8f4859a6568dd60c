package mongo

import (
	// Standard Library Imports
	"context"

	// External Imports
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// Index names.
const (
	IdxGrantKey               = "idxGrantKey"
	IdxGrantSubjectClientType = "idxGrantSubjectClientType"
	IdxGrantSessionID         = "idxGrantSessionId"
	IdxExpires                = "idxExpires"
	IdxResourceName           = "idxResourceName"
	IdxClientID               = "idxClientId"
	IdxSignatureID            = "idxSignatureId"
)

// NewIndex generates a new index model, ready to be saved in mongo.
//
// Note:
//   - This function assumes you are entering valid index keys and relies on
//     mongo rejecting index operations if a bad index is created.
func NewIndex(name string, keys ...string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    indexKeys(keys...),
		Options: options.Index().SetName(name),
	}
}

// NewUniqueIndex generates a new unique index model, ready to be saved in
// mongo.
func NewUniqueIndex(name string, keys ...string) mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    indexKeys(keys...),
		Options: options.Index().SetName(name).SetUnique(true),
	}
}

// indexKeys builds an ascending compound key in the order given.
func indexKeys(keys ...string) bson.D {
	doc := make(bson.D, 0, len(keys))
	for _, key := range keys {
		doc = append(doc, bson.E{Key: key, Value: 1})
	}
	return doc
}

// collectionIndexes returns the indexes each collection requires.
func collectionIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		storage.EntityGrants: {
			NewUniqueIndex(IdxGrantKey, storage.GrantFieldKey),
			NewIndex(IdxGrantSubjectClientType, storage.GrantFieldSubjectID, storage.GrantFieldClientID, storage.GrantFieldType),
			NewIndex(IdxGrantSessionID, storage.GrantFieldSessionID),
			NewIndex(IdxExpires, storage.GrantFieldExpiration),
		},
		storage.EntityAPIResources: {
			NewUniqueIndex(IdxResourceName, storage.ResourceFieldName),
		},
		storage.EntityIdentityResources: {
			NewUniqueIndex(IdxResourceName, storage.ResourceFieldName),
		},
		storage.EntityAPIScopes: {
			NewUniqueIndex(IdxResourceName, storage.ResourceFieldName),
		},
		storage.EntityClients: {
			NewUniqueIndex(IdxClientID, storage.ClientFieldID),
		},
		storage.EntityJtiDenylist: {
			NewUniqueIndex(IdxSignatureID, storage.DeniedJTIFieldSignature),
			NewIndex(IdxExpires, storage.DeniedJTIFieldExpiry),
		},
	}
}

// Configure implements storage.Configure. It creates every index the stores
// rely on; creating an index that already exists is a no-op.
func (s *Store) Configure(ctx context.Context) (err error) {
	for name, indices := range collectionIndexes() {
		log := logger.WithFields(logrus.Fields{
			"package":    "mongo",
			"collection": name,
			"method":     "Configure",
		})

		collection := s.DB.Collection(name)
		_, err = collection.Indexes().CreateMany(ctx, indices)
		if err != nil {
			log.WithError(err).Error(logError)
			return storage.NewStorageError("create_indexes", name, err)
		}
	}
	return nil
}
