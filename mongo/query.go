package mongo

import (
	// Standard Library Imports
	"fmt"

	// External Imports
	"go.mongodb.org/mongo-driver/v2/bson"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// toFilter translates a storage.Query into a mongo filter document. Each
// field is constrained once at the top level; a query constraining the same
// field more than once is wrapped in $and.
func toFilter(query storage.Query) (bson.D, error) {
	filter := bson.D{}
	clauses := bson.A{}
	seen := make(map[string]bool, len(query))
	repeated := false

	for _, c := range query {
		if c.Field == "" {
			return nil, fmt.Errorf("condition %s has no field", c)
		}
		switch c.Operator {
		case storage.OpEq, storage.OpIn, storage.OpLt, storage.OpGt:
		default:
			return nil, fmt.Errorf("condition %s: unsupported operator", c)
		}

		clause := bson.E{Key: c.Field, Value: bson.D{{Key: string(c.Operator), Value: c.Value}}}
		if seen[c.Field] {
			repeated = true
		}
		seen[c.Field] = true

		filter = append(filter, clause)
		clauses = append(clauses, bson.D{clause})
	}

	if repeated {
		return bson.D{{Key: "$and", Value: clauses}}, nil
	}
	return filter, nil
}
