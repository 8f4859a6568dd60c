package storage

import (
	// Standard Library Imports
	"fmt"
	"strings"
)

// Operator names a comparison applied to a single record field.
type Operator string

const (
	// OpEq matches when the field equals the value. An array field matches
	// when any element equals the value.
	OpEq Operator = "$eq"
	// OpIn matches when the field equals any of the values. An array field
	// matches when it shares at least one element with the values.
	OpIn Operator = "$in"
	// OpLt matches when the field is less than the value.
	OpLt Operator = "$lt"
	// OpGt matches when the field is greater than the value.
	OpGt Operator = "$gt"
)

// Condition is a single field/operator/value triple. Field is the stored
// (bson) field name and may use dot notation for embedded documents.
type Condition struct {
	Field    string
	Operator Operator
	Value    interface{}
}

func (c Condition) String() string {
	return fmt.Sprintf("%s %s %v", c.Field, c.Operator, c.Value)
}

// Eq builds an equality condition.
func Eq(field string, value interface{}) Condition {
	return Condition{Field: field, Operator: OpEq, Value: value}
}

// In builds a set membership condition. A nil slice matches nothing.
func In[V any](field string, values []V) Condition {
	if values == nil {
		values = []V{}
	}
	return Condition{Field: field, Operator: OpIn, Value: values}
}

// Lt builds a less-than condition.
func Lt(field string, value interface{}) Condition {
	return Condition{Field: field, Operator: OpLt, Value: value}
}

// Gt builds a greater-than condition.
func Gt(field string, value interface{}) Condition {
	return Condition{Field: field, Operator: OpGt, Value: value}
}

// Query is a conjunction of conditions. The empty Query matches every record.
type Query []Condition

// Where starts a query from the given conditions.
func Where(conditions ...Condition) Query {
	return Query(conditions)
}

// And returns a new query constrained by the additional conditions.
func (q Query) And(conditions ...Condition) Query {
	out := make(Query, 0, len(q)+len(conditions))
	out = append(out, q...)
	return append(out, conditions...)
}

func (q Query) String() string {
	if len(q) == 0 {
		return "{}"
	}
	parts := make([]string, len(q))
	for i, c := range q {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, " AND ") + "}"
}
