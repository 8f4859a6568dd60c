package memory

import (
	// Standard Library Imports
	"fmt"
	"reflect"
	"strings"

	// External Imports
	"go.mongodb.org/mongo-driver/v2/bson"

	// Internal Imports
	"github.com/p000ic/go-grantstore-mongo"
)

// condition is a storage.Condition with its value encoded the way it would be
// stored, so it compares like for like with decoded documents.
type condition struct {
	path     []string
	operator storage.Operator
	value    interface{}
}

// matcher evaluates a compiled storage.Query against stored documents.
type matcher []condition

func compile(query storage.Query) (matcher, error) {
	m := make(matcher, 0, len(query))
	for _, c := range query {
		if c.Field == "" {
			return nil, fmt.Errorf("condition %s has no field", c)
		}
		value, err := normalize(c.Value)
		if err != nil {
			return nil, fmt.Errorf("condition %s: %w", c, err)
		}
		switch c.Operator {
		case storage.OpEq, storage.OpLt, storage.OpGt:
		case storage.OpIn:
			if _, ok := value.(bson.A); !ok {
				return nil, fmt.Errorf("condition %s: $in needs an array", c)
			}
		default:
			return nil, fmt.Errorf("condition %s: unsupported operator", c)
		}
		m = append(m, condition{
			path:     strings.Split(c.Field, "."),
			operator: c.Operator,
			value:    value,
		})
	}
	return m, nil
}

// normalize round-trips value through BSON, e.g. time.Time becomes
// bson.DateTime and slices become bson.A.
func normalize(value interface{}) (interface{}, error) {
	raw, err := bson.Marshal(bson.D{{Key: "v", Value: value}})
	if err != nil {
		return nil, err
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc["v"], nil
}

func (m matcher) matches(raw bson.Raw) (bool, error) {
	if len(m) == 0 {
		return true, nil
	}

	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return false, err
	}
	for _, c := range m {
		if !c.matches(doc) {
			return false, nil
		}
	}
	return true, nil
}

func (c condition) matches(doc bson.M) bool {
	field, present := lookup(doc, c.path)

	switch c.operator {
	case storage.OpEq:
		return equalsField(field, present, c.value)
	case storage.OpIn:
		for _, v := range c.value.(bson.A) {
			if equalsField(field, present, v) {
				return true
			}
		}
		return false
	case storage.OpLt:
		return present && anyElement(field, func(v interface{}) bool {
			cmp, ok := compare(v, c.value)
			return ok && cmp < 0
		})
	case storage.OpGt:
		return present && anyElement(field, func(v interface{}) bool {
			cmp, ok := compare(v, c.value)
			return ok && cmp > 0
		})
	}
	return false
}

// equalsField applies mongo equality: null matches a missing field, and an
// array field matches when it equals the value or contains it.
func equalsField(field interface{}, present bool, value interface{}) bool {
	if !present {
		return value == nil
	}
	if equal(field, value) {
		return true
	}
	if arr, ok := field.(bson.A); ok {
		for _, v := range arr {
			if equal(v, value) {
				return true
			}
		}
	}
	return false
}

func anyElement(field interface{}, fn func(interface{}) bool) bool {
	if arr, ok := field.(bson.A); ok {
		for _, v := range arr {
			if fn(v) {
				return true
			}
		}
		return false
	}
	return fn(field)
}

func lookup(doc bson.M, path []string) (interface{}, bool) {
	var current interface{} = doc
	for _, key := range path {
		switch d := current.(type) {
		case bson.M:
			v, ok := d[key]
			if !ok {
				return nil, false
			}
			current = v
		case bson.D:
			found := false
			for _, e := range d {
				if e.Key == key {
					current, found = e.Value, true
					break
				}
			}
			if !found {
				return nil, false
			}
		default:
			return nil, false
		}
	}
	return current, true
}

func equal(a, b interface{}) bool {
	if cmp, ok := compare(a, b); ok {
		return cmp == 0
	}
	return reflect.DeepEqual(a, b)
}

// compare orders two values of the same BSON type bracket. It reports false
// when the values are not comparable, as mongo does not compare across
// brackets.
func compare(a, b interface{}) (int, bool) {
	switch x := a.(type) {
	case string:
		y, ok := b.(string)
		if !ok {
			return 0, false
		}
		return strings.Compare(x, y), true
	case bson.DateTime:
		y, ok := b.(bson.DateTime)
		if !ok {
			return 0, false
		}
		return compareOrdered(int64(x), int64(y)), true
	}

	x, ok := toFloat(a)
	if !ok {
		return 0, false
	}
	y, ok := toFloat(b)
	if !ok {
		return 0, false
	}
	return compareOrdered(x, y), true
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func compareOrdered[N int64 | float64](x, y N) int {
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	default:
		return 0
	}
}
