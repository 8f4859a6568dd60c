// Package memory provides an in-memory storage engine for the storage
// Repository contract.
//
// Records are held as BSON documents and queries are evaluated against the
// stored document, using the same field names and matching rules as the mongo
// engine. It is intended for tests, development and embedded single-process
// deployments.
package memory

import (
	// Standard Library Imports
	"sort"
	"sync"

	// External Imports
	"go.mongodb.org/mongo-driver/v2/bson"
)

// DB holds every collection of an in-memory store. A DB is the shared handle
// all repositories of a process are built from; it is safe for concurrent
// use.
type DB struct {
	mu          sync.RWMutex
	collections map[string][]bson.Raw
}

// NewDB returns an empty in-memory database.
func NewDB() *DB {
	return &DB{collections: make(map[string][]bson.Raw)}
}

// CollectionNames returns the names of the collections holding records.
func (d *DB) CollectionNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.collections))
	for name, docs := range d.collections {
		if len(docs) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Drop removes every collection.
func (d *DB) Drop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.collections = make(map[string][]bson.Raw)
}
