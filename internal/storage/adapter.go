package storage

import (
	"encoding/json"
	"errors"
	"log"
)

// Storage keys used by the state managers. Each holds one JSON-encoded value.
const (
	CartKey    = "cart"
	UserKey    = "user"
	TokenKey   = "token"
	ReviewsKey = "reviews"
)

// Adapter reads and writes JSON-encoded values against a Store.
//
// Load fails soft: a value that does not parse is logged, removed so it
// cannot fail again, and reported as absent. Save never surfaces failure to
// the caller; a failed write is logged and the in-memory state stays
// authoritative.
type Adapter struct {
	store Store
}

// NewAdapter creates a new Adapter over the given Store.
func NewAdapter(store Store) *Adapter {
	return &Adapter{
		store: store,
	}
}

// Load unmarshals the value stored under key into dest. It returns false
// when no usable value exists.
func (a *Adapter) Load(key string, dest interface{}) bool {
	raw, err := a.store.Get(key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("storage: load %q failed: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		log.Printf("storage: discarding corrupt value under %q: %v", key, err)
		a.Remove(key)
		return false
	}
	return true
}

// Save marshals v and overwrites whatever is stored under key.
func (a *Adapter) Save(key string, v interface{}) {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("storage: marshal for %q failed: %v", key, err)
		return
	}
	if err := a.store.Set(key, string(raw)); err != nil {
		log.Printf("storage: save %q failed: %v", key, err)
	}
}

// Remove deletes the value stored under key.
func (a *Adapter) Remove(key string) {
	if err := a.store.Remove(key); err != nil {
		log.Printf("storage: remove %q failed: %v", key, err)
	}
}
