package utils

import (
	"fmt"
	"sort"
	"sync"
)

// RegistryValidator validates a registration against existing entries
type RegistryValidator[K comparable, V any] func(key K, value V, existing map[K]V) error

// Registry is a thread-safe keyed store with optional validation
type Registry[K comparable, V any] struct {
	mu        sync.RWMutex
	items     map[K]V
	validator RegistryValidator[K, V]
	name      string
}

// NewRegistry creates a registry; name is used in error messages
func NewRegistry[K comparable, V any](name string) *Registry[K, V] {
	return &Registry[K, V]{
		items: make(map[K]V),
		name:  name,
	}
}

// SetValidator sets the validator run by Register
func (r *Registry[K, V]) SetValidator(validator RegistryValidator[K, V]) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.validator = validator
}

// Register adds an entry, failing when the key exists or validation fails
func (r *Registry[K, V]) Register(key K, value V) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.validator != nil {
		if err := r.validator(key, value, r.items); err != nil {
			return err
		}
	}
	if _, exists := r.items[key]; exists {
		return fmt.Errorf("%s '%v' is already registered", r.name, key)
	}
	r.items[key] = value
	return nil
}

// Get retrieves an entry
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.items[key]
	return value, ok
}

// Has checks whether a key is registered
func (r *Registry[K, V]) Has(key K) bool {
	_, ok := r.Get(key)
	return ok
}

// Size returns the number of entries
func (r *Registry[K, V]) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Keys returns the registered keys ordered by their string form
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
	return keys
}

// Clear removes every entry
func (r *Registry[K, V]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[K]V)
}
