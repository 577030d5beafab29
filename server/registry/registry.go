package registry

import (
	"errors"
	"fmt"
	"regexp"
	"sync"

	"go.uber.org/atomic"
)

// ErrNotInitialised is returned when an object is requested before its registry was initialised.
var ErrNotInitialised = errors.New("registry not initialised")

var keyPattern = regexp.MustCompile(`^[a-z0-9_.-]+:[a-z0-9_./-]+$`)

// ValidKey reports if the key passed is a valid namespaced identifier such as "tutorial:ruby_ore".
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// Registry holds objects of one kind under stable, namespaced keys. Objects are registered as factories and
// only constructed once Init is called, in the order they were registered. Every object receives a runtime
// ID, which is its position in that order.
type Registry[T any] struct {
	name string

	mu        sync.RWMutex
	keys      []string
	factories map[string]func() T
	values    map[string]T
	ids       map[string]int64

	inited *atomic.Bool
}

// New returns an empty registry. The name is only used in error messages.
func New[T any](name string) *Registry[T] {
	return &Registry[T]{
		name:      name,
		factories: make(map[string]func() T),
		values:    make(map[string]T),
		ids:       make(map[string]int64),
		inited:    atomic.NewBool(false),
	}
}

// Name ...
func (r *Registry[T]) Name() string {
	return r.name
}

// Register adds a factory under the key passed. Registering after Init, registering an invalid key or
// registering the same key twice returns an error.
func (r *Registry[T]) Register(key string, factory func() T) error {
	if r.inited.Load() {
		return fmt.Errorf("%v: cannot register %v after initialisation", r.name, key)
	}
	if !ValidKey(key) {
		return fmt.Errorf("%v: invalid key %q", r.name, key)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[key]; ok {
		return fmt.Errorf("%v: %v registered twice", r.name, key)
	}
	r.keys = append(r.keys, key)
	r.factories[key] = factory
	return nil
}

// Init constructs every registered object once. Calling Init a second time returns an error.
func (r *Registry[T]) Init() error {
	if !r.inited.CAS(false, true) {
		return fmt.Errorf("%v: already initialised", r.name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, key := range r.keys {
		r.values[key] = r.factories[key]()
		r.ids[key] = int64(i)
	}
	return nil
}

// Initialised reports if Init was called.
func (r *Registry[T]) Initialised() bool {
	return r.inited.Load()
}

// Get returns the object registered under the key passed.
func (r *Registry[T]) Get(key string) (T, error) {
	var zero T
	if !r.inited.Load() {
		return zero, fmt.Errorf("%v: get %v: %w", r.name, key, ErrNotInitialised)
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return zero, fmt.Errorf("%v: %v is not registered", r.name, key)
	}
	return v, nil
}

// MustGet is like Get, but panics if the object cannot be returned.
func (r *Registry[T]) MustGet(key string) T {
	v, err := r.Get(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Contains reports if a factory was registered under the key passed.
func (r *Registry[T]) Contains(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[key]
	return ok
}

// RuntimeID returns the runtime ID of the object registered under the key passed.
func (r *Registry[T]) RuntimeID(key string) (int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.ids[key]
	return id, ok
}

// Keys returns all keys in registration order.
func (r *Registry[T]) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.keys...)
}

// Each calls f for every object in registration order. Each does nothing before Init.
func (r *Registry[T]) Each(f func(key string, v T)) {
	if !r.inited.Load() {
		return
	}
	for _, key := range r.Keys() {
		r.mu.RLock()
		v := r.values[key]
		r.mu.RUnlock()
		f(key, v)
	}
}
