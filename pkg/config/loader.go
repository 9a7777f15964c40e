package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type entry struct {
	once  sync.Once
	value any
	err   error
}

var (
	mu      sync.Mutex
	entries = map[reflect.Type]*entry{}

	dotenvOnce sync.Once
)

// Load parses the environment into v and caches the result per type.
func Load[T any](v *T) error {
	if v == nil {
		return ErrNilPointer
	}
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	e := lookup[T]()
	e.once.Do(func() {
		var parsed T
		if err := env.Parse(&parsed); err != nil {
			e.err = errors.Join(ErrParsingConfig, err)
			return
		}
		e.value = parsed
	})

	if e.err != nil {
		// A failed parse is not cached; the next call retries.
		forget[T]()
		return e.err
	}

	*v = e.value.(T)
	return nil
}

// MustLoad is like Load but panics on failure.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(fmt.Sprintf("config: failed to load required configuration: %v", err))
	}
}

// ForceReload drops the cached value for T and parses the environment again.
func ForceReload[T any](v *T) error {
	forget[T]()
	return Load(v)
}

// ResetCache drops every cached configuration.
func ResetCache() {
	mu.Lock()
	entries = map[reflect.Type]*entry{}
	mu.Unlock()
}

// LoadEnv reads the given .env files into the process environment.
// Later files override earlier ones. With no paths the default .env is used.
func LoadEnv(paths ...string) error {
	if err := godotenv.Overload(paths...); err != nil {
		return errors.Join(ErrLoadingEnv, err)
	}
	return nil
}

// MustLoadEnv is like LoadEnv but panics on failure.
func MustLoadEnv(paths ...string) {
	if err := LoadEnv(paths...); err != nil {
		panic(err)
	}
}

func lookup[T any]() *entry {
	key := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()
	e, ok := entries[key]
	if !ok {
		e = &entry{}
		entries[key] = e
	}
	return e
}

func forget[T any]() {
	mu.Lock()
	delete(entries, reflect.TypeFor[T]())
	mu.Unlock()
}
