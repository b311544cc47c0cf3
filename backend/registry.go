package backend

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/glemu"
)

// BackendFactory creates a new backend instance.
type BackendFactory func() ContextBackend

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
	// Priority order for backend selection (first available wins).
	// GoGL > Native > Memory (real driver first, memory is the fallback).
	backendPriority = []string{BackendGoGL, BackendNative, BackendMemory}
)

// Backend name constants.
const (
	// BackendMemory is the name of the in-memory backend.
	BackendMemory = "memory"
	// BackendGoGL is the name of the OpenGL 3.3 backend (go-gl).
	BackendGoGL = "gogl"
	// BackendNative is the name of the WebGPU HAL backend (gogpu/wgpu).
	BackendNative = "native"
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it will be replaced.
func Register(name string, factory BackendFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get returns a backend instance by name.
// Returns nil if the backend is not registered.
func Get(name string) ContextBackend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	factory, ok := backends[name]
	if !ok {
		return nil
	}
	return factory()
}

// Default returns the best available backend based on priority.
// Returns nil if no backends are registered.
func Default() ContextBackend {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				return b
			}
		}
	}

	// Fallback: first available in name order
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if b := backends[name](); b != nil {
			return b
		}
	}

	return nil
}

// MustDefault returns the default backend or panics.
func MustDefault() ContextBackend {
	b := Default()
	if b == nil {
		panic("backend: no backend available")
	}
	return b
}

// InitDefault initializes the best available backend. Backends are tried
// in priority order and the first one whose Init succeeds is returned, so
// a missing driver falls through to the memory backend.
func InitDefault() (ContextBackend, error) {
	registryMu.RLock()
	var candidates []ContextBackend
	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				candidates = append(candidates, b)
			}
		}
	}
	registryMu.RUnlock()

	var errs []error
	for _, b := range candidates {
		err := b.Init()
		if err == nil {
			glemu.Logger().Info("backend: selected", "name", b.Name())
			return b, nil
		}
		glemu.Logger().Warn("backend: init failed, trying next", "name", b.Name(), "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
	}

	if len(errs) == 0 {
		if b := Default(); b != nil {
			if err := b.Init(); err != nil {
				return nil, err
			}
			return b, nil
		}
		return nil, ErrBackendNotAvailable
	}
	return nil, fmt.Errorf("%w: %w", ErrBackendNotAvailable, errors.Join(errs...))
}

// InitNamed initializes the named backend.
func InitNamed(name string) (ContextBackend, error) {
	b := Get(name)
	if b == nil {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}

	if err := b.Init(); err != nil {
		return nil, err
	}

	return b, nil
}
