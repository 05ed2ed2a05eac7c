package dialect

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a dialect instance for one connection.
type Factory func(opts Options) Dialect

// Dialect registry
var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]Factory)
	aliases    = make(map[string]string)
)

// ErrDialectRequired is returned when a dialect is required but not provided.
var ErrDialectRequired = errors.New("dialect is required")

// UnknownDialectError is returned when a dialect name is not registered.
type UnknownDialectError struct {
	Name      string
	Available []string
}

func (e *UnknownDialectError) Error() string {
	return fmt.Sprintf("unknown dialect %q, available: %s", e.Name, strings.Join(e.Available, ", "))
}

// Register registers a dialect factory under name and optional aliases.
// Called by dialect implementations in their init() functions. The factory is
// invoked once with default options and must yield a complete type catalog.
func Register(name string, factory Factory, alias ...string) {
	d := factory(Options{})
	if c, ok := d.(interface{ Validate() error }); ok {
		if err := c.Validate(); err != nil {
			panic(fmt.Sprintf("dialect %s: %v", name, err))
		}
	}

	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	key := strings.ToLower(name)
	dialects[key] = factory
	for _, a := range alias {
		aliases[strings.ToLower(a)] = key
	}
}

func resolve(name string) (Factory, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if target, ok := aliases[key]; ok {
		key = target
	}
	f, ok := dialects[key]
	return f, ok
}

// Get returns a new dialect instance by name.
func Get(name string, opts Options) (Dialect, bool) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	f, ok := resolve(name)
	if !ok {
		return nil, false
	}
	return f(opts), true
}

// New returns a new dialect instance or an *UnknownDialectError.
func New(name string, opts Options) (Dialect, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrDialectRequired
	}
	d, ok := Get(name, opts)
	if !ok {
		return nil, &UnknownDialectError{Name: name, Available: List()}
	}
	return d, nil
}

// List returns all registered dialect names (sorted).
func List() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name or an alias of it is registered.
func IsRegistered(name string) bool {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	_, ok := resolve(name)
	return ok
}
