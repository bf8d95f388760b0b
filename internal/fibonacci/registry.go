package fibonacci

import (
	"sort"
	"sync"

	apperrors "github.com/agbru/fibsci/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Calculator Registry
// ─────────────────────────────────────────────────────────────────────────────

var (
	registryMu sync.RWMutex
	registry   = make(map[string]func() coreCalculator)
)

// RegisterCalculator registers a core algorithm constructor under the given
// name. Algorithm files call it from init, which is also how build tags add
// or remove algorithms: a file excluded by its tag simply never registers.
//
// Parameters:
//   - name: The identifier under which the algorithm is registered.
//   - constructor: A function returning a fresh core implementation.
func RegisterCalculator(name string, constructor func() coreCalculator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = constructor
}

// CalculatorFactory creates calculators by algorithm name.
type CalculatorFactory interface {
	// Get returns the calculator registered under name.
	Get(name string) (Calculator, error)

	// List returns the names of all registered algorithms, sorted.
	List() []string

	// GetAll returns one calculator per registered algorithm, ordered by name.
	GetAll() []Calculator
}

// DefaultFactory is a CalculatorFactory backed by the package registry.
type DefaultFactory struct{}

// NewDefaultFactory returns a factory backed by the package registry.
//
// Returns:
//   - CalculatorFactory: The default factory.
func NewDefaultFactory() CalculatorFactory {
	return &DefaultFactory{}
}

// Get returns the calculator registered under name.
//
// Parameters:
//   - name: The algorithm identifier, as listed by List.
//
// Returns:
//   - Calculator: The wrapped calculator for the named algorithm.
//   - error: A ConfigError if no algorithm is registered under name.
func (f *DefaultFactory) Get(name string) (Calculator, error) {
	registryMu.RLock()
	constructor, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, apperrors.NewConfigError("unknown algorithm %q (available: %v)", name, f.List())
	}
	return NewCalculator(constructor()), nil
}

// List returns the names of all registered algorithms, sorted.
func (f *DefaultFactory) List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns one calculator per registered algorithm, ordered by name.
func (f *DefaultFactory) GetAll() []Calculator {
	names := f.List()
	calculators := make([]Calculator, 0, len(names))
	registryMu.RLock()
	defer registryMu.RUnlock()
	for _, name := range names {
		calculators = append(calculators, NewCalculator(registry[name]()))
	}
	return calculators
}

// globalFactory is the shared factory handed out by GlobalFactory.
var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide calculator factory backed by the
// package registry.
func GlobalFactory() CalculatorFactory {
	return globalFactory
}
