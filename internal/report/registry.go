package report

import (
	"fmt"
	"strings"
	"sync"

	apperrors "payrollcli/internal/errors"
)

// KindPayout is the payout-per-department report.
const KindPayout = "payout"

// Registry maps report kind names to factories
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string // Maintains registration order
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
		order:     make([]string, 0),
	}
}

// Register adds a report kind to the registry
func (r *Registry) Register(kind string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("cannot register nil factory for %q", kind)
	}
	if kind == "" {
		return fmt.Errorf("report kind cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("report kind %s already registered", kind)
	}

	r.factories[kind] = factory
	r.order = append(r.order, kind)
	return nil
}

// New creates an empty report of the given kind
func (r *Registry) New(kind string) (Report, error) {
	r.mu.RLock()
	factory, exists := r.factories[kind]
	r.mu.RUnlock()

	if !exists {
		return nil, apperrors.NewAppValidationError(
			fmt.Sprintf("unknown report type %q, available: %s", kind, strings.Join(r.Kinds(), ", ")), nil).
			WithContext("report_type", kind)
	}
	return factory(), nil
}

// Kinds returns registered kinds in registration order
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.order...)
}

var defaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	if err := r.Register(KindPayout, func() Report { return NewPayoutReport() }); err != nil {
		panic(err)
	}
	return r
}

// DefaultRegistry returns the registry holding every built-in report kind.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// New creates a built-in report of the given kind.
func New(kind string) (Report, error) {
	return defaultRegistry.New(kind)
}

// Kinds lists the built-in report kinds.
func Kinds() []string {
	return defaultRegistry.Kinds()
}
