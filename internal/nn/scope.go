package nn

import (
	"math/rand"
	"path"
	"slices"
	"sync"

	"github.com/samber/lo"

	"github.com/born-ml/transformer/internal/tensor"
)

// ScopeMode selects how a Scope resolves parameter lookups.
type ScopeMode int

const (
	// Create allocates new parameters and fails if a key already exists.
	Create ScopeMode = iota
	// Reuse binds to existing parameters and fails if a key is missing.
	Reuse
)

// String returns a human-readable mode name.
func (m ScopeMode) String() string {
	switch m {
	case Create:
		return "create"
	case Reuse:
		return "reuse"
	default:
		return "unknown"
	}
}

// ParamStore is a registry of learned parameters keyed by hierarchical path
// ("decoder/multihead_attention/ln/gamma").
//
// The store is safe for concurrent use. Two layers built concurrently under
// the same Create scope still conflict: one of them gets a ScopeError.
type ParamStore[B tensor.Backend] struct {
	mu      sync.Mutex
	params  map[string]*Parameter[B]
	rng     *rand.Rand
	backend B
}

// NewParamStore creates an empty store. seed drives every random initializer.
func NewParamStore[B tensor.Backend](backend B, seed int64) *ParamStore[B] {
	return &ParamStore[B]{
		params:  make(map[string]*Parameter[B]),
		rng:     rand.New(rand.NewSource(seed)), //nolint:gosec // weight initialization is not security-critical
		backend: backend,
	}
}

// Backend returns the backend parameters are allocated on.
func (s *ParamStore[B]) Backend() B {
	return s.backend
}

// Root returns the top-level scope in the given mode.
func (s *ParamStore[B]) Root(mode ScopeMode) Scope[B] {
	return Scope[B]{store: s, mode: mode}
}

// Lookup returns the parameter stored under key.
func (s *ParamStore[B]) Lookup(key string) (*Parameter[B], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.params[key]
	return p, ok
}

// Len returns the number of stored parameters.
func (s *ParamStore[B]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.params)
}

// Names returns all parameter keys in sorted order.
func (s *ParamStore[B]) Names() []string {
	s.mu.Lock()
	names := lo.Keys(s.params)
	s.mu.Unlock()

	slices.Sort(names)
	return names
}

// Parameters returns every parameter, ordered by key.
func (s *ParamStore[B]) Parameters() []*Parameter[B] {
	names := s.Names()

	s.mu.Lock()
	defer s.mu.Unlock()
	return lo.Map(names, func(name string, _ int) *Parameter[B] {
		return s.params[name]
	})
}

// Trainable returns the parameters an optimizer should update, ordered by key.
func (s *ParamStore[B]) Trainable() []*Parameter[B] {
	return lo.Filter(s.Parameters(), func(p *Parameter[B], _ int) bool {
		return p.Trainable()
	})
}

// Scope is a named position in a ParamStore plus the mode lookups use.
// Scopes are small values and are passed by value.
type Scope[B tensor.Backend] struct {
	store *ParamStore[B]
	path  string
	mode  ScopeMode
}

// Sub returns the nested scope name under s. The mode is inherited.
func (sc Scope[B]) Sub(name string) Scope[B] {
	return Scope[B]{store: sc.store, path: sc.Key(name), mode: sc.mode}
}

// WithMode returns the same scope with a different mode.
func (sc Scope[B]) WithMode(mode ScopeMode) Scope[B] {
	sc.mode = mode
	return sc
}

// Path returns the scope's hierarchical path ("" for the root).
func (sc Scope[B]) Path() string {
	return sc.path
}

// Mode returns the scope's lookup mode.
func (sc Scope[B]) Mode() ScopeMode {
	return sc.mode
}

// Store returns the backing store.
func (sc Scope[B]) Store() *ParamStore[B] {
	return sc.store
}

// Backend returns the store's backend.
func (sc Scope[B]) Backend() B {
	return sc.store.backend
}

// Key returns the full key of name inside the scope.
func (sc Scope[B]) Key(name string) string {
	if sc.path == "" {
		return name
	}
	return path.Join(sc.path, name)
}

// ParamOption configures parameter creation.
type ParamOption func(*paramOptions)

type paramOptions struct {
	trainable bool
}

// WithTrainable sets the parameter's trainability flag (default true).
func WithTrainable(trainable bool) ParamOption {
	return func(o *paramOptions) {
		o.trainable = trainable
	}
}

// Get resolves the parameter name in the scope.
//
// In Create mode a new parameter of shape is initialized with init and stored;
// a key that already exists is a ScopeError. In Reuse mode the stored
// parameter is returned; a missing key is a ScopeError and a stored shape that
// differs from shape is a ShapeError. Options only apply on creation.
func (sc Scope[B]) Get(name string, shape tensor.Shape, init Initializer, opts ...ParamOption) (*Parameter[B], error) {
	key := sc.Key(name)
	if err := shape.Validate(); err != nil {
		return nil, shapeErrorf("param "+key, "%v", err)
	}

	s := sc.store
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.params[key]
	switch sc.mode {
	case Create:
		if ok {
			return nil, &ScopeError{Key: key, Mode: sc.mode, Details: "parameter already exists (build the layer in Reuse mode to share it)"}
		}
	case Reuse:
		if !ok {
			return nil, &ScopeError{Key: key, Mode: sc.mode, Details: "parameter does not exist"}
		}
		if !existing.Shape().Equal(shape) {
			return nil, shapeErrorf("param "+key, "stored shape %v, requested %v", existing.Shape(), shape)
		}
		return existing, nil
	default:
		return nil, &ScopeError{Key: key, Mode: sc.mode, Details: "unknown scope mode"}
	}

	o := paramOptions{trainable: true}
	for _, opt := range opts {
		opt(&o)
	}

	t, err := tensor.FromSlice(init(shape, s.rng), shape, s.backend)
	if err != nil {
		return nil, shapeErrorf("param "+key, "%v", err)
	}

	p := &Parameter[B]{name: key, tensor: t, trainable: o.trainable}
	s.params[key] = p
	return p, nil
}
