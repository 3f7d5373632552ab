// Package kinds holds one descriptor per field kind: how the control is
// built, which stored values prefill it and how a submitted value is checked.
// The set of kinds is closed; descriptors for known kinds can be replaced.
package kinds

import (
	"fmt"
	"sync"

	"golang.org/x/net/html"

	"github.com/goliatone/go-scoutforms/pkg/field"
	"github.com/goliatone/go-scoutforms/pkg/render"
)

// RenderContext carries what a control builder needs beyond the definition.
type RenderContext struct {
	Localizer render.Localizer
	// Value is the prefill value; Present reports whether Prefill accepted
	// the stored value.
	Value   string
	Present bool
}

// Renderer builds the bare control for a definition. Shared attributes (id,
// name, required, disabled, pattern) are applied by the caller.
type Renderer func(def field.Definition, ctx RenderContext) *html.Node

// Prefiller decides whether a stored value prefills the control and how it is
// written into the value attribute.
type Prefiller func(values field.ValueMap, name string) (string, bool)

// Checker validates a non-empty submitted value. It returns nil or a
// *CheckError.
type Checker func(def field.Definition, value string) error

// Descriptor bundles the behaviour of one kind.
type Descriptor struct {
	Kind    field.Kind
	Render  Renderer
	Prefill Prefiller
	Check   Checker
}

// Registry maps each field kind to its descriptor.
type Registry struct {
	mu    sync.RWMutex
	kinds map[field.Kind]Descriptor
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry holding the built-in descriptors.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry returns a registry with the built-in descriptor of every kind.
func NewRegistry() *Registry {
	r := &Registry{kinds: make(map[field.Kind]Descriptor, 4)}
	r.MustRegister(textDescriptor())
	r.MustRegister(numberDescriptor())
	r.MustRegister(dateDescriptor())
	r.MustRegister(dropdownDescriptor())
	return r
}

// Clone returns an independent copy so callers can override descriptors
// without touching the shared registry.
func (r *Registry) Clone() *Registry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cloned := &Registry{kinds: make(map[field.Kind]Descriptor, len(r.kinds))}
	for kind, descriptor := range r.kinds {
		cloned.kinds[kind] = descriptor
	}
	return cloned
}

// Register replaces the descriptor of a known kind. Unknown kinds and
// descriptors without a Render func are rejected; a nil Prefill or Check
// keeps the built-in one.
func (r *Registry) Register(descriptor Descriptor) error {
	kind, known := field.ParseKind(string(descriptor.Kind))
	if !known {
		return fmt.Errorf("kinds: unknown kind %q", descriptor.Kind)
	}
	if descriptor.Render == nil {
		return fmt.Errorf("kinds: renderer for %q is nil", kind)
	}
	descriptor.Kind = kind

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.kinds[kind]; ok {
		if descriptor.Prefill == nil {
			descriptor.Prefill = existing.Prefill
		}
		if descriptor.Check == nil {
			descriptor.Check = existing.Check
		}
	}
	if descriptor.Prefill == nil {
		descriptor.Prefill = PrefillTruthy
	}
	r.kinds[kind] = descriptor
	return nil
}

// MustRegister is Register that panics, for init-time wiring.
func (r *Registry) MustRegister(descriptor Descriptor) {
	if err := r.Register(descriptor); err != nil {
		panic(err)
	}
}

// Descriptor returns the descriptor for kind. Unknown kinds get the text
// descriptor, which is how the forms treat them.
func (r *Registry) Descriptor(kind field.Kind) Descriptor {
	parsed, _ := field.ParseKind(string(kind))

	r.mu.RLock()
	defer r.mu.RUnlock()
	if descriptor, ok := r.kinds[parsed]; ok {
		return descriptor
	}
	return r.kinds[field.KindText]
}

// Kinds lists the registered kinds in display order.
func (r *Registry) Kinds() []field.Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]field.Kind, 0, len(r.kinds))
	for _, kind := range field.Kinds() {
		if _, ok := r.kinds[kind]; ok {
			out = append(out, kind)
		}
	}
	return out
}
