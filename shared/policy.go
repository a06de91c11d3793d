package shared

import (
	"github.com/ritprem/ritprem/errors"
)

// FailurePolicy decides what happens when a handle is dereferenced.
// CheckPointer sees the raw resource, which is nil for an Empty handle.
type FailurePolicy[T any] interface {
	CheckPointer(p *T) error
}

// ReleasePolicy frees a resource once its last handle lets go. Release is
// called exactly once per adopted resource.
type ReleasePolicy[T any] interface {
	Release(p *T)
}

// Indexer is implemented by release policies for array-shaped resources.
// ElementAt performs no bounds checking of its own.
type Indexer[T, E any] interface {
	ElementAt(p *T, index int) *E
}

// Adopter is optionally implemented by release policies that want to see
// a resource at the moment a handle takes ownership of it. Every Adopt
// call is eventually paired with exactly one Release of the same pointer.
type Adopter[T any] interface {
	Adopt(p *T)
}

// Dropper is optionally implemented by resource values that need cleanup
// beyond garbage collection.
type Dropper interface {
	Drop()
}

// Strict reports a null-dereference error whenever an Empty handle is
// dereferenced, in every build.
type Strict[T any] struct{}

// CheckPointer returns a KindNullDereference error when p is nil.
func (Strict[T]) CheckPointer(p *T) error {
	if p == nil {
		return errors.NullDereference(errors.PhaseDereference, typeName[T]())
	}
	return nil
}

// Assertive panics when an Empty handle is dereferenced, but only while
// assertions are compiled in.
//
// WARNING: building with the noassert tag removes the check entirely.
// Deref then returns a nil pointer with a nil error and Value panics in the
// Go runtime. Use Assertive only where the handle is known to be non-empty
// by construction; everywhere else use Strict.
type Assertive[T any] struct{}

// CheckPointer panics with a KindNullDereference error when p is nil and
// assertions are enabled. It never returns an error.
func (Assertive[T]) CheckPointer(p *T) error {
	if assertionsEnabled && p == nil {
		panic(errors.NullDereference(errors.PhaseDereference, typeName[T]()))
	}
	return nil
}

// AssertionsEnabled reports whether Assertive checks are compiled in.
func AssertionsEnabled() bool {
	return assertionsEnabled
}

// FreeStore releases a single value: Drop is called when the value
// implements Dropper, then the value is zeroed so stale raw pointers no
// longer observe live data.
type FreeStore[T any] struct{}

// Release drops and zeroes *p.
func (FreeStore[T]) Release(p *T) {
	if p == nil {
		return
	}
	drop(p)
	var zero T
	*p = zero
}

// ArrayFreeStore releases a slice resource and gives handles to it
// element access through At.
type ArrayFreeStore[E any] struct{}

// Release drops every element implementing Dropper and clears the slice.
func (ArrayFreeStore[E]) Release(p *[]E) {
	if p == nil {
		return
	}
	s := *p
	for i := range s {
		drop(&s[i])
	}
	*p = nil
}

// ElementAt returns the address of element index. An index outside the
// slice panics in the Go runtime.
func (ArrayFreeStore[E]) ElementAt(p *[]E, index int) *E {
	return &(*p)[index]
}

// ReleaseFunc adapts a plain function to ReleasePolicy.
type ReleaseFunc[T any] func(p *T)

// Release calls f(p).
func (f ReleaseFunc[T]) Release(p *T) {
	f(p)
}

// drop calls Drop on the value or, failing that, on the value held
// behind p when it is itself a pointer or interface.
func drop[T any](p *T) {
	if d, ok := any(p).(Dropper); ok {
		d.Drop()
		return
	}
	if d, ok := any(*p).(Dropper); ok {
		d.Drop()
	}
}
