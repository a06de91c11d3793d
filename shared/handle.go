package shared

import (
	"reflect"

	"go.uber.org/zap"

	"github.com/ritprem/ritprem/errors"
)

// Handle is a reference-counted owner of a heap resource.
//
// Every handle sharing a resource points at the same count cell. The cell
// holds the number of live handles; when a Release brings it to zero the
// release policy runs on the resource and the cell goes back to its
// allocator. A Handle must not be copied by value: use Copy, Assign or
// Convert so the count stays accurate.
//
// The failure policy belongs to the handle and is fixed when the handle is
// made. The release policy, cell allocator and clone function belong to
// the resource: they travel with it through Swap and Assign.
//
// The zero value is an Empty handle using the default policies
// (Assertive, FreeStore, HeapCells).
//
// Handles are not safe for concurrent use. The count cell is a plain int
// updated without synchronization; a resource shared across goroutines
// needs an external lock around every handle operation touching it.
type Handle[T any] struct {
	noCopy noCopy

	ptr     *T
	refs    *int
	failure FailurePolicy[T]
	bind    *binding[T]
}

// Empty returns a handle that owns nothing.
func Empty[T any](opts ...Option[T]) *Handle[T] {
	return newHandle(opts)
}

// Adopt returns a handle that takes sole ownership of raw (use count 1).
// A nil raw yields an Empty handle.
//
// If the count cell cannot be allocated, raw is handed to the release
// policy before the error is returned, so the caller never leaks it.
//
// Never adopt the same raw pointer into two handles: they would keep
// separate counts and release the resource twice. Share through Copy.
func Adopt[T any](raw *T, opts ...Option[T]) (*Handle[T], error) {
	h := newHandle(opts)
	if err := h.adopt(raw); err != nil {
		return nil, err
	}
	return h, nil
}

// Convert returns a handle to a compatible view of src's resource that
// shares src's count cell. view maps the source resource to the target
// pointer (an embedded value, a field, the same memory under another
// type). A nil view result yields an Empty handle.
//
// Whichever handle drops the count to zero runs its own release policy on
// its own view of the resource.
func Convert[From, To any](src *Handle[From], view func(*From) *To, opts ...Option[To]) *Handle[To] {
	dst := newHandle(opts)
	dst.bind.cells = src.binding().cells

	p := src.resource()
	if p == nil {
		return dst
	}
	v := view(p)
	if v == nil {
		return dst
	}

	dst.ptr = v
	dst.refs = src.refs
	dst.increment()
	Logger().Debug("sharing resource",
		zap.String("type", typeName[To]()),
		zap.Uintptr("addr", addr(v)),
		zap.Int("refs", *dst.refs))
	return dst
}

// Copy returns a new handle sharing h's resource, incrementing the count.
// Copying an Empty handle yields an Empty handle with the same policies.
func (h *Handle[T]) Copy() *Handle[T] {
	if h == nil {
		return &Handle[T]{}
	}
	c := &Handle[T]{ptr: h.ptr, refs: h.refs, failure: h.failure, bind: h.bind}
	if c.refs != nil {
		c.increment()
		Logger().Debug("sharing resource",
			zap.String("type", typeName[T]()),
			zap.Uintptr("addr", addr(c.ptr)),
			zap.Int("refs", *c.refs))
	}
	return c
}

// Assign rebinds h to src's resource. The previous binding is released
// exactly once, and assigning a handle to itself or to a sibling is safe.
// h keeps its own failure policy.
func (h *Handle[T]) Assign(src *Handle[T]) {
	if src == nil {
		h.Release()
		return
	}
	tmp := src.Copy()
	h.Swap(tmp)
	tmp.Release()
}

// Swap exchanges the bindings of h and other. Use counts and failure
// policies are unchanged.
func (h *Handle[T]) Swap(other *Handle[T]) {
	h.ptr, other.ptr = other.ptr, h.ptr
	h.refs, other.refs = other.refs, h.refs
	h.bind, other.bind = other.bind, h.bind
}

// Release drops h's reference. If h was the last handle on its resource,
// the release policy runs and the count cell is freed. h is Empty
// afterwards in either case. Releasing an Empty handle does nothing.
func (h *Handle[T]) Release() {
	if h == nil || h.refs == nil {
		return
	}

	Logger().Debug("releasing resource",
		zap.String("type", typeName[T]()),
		zap.Uintptr("addr", addr(h.ptr)),
		zap.Int("refs", *h.refs))

	h.decrement()
	if *h.refs == 0 {
		Logger().Debug("deleting resource",
			zap.String("type", typeName[T]()),
			zap.Uintptr("addr", addr(h.ptr)))

		b := h.binding()
		b.release.Release(h.ptr)
		b.cells.FreeCell(h.refs)
	}

	h.ptr = nil
	h.refs = nil
}

// Reset releases h's current resource and adopts raw in its place, keeping
// h's policies. Reset(nil) leaves h Empty. On allocation failure raw is
// released, h is Empty, and the error is returned.
//
// Resetting h to the pointer it already holds does nothing. Any other
// pointer already owned by a handle must not be passed: it would get a
// second count and be released twice, as with Adopt.
func (h *Handle[T]) Reset(raw *T) error {
	if raw != nil && raw == h.resource() {
		return nil
	}
	tmp := &Handle[T]{failure: h.failure, bind: h.bind}
	err := tmp.adopt(raw)
	h.Swap(tmp)
	tmp.Release()
	return err
}

// MakeUnique gives h its own copy of a shared resource (copy-on-write).
//
// When the use count is above one the value is duplicated with the clone
// function, the duplicate is adopted into a fresh count cell and h moves
// to it. Sibling handles keep the original resource with one fewer
// reference. When h is Empty or already unique nothing is allocated and
// h keeps its resource.
func (h *Handle[T]) MakeUnique() error {
	if h == nil || h.refs == nil || *h.refs <= 1 || h.ptr == nil {
		return nil
	}

	dup := h.binding().clone(h.ptr)
	tmp := &Handle[T]{failure: h.failure, bind: h.bind}
	if err := tmp.adopt(dup); err != nil {
		return errors.Wrap(errors.PhaseUnique, errors.KindAllocation, err, "detach shared "+typeName[T]())
	}
	h.Swap(tmp)
	tmp.Release()

	Logger().Debug("unique resource",
		zap.String("type", typeName[T]()),
		zap.Uintptr("addr", addr(h.ptr)))
	return nil
}

// Deref returns the resource for member access after running the failure
// policy. With Strict an Empty handle yields a null-dereference error.
// With Assertive and the noassert build tag the check is gone and an
// Empty handle returns a nil pointer with a nil error.
func (h *Handle[T]) Deref() (*T, error) {
	p := h.resource()
	if err := h.failurePolicy().CheckPointer(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Value returns a copy of the resource after running the failure policy.
// When the policy lets a nil resource through, Value panics with the Go
// runtime's nil pointer dereference.
func (h *Handle[T]) Value() (T, error) {
	p, err := h.Deref()
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

// UseCount returns the number of handles sharing h's resource, or 0 when h
// is Empty.
func (h *Handle[T]) UseCount() int {
	if h == nil || h.refs == nil {
		return 0
	}
	return *h.refs
}

// Empty reports whether h owns nothing.
func (h *Handle[T]) Empty() bool {
	return h.resource() == nil
}

// Unsafe returns the raw resource pointer without transferring ownership.
// The pointer is only valid while some handle still shares the resource:
// once the last one is released the value has been handed to the release
// policy and must not be touched.
func (h *Handle[T]) Unsafe() *T {
	return h.resource()
}

// Equal reports whether h and other share the same resource. This is
// identity, not value equality: two handles to distinct resources holding
// equal values are not Equal. Two Empty handles are Equal.
func (h *Handle[T]) Equal(other *Handle[T]) bool {
	return h.resource() == other.resource()
}

func (h *Handle[T]) adopt(raw *T) error {
	if raw == nil {
		return nil
	}

	b := h.binding()
	if a, ok := b.release.(Adopter[T]); ok {
		a.Adopt(raw)
	}

	refs, err := b.cells.AllocCell()
	if err != nil {
		Logger().Debug("count cell allocation failed",
			zap.String("type", typeName[T]()),
			zap.Uintptr("addr", addr(raw)),
			zap.Error(err))
		b.release.Release(raw)
		return errors.AllocationFailed(errors.PhaseAdopt, "count cell for "+typeName[T](), err)
	}

	*refs = 0
	h.refs = refs
	h.increment()
	h.ptr = raw

	Logger().Debug("adopting resource",
		zap.String("type", typeName[T]()),
		zap.Uintptr("addr", addr(raw)))
	return nil
}

func (h *Handle[T]) increment() {
	if h.refs != nil {
		*h.refs++
	}
}

func (h *Handle[T]) decrement() {
	if h.refs != nil {
		*h.refs--
	}
}

func (h *Handle[T]) resource() *T {
	if h == nil {
		return nil
	}
	return h.ptr
}

func newHandle[T any](opts []Option[T]) *Handle[T] {
	cfg := newConfig(opts)
	return &Handle[T]{failure: cfg.failure, bind: cfg.bind}
}

func (h *Handle[T]) failurePolicy() FailurePolicy[T] {
	if h == nil || h.failure == nil {
		return Assertive[T]{}
	}
	return h.failure
}

func (h *Handle[T]) binding() *binding[T] {
	if h == nil {
		return newBinding[T]()
	}
	if h.bind == nil {
		h.bind = newBinding[T]()
	}
	return h.bind
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}

// noCopy lets go vet's copylocks check flag Handle values copied by
// assignment instead of through Copy.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
