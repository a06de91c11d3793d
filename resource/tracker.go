package resource

import (
	"reflect"
	"unsafe"

	"go.uber.org/zap"

	"github.com/ritprem/ritprem/errors"
	"github.com/ritprem/ritprem/shared"
)

// Tracker is a shared.ReleasePolicy that records every resource its
// handles adopt in a Table and removes it again on release, so the table
// always lists exactly the live resources. A release of a pointer that is
// not live (the result of adopting one raw pointer into two handles) is
// reported as EventDoubleRelease and not forwarded to the inner policy.
//
// A Tracker is used by handles, which are single-goroutine; it carries no
// lock of its own.
type Tracker[T any] struct {
	table   *Table
	inner   shared.ReleasePolicy[T]
	live    map[*T]Handle
	typeID  uint32
	doubles int
}

var (
	_ shared.ReleasePolicy[int] = (*Tracker[int])(nil)
	_ shared.Adopter[int]       = (*Tracker[int])(nil)
)

// NewTracker creates a tracker recording into table under typeID and
// delegating the actual release to inner (shared.FreeStore when nil).
func NewTracker[T any](table *Table, typeID uint32, inner shared.ReleasePolicy[T]) *Tracker[T] {
	if inner == nil {
		inner = shared.FreeStore[T]{}
	}
	return &Tracker[T]{
		table:  table,
		inner:  inner,
		live:   make(map[*T]Handle),
		typeID: typeID,
	}
}

// Adopt records p as live.
func (t *Tracker[T]) Adopt(p *T) {
	if p == nil {
		return
	}
	if _, ok := t.live[p]; ok {
		// Second adoption of a live pointer; the matching release is
		// reported as a double release.
		Logger().Warn("resource adopted twice",
			zap.String("type", reflect.TypeFor[T]().String()),
			zap.Uintptr("addr", uintptr(unsafe.Pointer(p))))
		return
	}
	t.live[p] = t.table.insert(t.typeID, p)
}

// Release removes p from the table and hands it to the inner policy.
func (t *Tracker[T]) Release(p *T) {
	h, ok := t.live[p]
	if !ok {
		t.doubles++
		err := errors.DoubleRelease(reflect.TypeFor[T]().String(), uintptr(unsafe.Pointer(p)))
		Logger().Error("resource released twice", zap.Error(err))
		t.table.notify(Event{
			Type:   EventDoubleRelease,
			TypeID: t.typeID,
			Value:  p,
		})
		return
	}

	delete(t.live, p)
	t.table.take(h)
	t.inner.Release(p)
}

// Live returns the number of tracked resources not yet released.
func (t *Tracker[T]) Live() int {
	return len(t.live)
}

// IsLive reports whether p has been adopted and not yet released.
func (t *Tracker[T]) IsLive(p *T) bool {
	_, ok := t.live[p]
	return ok
}

// DoubleReleases returns how many releases targeted a pointer that was not
// live.
func (t *Tracker[T]) DoubleReleases() int {
	return t.doubles
}

// Table returns the table the tracker records into.
func (t *Tracker[T]) Table() *Table {
	return t.table
}
