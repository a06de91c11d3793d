package resource

import (
	"sync"
)

// Table records live resources under integer handles and notifies
// observers about their lifecycle. Entries are added and removed only by
// the Trackers writing into the table; callers get a read-only view.
// Safe for concurrent use.
type Table struct {
	entries   []entry
	freeList  []Handle
	observers []Observer
	mu        sync.RWMutex
	obsMu     sync.RWMutex
}

type entry struct {
	value  any
	typeID uint32
	valid  bool
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{
		entries:  make([]entry, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Subscribe adds an observer for lifecycle events.
func (t *Table) Subscribe(o Observer) {
	t.obsMu.Lock()
	defer t.obsMu.Unlock()
	t.observers = append(t.observers, o)
}

// Len returns the number of live resources.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := 0
	for _, e := range t.entries {
		if e.valid {
			count++
		}
	}
	return count
}

// Each iterates over all live resources until fn returns false.
// fn must not release resources recorded in this table.
func (t *Table) Each(fn func(Handle, uint32, any) bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for i, e := range t.entries {
		if e.valid {
			if !fn(Handle(i+1), e.typeID, e.value) {
				break
			}
		}
	}
}

// insert stores a value and returns its handle.
func (t *Table) insert(typeID uint32, value any) Handle {
	handle := t.create(typeID, value)
	t.notify(Event{
		Type:   EventCreated,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})
	return handle
}

func (t *Table) create(typeID uint32, value any) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := entry{
		typeID: typeID,
		value:  value,
		valid:  true,
	}

	if len(t.freeList) > 0 {
		handle := t.freeList[len(t.freeList)-1]
		t.freeList = t.freeList[:len(t.freeList)-1]
		t.entries[handle-1] = e
		return handle
	}

	t.entries = append(t.entries, e)
	return Handle(len(t.entries))
}

// take removes a resource and hands its value back to the caller.
func (t *Table) take(handle Handle) (any, bool) {
	typeID, value, ok := t.invalidate(handle)
	if !ok {
		return nil, false
	}

	t.notify(Event{
		Type:   EventDropped,
		Handle: handle,
		TypeID: typeID,
		Value:  value,
	})
	return value, true
}

func (t *Table) invalidate(handle Handle) (uint32, any, bool) {
	if handle == 0 {
		return 0, nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	idx := int(handle) - 1
	if idx >= len(t.entries) {
		return 0, nil, false
	}

	e := &t.entries[idx]
	if !e.valid {
		return 0, nil, false
	}

	typeID, value := e.typeID, e.value
	e.valid = false
	e.value = nil
	t.freeList = append(t.freeList, handle)
	return typeID, value, true
}

func (t *Table) notify(e Event) {
	t.obsMu.RLock()
	defer t.obsMu.RUnlock()
	for _, o := range t.observers {
		o.OnResourceEvent(e)
	}
}
