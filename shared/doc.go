// Package shared provides Handle, a reference-counted owner of a heap
// resource with pluggable failure and release policies.
//
// # Ownership
//
// A resource enters a handle once, through Adopt. Every further owner is
// made from an existing handle with Copy, Assign or Convert, and all of
// them share one count cell:
//
//	a, err := shared.Adopt(&Profile{Depth: 6})
//	if err != nil {
//	    return err
//	}
//	b := a.Copy()      // a.UseCount() == 2
//	a.Release()        // b.UseCount() == 1, resource still alive
//	b.Release()        // release policy runs, cell freed
//
// Adopting the same raw pointer twice creates two unrelated counts and
// releases the resource twice. Nothing in the type prevents it; the
// resource.Tracker release policy detects it after the fact.
//
// # Policies
//
// The failure policy runs on every Deref, Value and At:
//
//	Strict[T]     returns a KindNullDereference error for an Empty handle
//	Assertive[T]  panics for an Empty handle; compiled out by the noassert
//	              build tag, after which an Empty handle dereferences to nil
//
// Assertive is the default. It exists for callers that never dereference
// an Empty handle by construction and do not want to pay for the check in
// noassert builds. It is unsafe in those builds.
//
// The release policy frees the resource when the count reaches zero:
//
//	FreeStore[T]       calls Drop when the value is a Dropper, then zeroes it
//	ArrayFreeStore[E]  the same for every element of a []E; enables At
//	ReleaseFunc[T]     any func(*T)
//
// # Copy on write
//
// MakeUnique duplicates a shared value before a write:
//
//	if err := h.MakeUnique(); err != nil {
//	    return err
//	}
//	p, _ := h.Deref()
//	p.Depth = 7 // no other handle sees this
//
// # Identity
//
// Equal, Compare and Less look at which resource a handle holds, not at
// the resource's value. Set keeps handles in an ordered tree keyed that
// way.
//
// # Concurrency
//
// Counts are plain ints. Handles sharing a resource must stay on one
// goroutine or be guarded by the caller's lock.
package shared
