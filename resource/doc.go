// Package resource keeps a table of live resources and a release policy
// that fills it.
//
// # Handle Table
//
// The Table maps integer handles to the live resources of one or more
// Trackers. Only Trackers add and remove entries; everyone else reads:
//
//	table := resource.NewTable()
//	n := table.Len()
//	table.Each(func(h resource.Handle, typeID uint32, v any) bool {
//	    fmt.Println(h, typeID, v)
//	    return true
//	})
//
// Freed handles are reused by later inserts.
//
// # Tracking shared handles
//
// Tracker is a shared.ReleasePolicy. Handles built with it record each
// adopted resource in the table and remove it when the last owner lets go:
//
//	table := resource.NewTable()
//	tr := resource.NewTracker[Profile](table, ProfileTypeID, nil)
//
//	h, _ := shared.Adopt(&Profile{}, shared.WithReleasePolicy[Profile](tr))
//	c := h.Copy()
//	h.Release()
//	c.Release()
//	// table.Len() == 0, tr.Live() == 0
//
// A release of a pointer that is not live is counted by DoubleReleases and
// published to observers as EventDoubleRelease; the inner policy is not
// called a second time.
//
// # Observers
//
//	table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    if e.Type == resource.EventDoubleRelease {
//	        ...
//	    }
//	}))
package resource
