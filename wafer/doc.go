// Package wafer models a one-dimensional silicon wafer as a grid of dopant
// concentrations.
//
// Grid points share concentration resources through shared.Handle. A new
// wafer holds a single concentration referenced by every point:
//
//	w, err := wafer.New(wafer.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	w.DistinctProfiles()                       // 1
//	w.SetDensity(0, "B", wafer.Dose(5, 18))    // point 0 detaches its copy
//	w.DistinctProfiles()                       // 2
//
// Every concentration is adopted with a resource.Tracker release policy,
// so Live reports how many are still allocated and reaches zero after
// Close.
package wafer
