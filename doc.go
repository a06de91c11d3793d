// Package ritprem is a small process emulation module for dopant
// profiles in a silicon wafer, built around a reference-counted resource
// handle.
//
// # Architecture Overview
//
//	ritprem/
//	├── shared/      Handle[T]: shared ownership with pluggable policies
//	├── resource/    Live-resource table and the Tracker release policy
//	├── errors/      Structured error types
//	├── element/     Periodic table entries for dopants
//	├── wafer/       1-D wafer grid with copy-on-write concentrations
//	└── cmd/ritprem/ Command line tool and interactive browser
//
// # Quick Start
//
// Build the default wafer (6 µm, 0.01 µm steps, boron at 2·10¹⁵ cm⁻³):
//
//	w, err := wafer.New(wafer.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer w.Close()
//
//	w.SetDensity(0, "B", wafer.Dose(5, 18))
//	w.Display(os.Stdout)
//
// Share any heap value directly:
//
//	h, err := shared.Adopt(&v)
//	c := h.Copy()
//	c.MakeUnique()
//	h.Release()
//	c.Release()
//
// # Logging
//
// The shared, resource and wafer packages log through zap and are silent
// by default. Install a logger with each package's SetLogger; handle
// lifecycle events are emitted at debug level.
package ritprem
