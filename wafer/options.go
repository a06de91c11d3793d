package wafer

import (
	"fmt"
	"math"
	"math/big"

	"github.com/ritprem/ritprem/element"
	"github.com/ritprem/ritprem/errors"
	"github.com/ritprem/ritprem/resource"
	"github.com/ritprem/ritprem/shared"
)

// Options configures a wafer.
type Options struct {
	// Elements resolves dopant symbols. Nil uses element.NewTable().
	Elements *element.Table
	// Cells supplies the count cells for concentration handles. Nil uses
	// shared.HeapCells.
	Cells shared.CellAllocator
	// Resources records every live concentration. Nil gives the wafer a
	// private table.
	Resources *resource.Table
	// Density is the initial dopant density in cm⁻³.
	Density *big.Int
	// Element is the symbol of the initial dopant.
	Element string
	// Length is the wafer depth in µm.
	Length float64
	// Step is the grid spacing in µm.
	Step float64
}

// DefaultOptions returns a 6 µm boron-doped wafer sampled every 0.01 µm
// at 2·10¹⁵ cm⁻³.
func DefaultOptions() Options {
	return Options{
		Length:  6.0,
		Step:    0.01,
		Element: element.Boron.Symbol,
		Density: Dose(2, 15),
	}
}

// Validate checks the geometry and the initial concentration.
func (o Options) Validate() error {
	if !finite(o.Length) || o.Length <= 0 {
		return errors.InvalidInput(errors.PhaseConfig, []string{"length"},
			fmt.Sprintf("length %v must be a positive number", o.Length))
	}
	if !finite(o.Step) || o.Step <= 0 {
		return errors.InvalidInput(errors.PhaseConfig, []string{"step"},
			fmt.Sprintf("step %v must be a positive number", o.Step))
	}
	if int(o.Length/o.Step) < 1 {
		return errors.InvalidInput(errors.PhaseConfig, []string{"step"},
			fmt.Sprintf("step %v is larger than length %v", o.Step, o.Length))
	}
	if o.Element == "" {
		return errors.InvalidInput(errors.PhaseConfig, []string{"element"}, "no dopant element")
	}
	if o.Density == nil || o.Density.Sign() < 0 {
		return errors.InvalidInput(errors.PhaseConfig, []string{"density"},
			"density must be zero or positive")
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
