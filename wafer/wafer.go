package wafer

import (
	"fmt"
	"io"
	"math/big"
	"strconv"

	"go.uber.org/zap"

	"github.com/ritprem/ritprem/element"
	"github.com/ritprem/ritprem/errors"
	"github.com/ritprem/ritprem/resource"
	"github.com/ritprem/ritprem/shared"
)

// ConcentrationTypeID identifies concentrations in a resource.Table.
const ConcentrationTypeID uint32 = 1

// Wafer is a one-dimensional grid of points from the surface down to
// Length. All points start out sharing one initial concentration; a write
// to a single point detaches that point's copy first.
//
// A Wafer is not safe for concurrent use.
type Wafer struct {
	opts     Options
	elements *element.Table
	table    *resource.Table
	tracker  *resource.Tracker[Concentration]
	seed     *shared.Handle[Concentration]
	points   []GridPoint
	closed   bool
}

// Sample is the density of one species at one depth.
type Sample struct {
	Density *big.Int
	Depth   float64
}

// New builds a wafer of int(Length/Step) points, each holding the initial
// concentration.
func New(opts Options) (*Wafer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	elements := opts.Elements
	if elements == nil {
		elements = element.NewTable()
	}
	dopant, err := elements.Lookup(opts.Element)
	if err != nil {
		return nil, err
	}

	table := opts.Resources
	if table == nil {
		table = resource.NewTable()
	}

	w := &Wafer{
		opts:     opts,
		elements: elements,
		table:    table,
		tracker:  resource.NewTracker[Concentration](table, ConcentrationTypeID, nil),
	}

	seed, err := w.adopt(NewConcentration(dopant, opts.Density))
	if err != nil {
		return nil, err
	}
	w.seed = seed

	w.points = make([]GridPoint, int(opts.Length/opts.Step))
	for i := range w.points {
		w.points[i].AddConcentration(seed)
	}

	Logger().Info("wafer created",
		zap.Float64("length", opts.Length),
		zap.Float64("step", opts.Step),
		zap.Int("points", len(w.points)),
		zap.String("element", dopant.Symbol),
		zap.String("density", opts.Density.String()))
	return w, nil
}

// Len returns the number of grid points.
func (w *Wafer) Len() int {
	return len(w.points)
}

// Depth returns the depth of point i in µm.
func (w *Wafer) Depth(i int) float64 {
	return float64(i) * w.opts.Step
}

// Options returns the configuration the wafer was built with.
func (w *Wafer) Options() Options {
	return w.opts
}

// Point returns grid point i.
func (w *Wafer) Point(i int) (*GridPoint, error) {
	if err := w.checkIndex(i); err != nil {
		return nil, err
	}
	return &w.points[i], nil
}

// SetDensity sets the density of symbol at point i. A concentration still
// shared with other points is duplicated first, so only point i changes.
// A species not yet present at the point is added.
func (w *Wafer) SetDensity(i int, symbol string, density *big.Int) error {
	if err := w.checkIndex(i); err != nil {
		return err
	}
	if density == nil || density.Sign() < 0 {
		return errors.InvalidInput(errors.PhaseSimulate, []string{"grid", strconv.Itoa(i), symbol},
			"density must be zero or positive")
	}
	dopant, err := w.elements.Lookup(symbol)
	if err != nil {
		return err
	}

	point := &w.points[i]
	h := point.handle(symbol)
	if h == nil {
		added, err := w.adopt(NewConcentration(dopant, density))
		if err != nil {
			return err
		}
		point.AddConcentration(added)
		added.Release()
		return nil
	}

	detached := h.UseCount() > 1
	if err := h.MakeUnique(); err != nil {
		return err
	}
	c, err := h.Deref()
	if err != nil {
		return err
	}
	c.Density = copyInt(density)

	Logger().Debug("density set",
		zap.Int("point", i),
		zap.String("element", symbol),
		zap.Bool("detached", detached),
		zap.String("density", density.String()))
	return nil
}

// Share returns a new handle to the concentration of symbol at point i.
// The caller must Release it; until then Close reports it as live.
func (w *Wafer) Share(i int, symbol string) (*shared.Handle[Concentration], error) {
	if err := w.checkIndex(i); err != nil {
		return nil, err
	}
	h := w.points[i].handle(symbol)
	if h == nil {
		return nil, errors.NotFound(errors.PhaseSimulate, "concentration", symbol)
	}
	return h.Copy(), nil
}

// Profile returns the density of symbol at every depth. Points without
// the species report zero.
func (w *Wafer) Profile(symbol string) []Sample {
	out := make([]Sample, len(w.points))
	for i := range w.points {
		out[i] = Sample{Depth: w.Depth(i), Density: new(big.Int)}
		if c, ok := w.points[i].Lookup(symbol); ok {
			out[i].Density = c.Density
		}
	}
	return out
}

// DistinctProfiles returns how many distinct concentration resources the
// grid holds. A fresh wafer has one; each detached point adds one.
func (w *Wafer) DistinctProfiles() int {
	set := shared.NewSet[Concentration]()
	defer set.Clear()
	for i := range w.points {
		for _, h := range w.points[i].concentrations {
			set.Insert(h)
		}
	}
	return set.Len()
}

// Live returns the number of concentration resources not yet released.
func (w *Wafer) Live() int {
	return w.tracker.Live()
}

// Resources returns the table recording live concentrations.
func (w *Wafer) Resources() *resource.Table {
	return w.table
}

// Display writes every grid point in the console format.
func (w *Wafer) Display(out io.Writer) error {
	if _, err := fmt.Fprint(out, "The contents of the grid points are:"); err != nil {
		return err
	}
	for i := range w.points {
		if err := w.points[i].Display(out); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(out)
	return err
}

// Close releases every handle the wafer holds. Handles obtained from Share
// and not yet released keep their resources alive and are logged.
func (w *Wafer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	for i := range w.points {
		w.points[i].release()
	}
	w.points = nil
	w.seed.Release()

	if live := w.tracker.Live(); live > 0 {
		Logger().Warn("concentrations still shared after close", zap.Int("live", live))
		w.table.Each(func(h resource.Handle, _ uint32, v any) bool {
			if c, ok := v.(*Concentration); ok && w.tracker.IsLive(c) {
				Logger().Warn("shared concentration",
					zap.Uint32("handle", uint32(h)),
					zap.Stringer("value", c))
			}
			return true
		})
	}
	if n := w.tracker.DoubleReleases(); n > 0 {
		return errors.New(errors.PhaseRelease, errors.KindDoubleRelease).
			Value(n).
			Detail("%d concentrations released twice", n).
			Build()
	}
	return nil
}

func (w *Wafer) adopt(c Concentration) (*shared.Handle[Concentration], error) {
	raw := c
	return shared.Adopt(&raw,
		shared.WithFailurePolicy[Concentration](shared.Strict[Concentration]{}),
		shared.WithReleasePolicy[Concentration](w.tracker),
		shared.WithCellAllocator[Concentration](w.opts.Cells),
		shared.WithClone(cloneConcentration))
}

func (w *Wafer) checkIndex(i int) error {
	if i < 0 || i >= len(w.points) {
		return errors.OutOfRange(errors.PhaseSimulate, []string{"grid"}, i, len(w.points))
	}
	return nil
}
