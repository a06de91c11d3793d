package wafer

import (
	"fmt"
	"io"

	"github.com/ritprem/ritprem/shared"
)

// GridPoint is one sample of the wafer. It holds shared handles to the
// concentrations present at that depth; points with the same profile
// share the same resources until one of them is written to.
type GridPoint struct {
	concentrations []*shared.Handle[Concentration]
}

// AddConcentration stores a copy of h. The caller keeps its own handle.
func (g *GridPoint) AddConcentration(h *shared.Handle[Concentration]) {
	if h.Empty() {
		return
	}
	g.concentrations = append(g.concentrations, h.Copy())
}

// Concentrations returns copies of the concentration values at this point.
func (g *GridPoint) Concentrations() []Concentration {
	out := make([]Concentration, 0, len(g.concentrations))
	for _, h := range g.concentrations {
		c, err := h.Value()
		if err != nil {
			continue
		}
		out = append(out, c.Clone())
	}
	return out
}

// Lookup returns the concentration of symbol at this point.
func (g *GridPoint) Lookup(symbol string) (Concentration, bool) {
	h := g.handle(symbol)
	if h == nil {
		return Concentration{}, false
	}
	c, err := h.Value()
	if err != nil {
		return Concentration{}, false
	}
	return c.Clone(), true
}

// Display writes the point in the console format:
//
//	Concentration:{
//		{concentration: 2000000000000000, name:boron}
//	}
func (g *GridPoint) Display(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Concentration:{ "); err != nil {
		return err
	}
	for _, c := range g.Concentrations() {
		if _, err := fmt.Fprintf(w, "\t%s\n", c); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "}")
	return err
}

func (g *GridPoint) handle(symbol string) *shared.Handle[Concentration] {
	for _, h := range g.concentrations {
		p := h.Unsafe()
		if p != nil && p.Element.Symbol == symbol {
			return h
		}
	}
	return nil
}

func (g *GridPoint) release() {
	for _, h := range g.concentrations {
		h.Release()
	}
	g.concentrations = nil
}
