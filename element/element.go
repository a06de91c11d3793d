// Package element provides periodic table entries for dopant species.
package element

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/ritprem/ritprem/errors"
)

// Element describes one chemical element.
type Element struct {
	Name         string
	Symbol       string
	AtomicNumber int
	AtomicWeight float64
}

func (e Element) String() string {
	return fmt.Sprintf("%s (%s, Z=%d, %.3f u)", e.Name, e.Symbol, e.AtomicNumber, e.AtomicWeight)
}

// Common silicon dopants.
var (
	Boron      = Element{Name: "boron", Symbol: "B", AtomicNumber: 5, AtomicWeight: 10.811}
	Phosphorus = Element{Name: "phosphorus", Symbol: "P", AtomicNumber: 15, AtomicWeight: 30.974}
	Arsenic    = Element{Name: "arsenic", Symbol: "As", AtomicNumber: 33, AtomicWeight: 74.922}
	Antimony   = Element{Name: "antimony", Symbol: "Sb", AtomicNumber: 51, AtomicWeight: 121.760}
)

// Table maps element symbols to elements. Safe for concurrent use.
type Table struct {
	mu       sync.RWMutex
	elements map[string]Element
}

// NewTable returns a table preloaded with the common silicon dopants.
func NewTable() *Table {
	t := &Table{elements: make(map[string]Element, 4)}
	for _, e := range []Element{Boron, Phosphorus, Arsenic, Antimony} {
		t.elements[e.Symbol] = e
	}
	return t
}

// Lookup returns the element registered under symbol. Symbols are case
// sensitive ("As", not "AS").
func (t *Table) Lookup(symbol string) (Element, error) {
	t.mu.RLock()
	e, ok := t.elements[symbol]
	t.mu.RUnlock()
	if !ok {
		return Element{}, errors.NotFound(errors.PhaseLookup, "element", symbol)
	}
	return e, nil
}

// Register adds or replaces an element.
func (t *Table) Register(e Element) error {
	if strings.TrimSpace(e.Symbol) == "" {
		return errors.InvalidInput(errors.PhaseLookup, []string{"symbol"}, "element symbol is empty")
	}
	if e.AtomicNumber <= 0 {
		return errors.InvalidInput(errors.PhaseLookup, []string{e.Symbol, "atomic_number"},
			fmt.Sprintf("atomic number %d is not positive", e.AtomicNumber))
	}

	t.mu.Lock()
	t.elements[e.Symbol] = e
	t.mu.Unlock()
	return nil
}

// Symbols returns the registered symbols in sorted order.
func (t *Table) Symbols() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]string, 0, len(t.elements))
	for s := range t.elements {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
