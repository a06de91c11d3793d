package shared

import (
	"github.com/ritprem/ritprem/errors"
)

// CellAllocator supplies the count cells shared between handles.
// AllocCell may fail; Adopt turns that failure into a KindAllocation error
// after releasing the resource it was about to own.
type CellAllocator interface {
	AllocCell() (*int, error)
	FreeCell(cell *int)
}

// HeapCells allocates count cells from the Go heap. It never fails.
type HeapCells struct{}

// AllocCell returns a new zeroed cell.
func (HeapCells) AllocCell() (*int, error) {
	return new(int), nil
}

// FreeCell leaves the cell to the garbage collector.
func (HeapCells) FreeCell(*int) {}

// CellBudget hands out at most a fixed number of live count cells, which
// caps how many distinct resources its handles may own at once.
type CellBudget struct {
	limit int
	live  int
}

// NewCellBudget creates a budget of limit live cells.
func NewCellBudget(limit int) *CellBudget {
	return &CellBudget{limit: limit}
}

// AllocCell returns a new cell, or a KindAllocation error once the budget
// is exhausted.
func (b *CellBudget) AllocCell() (*int, error) {
	if b.live >= b.limit {
		return nil, errors.New(errors.PhaseAdopt, errors.KindAllocation).
			Value(b.limit).
			Detail("count cell budget of %d exhausted", b.limit).
			Build()
	}
	b.live++
	return new(int), nil
}

// FreeCell returns a cell to the budget.
func (b *CellBudget) FreeCell(*int) {
	if b.live > 0 {
		b.live--
	}
}

// Live returns the number of cells currently handed out.
func (b *CellBudget) Live() int {
	return b.live
}

// Limit returns the budget size.
func (b *CellBudget) Limit() int {
	return b.limit
}
