package element

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritprem/ritprem/errors"
)

func TestTable_Lookup(t *testing.T) {
	table := NewTable()

	tests := []struct {
		symbol string
		want   Element
	}{
		{"B", Boron},
		{"P", Phosphorus},
		{"As", Arsenic},
		{"Sb", Antimony},
	}
	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			got, err := table.Lookup(tt.symbol)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTable_LookupBoron(t *testing.T) {
	b, err := NewTable().Lookup("B")
	require.NoError(t, err)
	assert.Equal(t, "boron", b.Name)
	assert.Equal(t, 5, b.AtomicNumber)
	assert.InDelta(t, 10.811, b.AtomicWeight, 1e-9)
}

func TestTable_LookupUnknown(t *testing.T) {
	_, err := NewTable().Lookup("AS")
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrNotFound)

	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, errors.PhaseLookup, e.Phase)
	assert.Equal(t, "AS", e.Value)
}

func TestTable_Register(t *testing.T) {
	table := NewTable()
	ga := Element{Name: "gallium", Symbol: "Ga", AtomicNumber: 31, AtomicWeight: 69.723}

	require.NoError(t, table.Register(ga))
	got, err := table.Lookup("Ga")
	require.NoError(t, err)
	assert.Equal(t, ga, got)
	assert.Equal(t, []string{"As", "B", "Ga", "P", "Sb"}, table.Symbols())
}

func TestTable_RegisterInvalid(t *testing.T) {
	table := NewTable()

	err := table.Register(Element{Name: "nothing"})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	err = table.Register(Element{Symbol: "X", AtomicNumber: 0})
	assert.ErrorIs(t, err, errors.ErrInvalidInput)

	assert.Len(t, table.Symbols(), 4)
}

func TestElement_String(t *testing.T) {
	assert.Equal(t, "boron (B, Z=5, 10.811 u)", Boron.String())
}
