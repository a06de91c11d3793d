package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_InsertDeduplicatesByIdentity(t *testing.T) {
	s := NewSet[sample]()
	a, err := Adopt(&sample{name: "b"})
	require.NoError(t, err)
	b, err := Adopt(&sample{name: "b"})
	require.NoError(t, err)

	assert.True(t, s.Insert(a))
	assert.Equal(t, 2, a.UseCount(), "set holds its own copy")
	assert.False(t, s.Insert(a.Copy()))
	assert.True(t, s.Insert(b), "equal value, distinct resource")
	assert.False(t, s.Insert(Empty[sample]()))
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Has(a))
	assert.False(t, s.Has(Empty[sample]()))
}

func TestSet_DeleteReleasesCopy(t *testing.T) {
	rel := &countingRelease[sample]{}
	s := NewSet[sample]()
	h, err := Adopt(&sample{}, WithReleasePolicy[sample](rel))
	require.NoError(t, err)

	s.Insert(h)
	h.Release()
	assert.Empty(t, rel.freed, "set keeps the resource alive")

	probe := Empty[sample]()
	s.Ascend(func(held *Handle[sample]) bool {
		probe = held.Copy()
		return false
	})
	assert.True(t, s.Delete(probe))
	assert.False(t, s.Delete(probe))
	assert.Zero(t, s.Len())
	assert.Empty(t, rel.freed)

	probe.Release()
	assert.Len(t, rel.freed, 1)
}

func TestSet_AscendInAddressOrder(t *testing.T) {
	backing := make([]sample, 4)
	s := NewSet[sample]()
	for _, i := range []int{2, 0, 3, 1} {
		h, err := Adopt(&backing[i])
		require.NoError(t, err)
		s.Insert(h)
		h.Release()
	}

	var got []*sample
	s.Ascend(func(h *Handle[sample]) bool {
		got = append(got, h.Unsafe())
		return true
	})
	require.Len(t, got, 4)
	for i := range backing {
		assert.Same(t, &backing[i], got[i])
	}
}

func TestSet_Clear(t *testing.T) {
	rel := &countingRelease[sample]{}
	s := NewSet[sample]()
	for range 3 {
		h, err := Adopt(&sample{}, WithReleasePolicy[sample](rel))
		require.NoError(t, err)
		s.Insert(h)
		h.Release()
	}

	s.Clear()
	assert.Zero(t, s.Len())
	assert.Len(t, rel.freed, 3)
}
