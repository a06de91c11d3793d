package resource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritprem/ritprem/shared"
)

const profileTypeID = 3

type profile struct {
	depth   float64
	dropped *int
}

func (p *profile) Drop() {
	if p.dropped != nil {
		*p.dropped++
	}
}

func TestTracker_RecordsAdoptAndRelease(t *testing.T) {
	table := NewTable()
	tr := NewTracker[profile](table, profileTypeID, nil)
	obs := &testObserver{}
	table.Subscribe(obs)

	drops := 0
	raw := &profile{depth: 6, dropped: &drops}
	h, err := shared.Adopt(raw, shared.WithReleasePolicy[profile](tr))
	require.NoError(t, err)

	assert.Equal(t, 1, tr.Live())
	assert.True(t, tr.IsLive(raw))
	assert.Equal(t, 1, table.Len())

	c := h.Copy()
	assert.Equal(t, 1, table.Len(), "copies share one entry")

	h.Release()
	assert.Equal(t, 1, tr.Live())
	assert.Zero(t, drops)

	c.Release()
	assert.Zero(t, tr.Live())
	assert.False(t, tr.IsLive(raw))
	assert.Zero(t, table.Len())
	assert.Equal(t, 1, drops, "inner FreeStore drops exactly once")
	assert.Zero(t, tr.DoubleReleases())

	require.Len(t, obs.events, 2)
	assert.Equal(t, EventCreated, obs.events[0].Type)
	assert.Equal(t, uint32(profileTypeID), obs.events[0].TypeID)
	assert.Equal(t, EventDropped, obs.events[1].Type)
}

func TestTracker_DetectsDoubleAdoption(t *testing.T) {
	table := NewTable()
	inner := 0
	tr := NewTracker[profile](table, profileTypeID, shared.ReleaseFunc[profile](func(*profile) { inner++ }))
	obs := &testObserver{}
	table.Subscribe(obs)

	raw := &profile{}
	a, err := shared.Adopt(raw, shared.WithReleasePolicy[profile](tr))
	require.NoError(t, err)
	b, err := shared.Adopt(raw, shared.WithReleasePolicy[profile](tr))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.Live())

	a.Release()
	b.Release()

	assert.Equal(t, 1, inner, "inner policy runs once")
	assert.Equal(t, 1, tr.DoubleReleases())
	require.NotEmpty(t, obs.events)
	last := obs.events[len(obs.events)-1]
	assert.Equal(t, EventDoubleRelease, last.Type)
	assert.Same(t, raw, last.Value)
}

func TestTracker_PairsWithCopyOnWrite(t *testing.T) {
	table := NewTable()
	tr := NewTracker[profile](table, profileTypeID, nil)

	a, err := shared.Adopt(&profile{depth: 1}, shared.WithReleasePolicy[profile](tr))
	require.NoError(t, err)
	b := a.Copy()

	require.NoError(t, b.MakeUnique())
	assert.Equal(t, 2, tr.Live())
	assert.Equal(t, 2, table.Len())

	a.Release()
	b.Release()
	assert.Zero(t, tr.Live())
	assert.Zero(t, tr.DoubleReleases())
}

func TestTracker_AllocationFailureIsPaired(t *testing.T) {
	table := NewTable()
	tr := NewTracker[profile](table, profileTypeID, nil)
	budget := shared.NewCellBudget(0)

	_, err := shared.Adopt(&profile{},
		shared.WithReleasePolicy[profile](tr),
		shared.WithCellAllocator[profile](budget))

	require.Error(t, err)
	assert.Zero(t, tr.Live())
	assert.Zero(t, tr.DoubleReleases())
	assert.Zero(t, table.Len())
}

func TestTracker_Table(t *testing.T) {
	table := NewTable()
	tr := NewTracker[int](table, 1, nil)
	assert.Same(t, table, tr.Table())
}

func TestTracker_SharedTableKeepsEntriesApart(t *testing.T) {
	table := NewTable()
	first := NewTracker[profile](table, profileTypeID, nil)
	second := NewTracker[profile](table, profileTypeID+1, nil)

	a, err := shared.Adopt(&profile{depth: 1}, shared.WithReleasePolicy[profile](first))
	require.NoError(t, err)
	b, err := shared.Adopt(&profile{depth: 2}, shared.WithReleasePolicy[profile](second))
	require.NoError(t, err)

	a.Release()
	c, err := shared.Adopt(&profile{depth: 3}, shared.WithReleasePolicy[profile](first))
	require.NoError(t, err)
	b.Release()

	require.Equal(t, 1, table.Len())
	var left []float64
	table.Each(func(_ Handle, typeID uint32, v any) bool {
		assert.Equal(t, uint32(profileTypeID), typeID)
		left = append(left, v.(*profile).depth)
		return true
	})
	assert.Equal(t, []float64{3}, left)
	assert.Equal(t, 1, first.Live())
	assert.Zero(t, second.Live())

	c.Release()
	assert.Zero(t, table.Len())
}
