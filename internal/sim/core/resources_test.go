package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResources_FindOrAdd(t *testing.T) {
	rs := NewResources()
	assert.Nil(t, rs.Find("Water"))

	r := rs.FindOrAdd("Water")
	require.NotNil(t, r)
	assert.Equal(t, uint32(0), r.Amount())
	assert.Equal(t, MaxCapacity, r.Capacity())

	// Same entry is returned on the next lookup.
	assert.Same(t, r, rs.FindOrAdd("Water"))
	assert.Len(t, rs.All(), 1)
}

func TestResources_AddRemove(t *testing.T) {
	rs := NewResources()
	rs.Add("Oil", 5)
	assert.Equal(t, uint32(5), rs.Amount("Oil"))

	assert.True(t, rs.Remove("Oil", 2))
	assert.Equal(t, uint32(3), rs.Amount("Oil"))

	// Removing an unknown type does nothing and does not create it.
	assert.False(t, rs.Remove("Gold", 1))
	assert.False(t, rs.Has("Gold"))
}

func TestResources_BulkOps(t *testing.T) {
	src := NewResources()
	src.Add("Water", 3)
	src.Add("Oil", 7)

	dst := NewResources()
	dst.AddAll(src)
	assert.Equal(t, uint32(3), dst.Amount("Water"))
	assert.Equal(t, uint32(7), dst.Amount("Oil"))

	dst.RemoveAll(src)
	assert.True(t, dst.IsEmpty())

	// Self-application is guarded.
	src.AddAll(src)
	assert.Equal(t, uint32(3), src.Amount("Water"))
	src.RemoveAll(src)
	assert.Equal(t, uint32(3), src.Amount("Water"))
}

func TestResources_CanAddSome(t *testing.T) {
	tests := []struct {
		name     string
		setup    func() (*Resources, *Resources)
		expected bool
	}{
		{
			"matching type with headroom",
			func() (*Resources, *Resources) {
				self := NewResources()
				self.SetCapacity("People", 4)
				offer := NewResources()
				offer.Add("People", 2)
				return self, offer
			},
			true,
		},
		{
			"unknown type never accepted",
			func() (*Resources, *Resources) {
				self := NewResources()
				offer := NewResources()
				offer.Add("People", 2)
				return self, offer
			},
			false,
		},
		{
			"no headroom",
			func() (*Resources, *Resources) {
				self := NewResources()
				self.SetCapacity("People", 2)
				self.Add("People", 2)
				offer := NewResources()
				offer.Add("People", 1)
				return self, offer
			},
			false,
		},
		{
			"offer holds nothing",
			func() (*Resources, *Resources) {
				self := NewResources()
				self.SetCapacity("People", 4)
				offer := NewResources()
				offer.FindOrAdd("People")
				return self, offer
			},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			self, offer := tt.setup()
			assert.Equal(t, tt.expected, self.CanAddSome(offer))
		})
	}

	t.Run("self is never acceptable", func(t *testing.T) {
		rs := NewResources()
		rs.Add("People", 1)
		assert.False(t, rs.CanAddSome(rs))
	})
}

func TestResources_TransferTo(t *testing.T) {
	src := NewResources()
	src.Add("People", 4)
	dst := NewResources()
	dst.SetCapacity("People", 3)

	src.TransferTo(dst)
	assert.Equal(t, uint32(3), dst.Amount("People"))
	assert.Equal(t, uint32(1), src.Amount("People"))
}

func TestResources_Clone(t *testing.T) {
	rs := NewResources()
	rs.SetCapacity("Water", 10)
	rs.Add("Water", 6)

	c := rs.Clone()
	require.Equal(t, uint32(6), c.Amount("Water"))
	require.Equal(t, uint32(10), c.Capacity("Water"))

	c.Add("Water", 4)
	assert.Equal(t, uint32(6), rs.Amount("Water"), "clone is independent")
}
