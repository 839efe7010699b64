package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResource_Add(t *testing.T) {
	tests := []struct {
		name     string
		capacity uint32
		adds     []uint32
		expected uint32
	}{
		{"simple add", 100, []uint32{10, 20}, 30},
		{"saturates at capacity", 50, []uint32{40, 40}, 50},
		{"no overflow near max", MaxCapacity, []uint32{MaxCapacity, MaxCapacity}, MaxCapacity},
		{"zero add", 100, []uint32{0}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResource("Water")
			r.SetCapacity(tt.capacity)
			for _, n := range tt.adds {
				r.Add(n)
			}
			assert.Equal(t, tt.expected, r.Amount())
			assert.LessOrEqual(t, r.Amount(), r.Capacity())
		})
	}
}

func TestResource_Remove(t *testing.T) {
	r := NewResource("Oil")
	r.Add(10)

	r.Remove(3)
	assert.Equal(t, uint32(7), r.Amount())

	// Flooring at zero, never wrapping.
	r.Remove(100)
	assert.Equal(t, uint32(0), r.Amount())
	assert.False(t, r.HasAmount())
}

func TestResource_SetCapacity(t *testing.T) {
	r := NewResource("People")
	assert.Equal(t, MaxCapacity, r.Capacity())

	r.Add(10)
	r.SetCapacity(4)
	assert.Equal(t, uint32(4), r.Capacity())
	assert.Equal(t, uint32(4), r.Amount(), "amount truncated to new capacity")
}

func TestResource_TransferTo(t *testing.T) {
	tests := []struct {
		name       string
		srcAmount  uint32
		dstAmount  uint32
		dstCap     uint32
		wantMoved  uint32
	}{
		{"full transfer", 5, 0, 10, 5},
		{"bounded by headroom", 8, 7, 10, 3},
		{"target full", 8, 10, 10, 0},
		{"source empty", 0, 2, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewResource("People")
			src.Add(tt.srcAmount)
			dst := NewResource("People")
			dst.SetCapacity(tt.dstCap)
			dst.Add(tt.dstAmount)

			srcBefore, dstBefore := src.Amount(), dst.Amount()
			src.TransferTo(dst)

			// Transfer conserves the total amount.
			require.Equal(t, srcBefore-src.Amount(), dst.Amount()-dstBefore)
			assert.Equal(t, tt.wantMoved, dst.Amount()-dstBefore)
			assert.LessOrEqual(t, dst.Amount(), dst.Capacity())
		})
	}
}
