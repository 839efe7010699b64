package core

import (
	"fmt"
	"math"
)

// MaxCapacity is the default capacity of a freshly created resource.
const MaxCapacity uint32 = math.MaxUint32

// Resource is the basic currency of the simulation: a typed amount bounded
// by a capacity. Examples: People, Water, Electricity, Money, Trash.
// The invariant 0 <= amount <= capacity holds after every operation.
type Resource struct {
	kind     string
	amount   uint32
	capacity uint32
}

// NewResource creates an empty resource of the given type with maximum
// capacity.
func NewResource(kind string) *Resource {
	return &Resource{kind: kind, capacity: MaxCapacity}
}

func (r *Resource) Type() string     { return r.kind }
func (r *Resource) Amount() uint32   { return r.amount }
func (r *Resource) Capacity() uint32 { return r.capacity }

// HasAmount reports whether the resource holds anything at all.
func (r *Resource) HasAmount() bool { return r.amount > 0 }

// Add increases the amount, saturating at the capacity without wrapping
// past the uint32 maximum.
func (r *Resource) Add(n uint32) {
	if r.amount >= MaxCapacity-n {
		r.amount = MaxCapacity
	} else {
		r.amount += n
	}
	if r.amount > r.capacity {
		r.amount = r.capacity
	}
}

// Remove decreases the amount, flooring at zero.
func (r *Resource) Remove(n uint32) {
	if r.amount > n {
		r.amount -= n
	} else {
		r.amount = 0
	}
}

// SetCapacity changes the capacity, truncating the amount if it no longer
// fits.
func (r *Resource) SetCapacity(c uint32) {
	r.capacity = c
	if r.amount > c {
		r.amount = c
	}
}

// TransferTo moves as much as possible into target, bounded by the
// target's remaining headroom.
func (r *Resource) TransferTo(target *Resource) {
	moved := target.capacity - target.amount
	if r.amount < moved {
		moved = r.amount
	}
	r.Remove(moved)
	target.Add(moved)
}

func (r *Resource) String() string {
	return fmt.Sprintf("%s %d/%d", r.kind, r.amount, r.capacity)
}
