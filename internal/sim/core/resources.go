package core

import "strings"

// Resources is a type-keyed collection of Resource entries, created lazily
// on first access. A container that has never held a resource type has no
// entry for it, which matters for routing: CanAddSome refuses types the
// owner never carried.
type Resources struct {
	bin []*Resource
}

func NewResources() *Resources {
	return &Resources{}
}

// Find returns the entry of the given type, or nil.
func (rs *Resources) Find(kind string) *Resource {
	for _, r := range rs.bin {
		if r.kind == kind {
			return r
		}
	}
	return nil
}

// FindOrAdd returns the existing entry of the given type, creating an
// empty one with maximum capacity if absent.
func (rs *Resources) FindOrAdd(kind string) *Resource {
	if r := rs.Find(kind); r != nil {
		return r
	}
	r := NewResource(kind)
	rs.bin = append(rs.bin, r)
	return r
}

// Add increases the amount of the given type, creating the entry if
// needed, and returns it.
func (rs *Resources) Add(kind string, amount uint32) *Resource {
	r := rs.FindOrAdd(kind)
	r.Add(amount)
	return r
}

// Remove decreases the amount of the given type. It reports whether the
// entry existed; a missing entry is left missing.
func (rs *Resources) Remove(kind string, amount uint32) bool {
	r := rs.Find(kind)
	if r == nil {
		return false
	}
	r.Remove(amount)
	return true
}

// AddAll applies Add for every entry of other. Self-addition is a no-op.
func (rs *Resources) AddAll(other *Resources) {
	if rs == other {
		return
	}
	for _, r := range other.bin {
		rs.Add(r.kind, r.amount)
	}
}

// RemoveAll applies Remove for every entry of other. Self-removal is a
// no-op.
func (rs *Resources) RemoveAll(other *Resources) {
	if rs == other {
		return
	}
	for _, r := range other.bin {
		rs.Remove(r.kind, r.amount)
	}
}

// CanAddSome reports whether at least one resource of other could flow in:
// other holds a positive amount of a type that already exists here with
// headroom left.
func (rs *Resources) CanAddSome(other *Resources) bool {
	if rs == other {
		return false
	}
	for _, r := range other.bin {
		if !r.HasAmount() {
			continue
		}
		if mine := rs.Find(r.kind); mine != nil && mine.amount < mine.capacity {
			return true
		}
	}
	return false
}

// TransferTo moves every entry into target, each bounded by the target's
// per-type headroom. Self-transfer is a no-op.
func (rs *Resources) TransferTo(target *Resources) {
	if rs == target {
		return
	}
	for _, r := range rs.bin {
		r.TransferTo(target.FindOrAdd(r.kind))
	}
}

// Amount returns the held amount of the given type, zero if absent.
func (rs *Resources) Amount(kind string) uint32 {
	if r := rs.Find(kind); r != nil {
		return r.amount
	}
	return 0
}

// Capacity returns the capacity of the given type, zero if absent.
func (rs *Resources) Capacity(kind string) uint32 {
	if r := rs.Find(kind); r != nil {
		return r.capacity
	}
	return 0
}

// SetCapacity changes the capacity of the given type, creating the entry
// if absent.
func (rs *Resources) SetCapacity(kind string, capacity uint32) {
	rs.FindOrAdd(kind).SetCapacity(capacity)
}

// SetCapacities applies SetCapacity for every entry of other.
func (rs *Resources) SetCapacities(other *Resources) {
	for _, r := range other.bin {
		rs.SetCapacity(r.kind, r.capacity)
	}
}

// IsEmpty reports whether every entry holds zero.
func (rs *Resources) IsEmpty() bool {
	for _, r := range rs.bin {
		if r.HasAmount() {
			return false
		}
	}
	return true
}

// Has reports whether an entry of the given type exists, regardless of
// amount.
func (rs *Resources) Has(kind string) bool {
	return rs.Find(kind) != nil
}

// All returns the entries in insertion order. The slice is shared; callers
// must not mutate it.
func (rs *Resources) All() []*Resource {
	return rs.bin
}

// Clone returns a deep copy preserving amounts and capacities.
func (rs *Resources) Clone() *Resources {
	out := NewResources()
	for _, r := range rs.bin {
		c := NewResource(r.kind)
		c.capacity = r.capacity
		c.amount = r.amount
		out.bin = append(out.bin, c)
	}
	return out
}

func (rs *Resources) String() string {
	parts := make([]string, 0, len(rs.bin))
	for _, r := range rs.bin {
		parts = append(parts, r.String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
