package vartable

import "math/bits"

// Mask is a bitmap over the variable universe: bit i set means variable
// index i is a member. It fits a 32-bit word because MaxVariables is 27.
type Mask uint32

// Bit returns the singleton Mask for variable index i.
func Bit(i int) Mask {
	return Mask(1) << uint(i)
}

// Union returns the bitwise-OR of m and other.
func (m Mask) Union(other Mask) Mask {
	return m | other
}

// Intersect returns the bitwise-AND of m and other.
func (m Mask) Intersect(other Mask) Mask {
	return m & other
}

// Without returns m with every bit of other cleared.
func (m Mask) Without(other Mask) Mask {
	return m &^ other
}

// Contains reports whether variable index i is a member of m.
func (m Mask) Contains(i int) bool {
	return m&Bit(i) != 0
}

// SubsetOf reports whether every bit of m is also set in other.
func (m Mask) SubsetOf(other Mask) bool {
	return m&^other == 0
}

// PopCount returns the number of member variables in m.
func (m Mask) PopCount() int {
	return bits.OnesCount32(uint32(m))
}

// Empty reports whether m has no members.
func (m Mask) Empty() bool {
	return m == 0
}

// LowestSet returns the index of the lowest set bit in m, or -1 if m is empty.
func (m Mask) LowestSet() int {
	if m == 0 {
		return -1
	}
	return bits.TrailingZeros32(uint32(m))
}
