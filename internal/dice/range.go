// Package dice provides the seeded random stream threaded through dungeon
// generation, plus the integer ranges it rolls counts from.
package dice

import (
	"errors"
	"fmt"
)

// ErrInvalidRange is returned when a range cannot produce a value.
var ErrInvalidRange = errors.New("invalid range")

// Range is the half-open integer range [Offset, Offset+Length).
type Range struct {
	Offset int `yaml:"offset"`
	Length int `yaml:"length"`
}

// NewRange creates a range starting at offset holding length values.
func NewRange(offset, length int) Range {
	return Range{Offset: offset, Length: length}
}

// Fixed returns a range that always rolls n.
func Fixed(n int) Range {
	return Range{Offset: n, Length: 1}
}

// Max returns the largest value the range can produce.
func (r Range) Max() int {
	return r.Offset + r.Length - 1
}

// Contains reports whether n can be rolled from the range.
func (r Range) Contains(n int) bool {
	return n >= r.Offset && n < r.Offset+r.Length
}

// Validate checks that the range yields at least one non-negative count.
func (r Range) Validate() error {
	if r.Length < 1 {
		return fmt.Errorf("%w: length %d must be at least 1", ErrInvalidRange, r.Length)
	}
	if r.Offset < 0 {
		return fmt.Errorf("%w: offset %d must not be negative", ErrInvalidRange, r.Offset)
	}
	return nil
}

// String returns the range in interval notation.
func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Offset, r.Offset+r.Length)
}
