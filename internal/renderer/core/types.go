// Package core provides shared value types for the renderer subsystem.
// This package breaks import cycles between scene, occlusion and the
// output packages.
package core

import (
	"fmt"
	"math"
)

// Vector2 is a (row, col) pair on the character grid.
// It is used both for positions and for sizes.
type Vector2 struct {
	Row int
	Col int
}

// Vec creates a vector.
func Vec(row, col int) Vector2 {
	return Vector2{Row: row, Col: col}
}

// Add returns the component-wise sum.
func (v Vector2) Add(other Vector2) Vector2 {
	return Vector2{Row: v.Row + other.Row, Col: v.Col + other.Col}
}

// Sub returns the component-wise difference.
func (v Vector2) Sub(other Vector2) Vector2 {
	return Vector2{Row: v.Row - other.Row, Col: v.Col - other.Col}
}

// Scale multiplies both components by k.
func (v Vector2) Scale(k int) Vector2 {
	return Vector2{Row: v.Row * k, Col: v.Col * k}
}

// ScaleFloat multiplies both components by f, truncating toward zero.
func (v Vector2) ScaleFloat(f float64) Vector2 {
	return v.MultiplyFloat(f, f)
}

// ComponentMultiply returns (v.Row*other.Row, v.Col*other.Col).
func (v Vector2) ComponentMultiply(other Vector2) Vector2 {
	return Vector2{Row: v.Row * other.Row, Col: v.Col * other.Col}
}

// MultiplyFloat scales each component by its own factor, truncating toward zero.
func (v Vector2) MultiplyFloat(rowF, colF float64) Vector2 {
	return Vector2{
		Row: int(float64(v.Row) * rowF),
		Col: int(float64(v.Col) * colF),
	}
}

// Transpose swaps row and column.
func (v Vector2) Transpose() Vector2 {
	return Vector2{Row: v.Col, Col: v.Row}
}

// Corners returns the corners of the rectangle spanned by (0,0) and v,
// in the order top-left, bottom-left, bottom-right, top-right.
func (v Vector2) Corners() [4]Vector2 {
	return [4]Vector2{
		{Row: 0, Col: 0},
		{Row: v.Row, Col: 0},
		{Row: v.Row, Col: v.Col},
		{Row: 0, Col: v.Col},
	}
}

// Center returns the midpoint of v, rounding half away from zero.
func (v Vector2) Center() Vector2 {
	return Vector2{
		Row: int(math.Round(float64(v.Row) * 0.5)),
		Col: int(math.Round(float64(v.Col) * 0.5)),
	}
}

// DeeperThan returns true if v lies at or below-right of other.
func (v Vector2) DeeperThan(other Vector2) bool {
	return v.Row >= other.Row && v.Col >= other.Col
}

// ShallowerThan returns true if v lies at or above-left of other.
func (v Vector2) ShallowerThan(other Vector2) bool {
	return v.Row <= other.Row && v.Col <= other.Col
}

// IsZero returns true if both components are zero.
func (v Vector2) IsZero() bool {
	return v.Row == 0 && v.Col == 0
}

// Equals returns true if two vectors are equal.
func (v Vector2) Equals(other Vector2) bool {
	return v.Row == other.Row && v.Col == other.Col
}

// String returns a string representation of the vector.
func (v Vector2) String() string {
	return fmt.Sprintf("{%d, %d}", v.Row, v.Col)
}
