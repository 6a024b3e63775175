// Package core provides fundamental types and utilities shared by the game
// engine and its collaborators. It contains no external dependencies
// (especially no Bubble Tea) to keep the game model pure and testable.
package core

// Point is a position or vector on the sky canvas, in canvas pixels.
type Point struct {
	X, Y float64
}

// XY creates a point from cartesian coordinates.
func XY(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Rect represents an axis-aligned box in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the cell (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Viewport maps canvas coordinates onto a grid of screen cells.
type Viewport struct {
	CanvasW, CanvasH float64
	Cols, Rows       int
}

// ToCell converts a canvas point to a cell position. Points outside the
// canvas map outside the grid and are clipped by Screen.Set.
func (v Viewport) ToCell(p Point) (int, int) {
	if v.CanvasW <= 0 || v.CanvasH <= 0 {
		return -1, -1
	}
	x := int(p.X / v.CanvasW * float64(v.Cols))
	y := int(p.Y / v.CanvasH * float64(v.Rows))
	return x, y
}

// ToCanvas converts a cell position back to the canvas point at the cell's center.
func (v Viewport) ToCanvas(x, y int) Point {
	if v.Cols <= 0 || v.Rows <= 0 {
		return Point{}
	}
	return Point{
		X: (float64(x) + 0.5) / float64(v.Cols) * v.CanvasW,
		Y: (float64(y) + 0.5) / float64(v.Rows) * v.CanvasH,
	}
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
