package dxfio

// Point is a location in world space.
type Point struct {
	X, Y, Z float64
}

// Vector is a direction in world space.
type Vector struct {
	X, Y, Z float64
}
