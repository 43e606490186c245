package analysis

// Grid describes the rectangular field of view as a width x height raster
// of grid cells, one spectrum per cell. Linear cell indices follow the
// lexicographic file order; the raster mapping below is the inverse of
// that linear ordering and is used identically by every component,
// including the ground-truth coordinate transform.
type Grid struct {
	Width  int
	Height int
}

// Cells returns the total number of grid cells.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Coordinate converts a linear cell index to its (x, y) grid coordinate.
func (g Grid) Coordinate(index int) (x, y int) {
	return index % g.Width, index / g.Width
}

// Index converts an (x, y) grid coordinate back to its linear cell index.
func (g Grid) Index(x, y int) int {
	return x + y*g.Width
}

// Positive returns the linear indices of the cells whose reflectance
// difference strictly exceeds the cutoff, preserving cell order. Cells
// exactly at the cutoff are negative.
func Positive(differences []float64, cutoff float64) []int {
	var positive []int
	for i, d := range differences {
		if d > cutoff {
			positive = append(positive, i)
		}
	}
	return positive
}
