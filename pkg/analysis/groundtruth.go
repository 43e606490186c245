package analysis

import (
	"math"
	"strconv"
	"strings"
)

// Coordinate is a real-world (x, y) position on the filter surface, in the
// physical units of the step size (typically microns).
type Coordinate struct {
	X int
	Y int
}

// ParseGroundTruth parses a free-form block of whitespace-separated integer
// pairs into coordinates. Tokens pair up in order: x y x y ... across any
// number of lines. Empty input is valid and means no ground truth was
// supplied. An odd token count or a non-integer token is a ParseError; the
// input is never silently truncated.
func ParseGroundTruth(text string) ([]Coordinate, error) {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return nil, nil
	}
	if len(tokens)%2 != 0 {
		return nil, &ParseError{Reason: "odd number of tokens, coordinates must come in x y pairs"}
	}

	coords := make([]Coordinate, 0, len(tokens)/2)
	for i := 0; i < len(tokens); i += 2 {
		x, err := strconv.Atoi(tokens[i])
		if err != nil {
			return nil, &ParseError{Token: tokens[i], Reason: "not an integer"}
		}
		y, err := strconv.Atoi(tokens[i+1])
		if err != nil {
			return nil, &ParseError{Token: tokens[i+1], Reason: "not an integer"}
		}
		coords = append(coords, Coordinate{X: x, Y: y})
	}
	return coords, nil
}

// CellIndex converts a real-world coordinate to the linear index of the
// grid cell containing it, given the real-world position of the first cell
// and the step size between consecutive cells. The mapping matches the
// raster ordering used for classification, which is what makes
// intersection counts between ground-truth and computed cells meaningful.
func (g Grid) CellIndex(c Coordinate, startX, startY int, stepsize float64) int {
	x := int(math.Floor(float64(c.X-startX) / stepsize))
	y := int(math.Floor(float64(c.Y-startY) / stepsize))
	return x + y*g.Width
}

// Candidates converts the computed positive-cell indices into real-world
// coordinates, the inverse of CellIndex. These are the positions a
// researcher could revisit on the physical filter.
func (g Grid) Candidates(positive []int, startX, startY int, stepsize float64) []Coordinate {
	coords := make([]Coordinate, 0, len(positive))
	for _, idx := range positive {
		x, y := g.Coordinate(idx)
		coords = append(coords, Coordinate{
			X: startX + int(float64(x)*stepsize),
			Y: startY + int(float64(y)*stepsize),
		})
	}
	return coords
}

// Reconciliation compares manually identified particles against the
// computationally identified cells.
type Reconciliation struct {
	// GroundTruth is the parsed list of manually identified coordinates.
	GroundTruth []Coordinate

	// GroundTruthCells are the ground-truth coordinates mapped to linear
	// cell indices, in input order.
	GroundTruthCells []int

	// ComputedCells are the computationally identified cell indices.
	ComputedCells []int

	// GroundTruthCount and ComputedCount are the sizes of the two sets.
	GroundTruthCount int
	ComputedCount    int

	// Intersection counts the ground-truth cells also present in the
	// computed set (set membership, not multiset).
	Intersection int

	// Union counts the cells identified by either method.
	Union int
}

// Reconcile maps the parsed ground-truth coordinates onto the grid and
// computes the overlap with the computed positive cells. With no ground
// truth supplied only the computed count is meaningful.
func (g Grid) Reconcile(groundTruth []Coordinate, computed []int, startX, startY int, stepsize float64) Reconciliation {
	rec := Reconciliation{
		GroundTruth:      groundTruth,
		ComputedCells:    computed,
		GroundTruthCount: len(groundTruth),
		ComputedCount:    len(computed),
	}

	computedSet := make(map[int]bool, len(computed))
	for _, idx := range computed {
		computedSet[idx] = true
	}

	truthSet := make(map[int]bool, len(groundTruth))
	rec.GroundTruthCells = make([]int, 0, len(groundTruth))
	for _, c := range groundTruth {
		idx := g.CellIndex(c, startX, startY, stepsize)
		rec.GroundTruthCells = append(rec.GroundTruthCells, idx)
		if truthSet[idx] {
			continue
		}
		truthSet[idx] = true
		if computedSet[idx] {
			rec.Intersection++
		}
	}
	rec.Union = len(truthSet) + len(computedSet) - rec.Intersection
	return rec
}
