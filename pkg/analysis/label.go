package analysis

// seedMark marks a positive cell that has not yet been assigned to a
// component. It lives outside the label domain (labels are positive
// integers) so a seed can never be mistaken for a label.
const seedMark = -1

// LabelComponents partitions the positive cells of the grid into maximal
// 8-connected components and returns a width*height label grid: cells of
// one component share one label (1..n, in discovery order), all other
// cells are zero. Diagonal adjacency counts as connected.
//
// Every positive cell ends up in exactly one component, the starting cell
// of each fill included, and disjoint components never share a label. The
// order in which positive cells are processed affects only the numeric
// label values, never the partition.
//
// The traversal uses an explicit work-list stack rather than recursion so
// that a large contiguous positive region cannot exhaust the call stack.
// The label grid is exclusively owned by this function for the duration of
// the pass and returned frozen on completion.
func (g Grid) LabelComponents(positive []int) []int {
	labels := make([]int, g.Cells())
	for _, idx := range positive {
		labels[idx] = seedMark
	}

	next := 0
	for _, idx := range positive {
		if labels[idx] != seedMark {
			continue
		}
		next++
		g.fill(labels, idx, next)
	}
	return labels
}

// fill assigns label to the seed cell at start and to every seed cell
// 8-connected to it, depth-first via an explicit stack.
func (g Grid) fill(labels []int, start, label int) {
	stack := []int{start}
	labels[start] = label

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		x, y := g.Coordinate(idx)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := x+dx, y+dy
				if nx < 0 || nx >= g.Width || ny < 0 || ny >= g.Height {
					continue
				}
				nidx := g.Index(nx, ny)
				if labels[nidx] == seedMark {
					labels[nidx] = label
					stack = append(stack, nidx)
				}
			}
		}
	}
}
