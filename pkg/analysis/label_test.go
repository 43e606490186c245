package analysis

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// partition groups the labeled positive cells into per-component index
// sets, sorted for comparison. Label values are ignored; only the grouping
// matters.
func partition(labels []int, positive []int) [][]int {
	groups := make(map[int][]int)
	for _, idx := range positive {
		groups[labels[idx]] = append(groups[labels[idx]], idx)
	}
	var out [][]int
	for _, cells := range groups {
		sort.Ints(cells)
		out = append(out, cells)
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func TestLabelComponentsLShape(t *testing.T) {
	// An L-shaped region at (0,0), (1,0), (0,1) in a 3x3 grid is a single
	// 8-connected particle.
	g := Grid{Width: 3, Height: 3}
	positive := []int{0, 1, 3}

	labels := g.LabelComponents(positive)
	got := partition(labels, positive)
	if diff := cmp.Diff([][]int{{0, 1, 3}}, got); diff != "" {
		t.Errorf("unexpected partition (-want +got):\n%s", diff)
	}
}

func TestLabelComponentsDiagonal(t *testing.T) {
	// Diagonal adjacency counts as connected.
	g := Grid{Width: 3, Height: 3}
	positive := []int{0, 4, 8} // (0,0), (1,1), (2,2)

	labels := g.LabelComponents(positive)
	got := partition(labels, positive)
	if diff := cmp.Diff([][]int{{0, 4, 8}}, got); diff != "" {
		t.Errorf("unexpected partition (-want +got):\n%s", diff)
	}
}

func TestLabelComponentsDisjointGroups(t *testing.T) {
	// Two groups separated by a full row of negative cells.
	g := Grid{Width: 4, Height: 4}
	positive := []int{0, 1, 12, 13} // top-left pair, bottom-left pair

	labels := g.LabelComponents(positive)
	got := partition(labels, positive)
	if diff := cmp.Diff([][]int{{0, 1}, {12, 13}}, got); diff != "" {
		t.Errorf("unexpected partition (-want +got):\n%s", diff)
	}
}

func TestLabelComponentsPartitionProperty(t *testing.T) {
	// The labeled groups must cover the positive set exactly: every
	// positive cell gets a nonzero label, every other cell stays zero.
	g := Grid{Width: 5, Height: 4}
	positive := []int{0, 1, 6, 9, 14, 15, 16, 18}

	labels := g.LabelComponents(positive)

	inPositive := make(map[int]bool)
	for _, idx := range positive {
		inPositive[idx] = true
	}
	for idx, label := range labels {
		if inPositive[idx] && label == 0 {
			t.Errorf("positive cell %d lost its label", idx)
		}
		if !inPositive[idx] && label != 0 {
			t.Errorf("negative cell %d gained label %d", idx, label)
		}
	}
}

func TestLabelComponentsOrderIndependence(t *testing.T) {
	// Visiting the positive cells in a different order may change label
	// values but never the partition.
	g := Grid{Width: 5, Height: 5}
	positive := []int{0, 1, 5, 13, 17, 18, 24}
	reversed := make([]int, len(positive))
	for i, idx := range positive {
		reversed[len(positive)-1-i] = idx
	}

	forward := partition(g.LabelComponents(positive), positive)
	backward := partition(g.LabelComponents(reversed), positive)
	if diff := cmp.Diff(forward, backward); diff != "" {
		t.Errorf("partition depends on visit order (-forward +backward):\n%s", diff)
	}
}

func TestLabelComponentsLargeRegion(t *testing.T) {
	// A fully positive grid is a single component. The explicit work-list
	// traversal must handle a component of this size without recursion.
	g := Grid{Width: 200, Height: 200}
	positive := make([]int, g.Cells())
	for i := range positive {
		positive[i] = i
	}

	labels := g.LabelComponents(positive)
	first := labels[0]
	if first == 0 {
		t.Fatal("first cell has no label")
	}
	for idx, label := range labels {
		if label != first {
			t.Fatalf("cell %d has label %d, want %d", idx, label, first)
		}
	}
}

func TestLabelComponentsEmpty(t *testing.T) {
	g := Grid{Width: 3, Height: 3}
	labels := g.LabelComponents(nil)
	for idx, label := range labels {
		if label != 0 {
			t.Errorf("cell %d labeled %d in empty classification", idx, label)
		}
	}
}
