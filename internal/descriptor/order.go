package descriptor

import (
	"slices"
	"sort"

	"github.com/cockroachdb/errors"
)

// errCycle is returned by topoSort when the graph has a cycle.
var errCycle = errors.New("cycle detected")

// topoSort returns node indices so that every node comes after its
// dependencies.
//
// depsFn(i) yields indices that must come before i. When several nodes are
// ready the smallest index is taken, so the result is deterministic and keeps
// input order wherever dependencies allow. On a cycle it returns errCycle
// together with the indices that could not be ordered.
func topoSort(n int, depsFn func(i int) []int) ([]int, []int, error) {
	if n <= 0 {
		return nil, nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		for _, d := range depsFn(i) {
			if d < 0 || d >= n {
				return nil, nil, errors.Newf("dependency index out of range: %d depends on %d", i, d)
			}

			if d == i {
				continue
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)

		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				k := sort.SearchInts(ready, j)
				ready = slices.Insert(ready, k, j)
			}
		}
	}

	if len(order) != n {
		var stuck []int

		for i := range n {
			if indeg[i] > 0 {
				stuck = append(stuck, i)
			}
		}

		return nil, stuck, errCycle
	}

	return order, nil, nil
}
