package gravity

// neighbor is one adjacency entry.
type neighbor struct {
	node   int
	weight float64 // normalized, in [0, 1]
}

// spring is an undirected node pair with its rest length.
type spring struct {
	u, v   int
	length float64
}

// pairKey identifies an unordered node pair.
type pairKey struct{ lo, hi int }

func keyOf(u, v int) pairKey {
	if u > v {
		u, v = v, u
	}
	return pairKey{lo: u, hi: v}
}

// adjacency is the symmetric neighbor index plus the spring set.
//
// neighbors[i] lists every edge touching node i in edge order; a repeated
// pair appears once per edge. springs holds one entry per distinct pair in
// order of first appearance, with the length of the last edge for that pair.
type adjacency struct {
	neighbors [][]neighbor
	springs   []spring
	lengths   map[pairKey]float64
}

// buildAdjacency normalizes link weights and derives target lengths.
// Every node in [0, n) gets an entry, even if it has no neighbors.
func buildAdjacency(n int, links []link) adjacency {
	weights := make([]float64, len(links))
	for i, l := range links {
		weights[i] = l.weight
	}
	norm := newNormalizer(weights)

	adj := adjacency{
		neighbors: make([][]neighbor, n),
		lengths:   make(map[pairKey]float64, len(links)),
	}
	slot := make(map[pairKey]int, len(links))

	for _, l := range links {
		w := norm.normalize(l.weight)
		length := targetLength(w)

		adj.neighbors[l.u] = append(adj.neighbors[l.u], neighbor{node: l.v, weight: w})
		adj.neighbors[l.v] = append(adj.neighbors[l.v], neighbor{node: l.u, weight: w})

		key := keyOf(l.u, l.v)
		adj.lengths[key] = length
		if i, ok := slot[key]; ok {
			adj.springs[i].length = length
			continue
		}
		slot[key] = len(adj.springs)
		adj.springs = append(adj.springs, spring{u: l.u, v: l.v, length: length})
	}
	return adj
}

// length returns the rest length between u and v.
func (a adjacency) length(u, v int) float64 {
	return a.lengths[keyOf(u, v)]
}
