package gravity

import (
	"container/heap"
	"math"
)

// shortestPaths runs Dijkstra from source over spring lengths and returns the
// distance to every node. Unreachable nodes get +Inf.
//
// The frontier is a lazy min-heap: a node may be pushed several times and
// stale entries are skipped when popped. Equal distances pop in push order.
func shortestPaths(adj adjacency, source int) []float64 {
	n := len(adj.neighbors)
	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[source] = 0

	visited := make([]bool, n)
	pq := frontier{}
	seq := 0
	heap.Push(&pq, frontierItem{node: source, dist: 0, seq: seq})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(frontierItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true

		for _, nb := range adj.neighbors[u] {
			nd := item.dist + adj.length(u, nb.node)
			if nd >= dist[nb.node] {
				continue
			}
			dist[nb.node] = nd
			seq++
			heap.Push(&pq, frontierItem{node: nb.node, dist: nd, seq: seq})
		}
	}
	return dist
}

type frontierItem struct {
	node int
	dist float64
	seq  int
}

type frontier []frontierItem

func (pq frontier) Len() int { return len(pq) }

func (pq frontier) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].seq < pq[j].seq
}

func (pq frontier) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

func (pq *frontier) Push(x any) { *pq = append(*pq, x.(frontierItem)) }

func (pq *frontier) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
