package routing

import "container/heap"

// pqItem is a heap entry: a stop with its tentative distance.
type pqItem struct {
	node string
	dist float64
}

type pq []pqItem

func (p pq) Len() int           { return len(p) }
func (p pq) Less(i, j int) bool { return p[i].dist < p[j].dist }
func (p pq) Swap(i, j int)      { p[i], p[j] = p[j], p[i] }

func (p *pq) Push(x any) {
	*p = append(*p, x.(pqItem))
}

func (p *pq) Pop() any {
	old := *p
	n := len(old)
	item := old[n-1]
	*p = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra over the graph and returns the stop-id
// path from start to end inclusive. Returns an empty slice when no
// path exists; it never fails. Stale heap entries are skipped instead
// of decreased, which keeps the search O(E log E).
func ShortestPath(g *Graph, start, end string) []string {
	dist := map[string]float64{start: 0}
	prev := map[string]string{}
	settled := map[string]bool{}

	q := &pq{}
	heap.Push(q, pqItem{node: start, dist: 0})

	for q.Len() > 0 {
		cur := heap.Pop(q).(pqItem)
		u := cur.node

		if settled[u] {
			continue
		}
		settled[u] = true

		if u == end {
			break
		}

		for _, e := range g.Neighbors(u) {
			if settled[e.To] {
				continue
			}
			alt := dist[u] + e.Weight
			if old, ok := dist[e.To]; !ok || alt < old {
				dist[e.To] = alt
				prev[e.To] = u
				heap.Push(q, pqItem{node: e.To, dist: alt})
			}
		}
	}

	if _, ok := dist[end]; !ok {
		return nil
	}

	// Reconstruct back-to-front.
	path := []string{}
	for cur := end; ; {
		path = append(path, cur)
		p, ok := prev[cur]
		if !ok {
			break
		}
		cur = p
	}

	if len(path) < 2 || path[len(path)-1] != start {
		return nil
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
