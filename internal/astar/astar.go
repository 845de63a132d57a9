// Package astar implements a budget-bounded best-first graph search.
//
// The search never expands more than the given number of nodes, so paths
// beyond that horizon are reported as not found rather than searched for
// indefinitely.
package astar

import "container/heap"

// Search looks for a path from start to any node accepted by satisfied.
//
// heuristic estimates the remaining cost from a node; admissibility is the
// caller's responsibility. neighbors lists the nodes reachable from a node
// and transition prices a single step. Nodes with equal priority are
// expanded in discovery order, so the result is deterministic whenever the
// callbacks are.
//
// The returned path runs from start to the goal inclusive. ok is false when
// the budget ran out or the reachable graph was exhausted first.
func Search[T comparable](
	start T,
	budget int,
	heuristic func(T) float32,
	neighbors func(T) []T,
	transition func(from, to T) float32,
	satisfied func(T) bool,
) (path []T, ok bool) {
	cost := map[T]float32{start: 0}
	cameFrom := make(map[T]T)
	closed := make(map[T]bool)

	open := &queue[T]{}
	heap.Push(open, &item[T]{node: start, f: heuristic(start)})
	var seq uint64 = 1

	for expanded := 0; open.Len() > 0 && expanded < budget; {
		cur := heap.Pop(open).(*item[T])
		if closed[cur.node] || cur.g > cost[cur.node] {
			continue // stale entry
		}
		if satisfied(cur.node) {
			return reconstruct(cameFrom, start, cur.node), true
		}
		closed[cur.node] = true
		expanded++

		for _, next := range neighbors(cur.node) {
			if closed[next] {
				continue
			}
			g := cur.g + transition(cur.node, next)
			if old, seen := cost[next]; seen && g >= old {
				continue
			}
			cost[next] = g
			cameFrom[next] = cur.node
			heap.Push(open, &item[T]{node: next, g: g, f: g + heuristic(next), seq: seq})
			seq++
		}
	}

	return nil, false
}

func reconstruct[T comparable](cameFrom map[T]T, start, goal T) []T {
	path := []T{goal}
	for cur := goal; cur != start; {
		cur = cameFrom[cur]
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type item[T comparable] struct {
	node T
	g    float32 // cost from start
	f    float32 // g + heuristic
	seq  uint64  // discovery order, breaks ties
}

type queue[T comparable] []*item[T]

func (q queue[T]) Len() int { return len(q) }

func (q queue[T]) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q queue[T]) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue[T]) Push(x any) { *q = append(*q, x.(*item[T])) }

func (q *queue[T]) Pop() any {
	old := *q
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return it
}
