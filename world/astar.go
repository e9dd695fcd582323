package world

import (
	"container/heap"

	"github.com/pthm-cable/ethosim/components"
)

// neighborOffsets4 are the 4-neighbour (Manhattan) step directions.
var neighborOffsets4 = [4][2]int32{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// neighborOffsets8 are the 8-neighbour (Chebyshev) step directions,
// listed 4-neighbours first so tie-breaking prefers orthogonal moves.
var neighborOffsets8 = [8][2]int32{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// astarNode is a single open-set entry in the A* search.
type astarNode struct {
	tile  components.Tile
	f     int64 // f = g + h, scaled for tie-breaking
	g     int64
	order int // insertion order, for deterministic tie-breaking
	index int // heap index, maintained by container/heap
}

type nodeHeap []*astarNode

func (h nodeHeap) Len() int { return len(h) }
func (h nodeHeap) Less(i, j int) bool {
	if h[i].f != h[j].f {
		return h[i].f < h[j].f
	}
	if h[i].g != h[j].g {
		return h[i].g < h[j].g
	}
	return h[i].order < h[j].order
}
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}
func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[:n-1]
	return node
}

// defaultMaxExpansions bounds A* work per call so a single pathological
// request cannot blow the per-tick pathfinding budget (§4.3's Timeout
// outcome).
const defaultMaxExpansions = 4000

// FindPath computes a path from from to to (exclusive of from, inclusive
// of to) using A* with Manhattan (4-neighbour) or Chebyshev (8-neighbour)
// heuristic depending on allowDiagonal. maxSteps bounds the path length
// considered reachable (OutOfRange if the heuristic lower bound already
// exceeds it). Diagonal movement should be allowed by default for all
// action-issued requests — 4-only routing cascades failures when
// resources dot the terrain (§4.3).
func (g *Grid) FindPath(from, to components.Tile, allowDiagonal bool, maxSteps int32) ([]components.Tile, bool, components.PathFailReason) {
	if from == to {
		return []components.Tile{to}, true, 0
	}

	heuristic := manhattan
	offsets := neighborOffsets4[:]
	if allowDiagonal {
		heuristic = chebyshev
		offsets = neighborOffsets8[:]
	}

	if int32(heuristic(from, to)) > maxSteps {
		return nil, false, components.PathOutOfRange
	}

	if _, impassable := g.Cost(to); impassable {
		return nil, false, components.PathUnreachable
	}

	open := &nodeHeap{}
	heap.Init(open)
	startNode := &astarNode{tile: from, f: int64(heuristic(from, to)), g: 0}
	heap.Push(open, startNode)

	cameFrom := make(map[components.Tile]components.Tile, 256)
	gScore := map[components.Tile]int64{from: 0}
	visited := make(map[components.Tile]bool, 256)

	order := 1
	expansions := 0

	for open.Len() > 0 {
		current := heap.Pop(open).(*astarNode)
		if visited[current.tile] {
			continue
		}
		visited[current.tile] = true

		if current.tile == to {
			return reconstructPath(cameFrom, from, to), true, 0
		}

		expansions++
		if expansions > defaultMaxExpansions {
			return nil, false, components.PathTimeout
		}

		for _, off := range offsets {
			next := components.Tile{X: current.tile.X + off[0], Y: current.tile.Y + off[1]}
			if visited[next] {
				continue
			}
			cost, impassable := g.Cost(next)
			if impassable {
				continue
			}

			tentativeG := gScore[current.tile] + int64(cost)
			if existing, ok := gScore[next]; ok && tentativeG >= existing {
				continue
			}

			cameFrom[next] = current.tile
			gScore[next] = tentativeG

			h := int64(heuristic(next, to))
			heap.Push(open, &astarNode{tile: next, f: tentativeG + h, g: tentativeG, order: order})
			order++
		}
	}

	return nil, false, components.PathUnreachable
}

func reconstructPath(cameFrom map[components.Tile]components.Tile, from, to components.Tile) []components.Tile {
	var rev []components.Tile
	cur := to
	for cur != from {
		rev = append(rev, cur)
		cur = cameFrom[cur]
	}
	// reverse in place
	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

func manhattan(a, b components.Tile) int32 {
	return a.ManhattanDist(b)
}

func chebyshev(a, b components.Tile) int32 {
	return a.ChebyshevDist(b)
}
