package game

import (
	"github.com/gammazero/deque"

	"github.com/hanak0/ggsweep/util/collections"
)

type NeighborGetter func(*Cell) []*Cell
type Visitor func(*Cell)

// flood visits cell and spreads breadth-first through the neighbours of every
// visited cell that has no surrounding mines.
func flood(cell *Cell, visit Visitor, getNeighbors NeighborGetter) {
	visited := collections.NewSet(cell.idx)

	var visitQueue deque.Deque[*Cell]
	visitQueue.PushBack(cell)

	for visitQueue.Len() > 0 {
		cell := visitQueue.PopFront()
		visit(cell)

		if cell.numMines != 0 || cell.isMine || cell.isFlagged {
			continue
		}
		for _, neighbor := range getNeighbors(cell) {
			// Don't visit, if already visited
			if visited.Contains(neighbor.idx) {
				continue
			}
			visited.Add(neighbor.idx)
			visitQueue.PushBack(neighbor)
		}
	}
}
