// Package random provides a director that clicks unrevealed cells in a
// random order.
package random

import (
	"math/rand"

	"github.com/hanak0/ggsweep/game"
)

type Director struct {
	rand  *rand.Rand
	order []*game.Cell
}

func New(rng *rand.Rand) *Director {
	return &Director{rand: rng}
}

func (director *Director) Start(board *game.Board) {
	director.order = board.Cells()

	director.rand.Shuffle(len(director.order), func(i, j int) {
		director.order[i], director.order[j] = director.order[j], director.order[i]
	})
}

func (director *Director) Act() (game.CellAction, bool) {
	for len(director.order) > 0 {
		cell := director.order[0]
		if !cell.IsRevealed() && !cell.IsFlagged() {
			return cell.Click(), true
		}
		director.order = director.order[1:]
	}
	return game.CellAction{}, false
}
