package game

import (
	"fmt"
)

type Cell struct {
	board *Board

	x, y     int
	idx      int
	numMines int

	isMine, isRevealed, isFlagged bool
	isLosingMine                  bool

	state CellState
}

func (cell *Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.x, cell.y)
}

func (cell *Cell) X() int {
	return cell.x
}

func (cell *Cell) Y() int {
	return cell.y
}

func (cell *Cell) Index() int {
	return cell.idx
}

// State is what the player sees of the cell.
func (cell *Cell) State() CellState {
	return cell.state
}

func (cell *Cell) IsRevealed() bool {
	return cell.isRevealed
}

func (cell *Cell) IsFlagged() bool {
	return cell.isFlagged
}

// NumMines is the number of mines surrounding the cell.
func (cell *Cell) NumMines() int {
	return cell.numMines
}

func (cell *Cell) Click() CellAction {
	return CellAction{Cell: cell, Action: Click}
}

func (cell *Cell) RightClick() CellAction {
	return CellAction{Cell: cell, Action: RightClick}
}

func (cell *Cell) MiddleClick() CellAction {
	return CellAction{Cell: cell, Action: MiddleClick}
}

var neighborOffsets = [8][2]int{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

func (cell *Cell) Neighbors() []*Cell {
	neighbors := make([]*Cell, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		if neighbor := cell.board.CellAt(cell.x+offset[0], cell.y+offset[1]); neighbor != nil {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

func (cell *Cell) click() {
	if !cell.board.minesPlaced {
		cell.board.placeMines(cell)
	}

	if !cell.isRevealed {
		if !cell.isMine && cell.numMines == 0 {
			cell.cascadeEmpty()
		} else {
			cell.reveal()
		}
	}
}

func (cell *Cell) rightClick() {
	if !cell.isRevealed {
		cell.setFlagged(!cell.isFlagged)
	}
}

// middleClick opens every unflagged neighbour, if the cell is revealed and
// has as many flags around it as it has mines.
func (cell *Cell) middleClick() {
	if !cell.isRevealed || cell.isFlagged {
		return
	}

	neighbors := cell.Neighbors()

	numFlaggedNeighbors := 0
	for _, neighbor := range neighbors {
		if neighbor.isFlagged {
			numFlaggedNeighbors++
		}
	}

	if cell.numMines == numFlaggedNeighbors {
		for _, neighbor := range neighbors {
			if !cell.board.CanPlay() {
				return
			}
			neighbor.click()
		}
	}
}

func (cell *Cell) setFlagged(isFlagged bool) {
	if cell.isFlagged == isFlagged {
		return
	}
	cell.isFlagged = isFlagged

	if cell.isFlagged {
		cell.setState(Flag)
		cell.board.numFlags++
	} else {
		cell.setState(Unrevealed)
		cell.board.numFlags--
	}
}

func (cell *Cell) setMine(isMine bool) {
	if cell.isMine == isMine {
		return
	}
	cell.isMine = isMine

	delta := 1
	if cell.isMine {
		cell.board.remainingCells.Remove(cell)
	} else {
		cell.board.remainingCells.Add(cell)
		delta = -1
	}

	for _, neighbor := range cell.Neighbors() {
		neighbor.numMines += delta
	}
}

func (cell *Cell) reveal() {
	if cell.isFlagged || cell.isRevealed {
		return
	}

	cell.isRevealed = true

	if cell.isMine {
		cell.setState(MineLosing)
		cell.isLosingMine = true
		cell.board.lose()
		return
	}

	cell.setState(CellState(cell.numMines))
	cell.board.markRevealed(cell)
}

func (cell *Cell) revealLost() {
	if cell.isFlagged {
		if !cell.isMine {
			cell.setState(FlagWrong)
		}
	} else if cell.isMine {
		if !cell.isLosingMine {
			cell.setState(MineUnrevealed)
		}
	}
}

func (cell *Cell) cascadeEmpty() {
	flood(
		cell,
		func(cell *Cell) {
			cell.reveal()
		},
		func(cell *Cell) []*Cell {
			return cell.Neighbors()
		},
	)
}

func (cell *Cell) setState(state CellState) {
	cell.state = state
}
