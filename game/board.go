package game

import (
	"math/rand"

	"github.com/hanak0/ggsweep/util/collections"
)

type BoardConfig struct {
	Width, Height int // in number of cells
	NumMines      int
	Mode          GameMode

	// Source of randomness for mine placement
	Rand *rand.Rand
	// Seed Rand was created with, kept for snapshots
	Seed int64

	OnGameEnd func(*Board)
}

type Board struct {
	width, height int
	numMines      int
	cells         []Cell

	state       BoardState
	mode        GameMode
	numFlags    int
	minesPlaced bool

	// Cells which must still be revealed to win
	remainingCells collections.Set[*Cell]

	rand      *rand.Rand
	seed      int64
	onGameEnd func(*Board)
}

// NewBoard creates a board with no mines placed yet. Mines are placed on the
// first click, so that it never hits one.
func NewBoard(config BoardConfig) *Board {
	board := createBoard(config)
	for i := range board.cells {
		board.remainingCells.Add(&board.cells[i])
	}
	return board
}

func createBoard(config BoardConfig) *Board {
	rng := config.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(config.Seed))
	}

	board := &Board{
		state:          Ongoing,
		width:          config.Width,
		height:         config.Height,
		numMines:       config.NumMines,
		cells:          make([]Cell, config.Width*config.Height),
		mode:           config.Mode,
		remainingCells: collections.NewSet[*Cell](),
		rand:           rng,
		seed:           config.Seed,
		onGameEnd:      config.OnGameEnd,
	}

	for idx := range board.cells {
		cell := &board.cells[idx]
		cell.board = board
		cell.idx = idx
		cell.x, cell.y = idx%config.Width, idx/config.Width
		cell.state = Unrevealed
	}

	return board
}

func (board *Board) Width() int {
	return board.width
}

func (board *Board) Height() int {
	return board.height
}

func (board *Board) NumCells() int {
	return board.width * board.height
}

func (board *Board) NumMines() int {
	return board.numMines
}

func (board *Board) NumFlags() int {
	return board.numFlags
}

func (board *Board) State() BoardState {
	return board.state
}

func (board *Board) Mode() GameMode {
	return board.mode
}

func (board *Board) Seed() int64 {
	return board.seed
}

func (board *Board) MinesPlaced() bool {
	return board.minesPlaced
}

func (board *Board) CanPlay() bool {
	return board.state == Ongoing
}

// CellAt returns the cell at column x, row y (row 0 is the top), or nil if
// the position is off the board.
func (board *Board) CellAt(x, y int) *Cell {
	if x >= 0 && y >= 0 && x < board.width && y < board.height {
		return &board.cells[y*board.width+x]
	}
	return nil
}

func (board *Board) CellAtIndex(idx int) *Cell {
	if idx >= 0 && idx < len(board.cells) {
		return &board.cells[idx]
	}
	return nil
}

// Cells returns every cell, row by row.
func (board *Board) Cells() []*Cell {
	cells := make([]*Cell, len(board.cells))
	for i := range board.cells {
		cells[i] = &board.cells[i]
	}
	return cells
}

func (board *Board) UnrevealedCells() []*Cell {
	var cells []*Cell
	for i := range board.cells {
		if !board.cells[i].isRevealed {
			cells = append(cells, &board.cells[i])
		}
	}
	return cells
}

// Apply performs a click, right-click or middle-click on a cell.
func (board *Board) Apply(action CellAction) {
	if !board.CanPlay() || action.Cell == nil || action.Cell.board != board {
		return
	}

	switch action.Action {
	case Click:
		action.Cell.click()
	case RightClick:
		action.Cell.rightClick()
	case MiddleClick:
		action.Cell.middleClick()
	}
}

// placeMines fills the board with mines, leaving safe free. In Win7 mode the
// neighbours of safe are kept free as well, when the board has room for it.
func (board *Board) placeMines(safe *Cell) {
	board.minesPlaced = true

	excluded := collections.NewSet(safe)
	if board.mode == Win7 {
		neighbors := safe.Neighbors()
		if board.NumCells()-len(neighbors)-1 >= board.numMines {
			for _, neighbor := range neighbors {
				excluded.Add(neighbor)
			}
		}
	}

	candidates := make([]*Cell, 0, board.NumCells())
	for i := range board.cells {
		if cell := &board.cells[i]; !excluded.Contains(cell) {
			candidates = append(candidates, cell)
		}
	}

	board.rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	numMines := board.numMines
	if numMines > len(candidates) {
		numMines = len(candidates)
	}
	for _, cell := range candidates[:numMines] {
		cell.setMine(true)
	}
}

func (board *Board) markRevealed(cell *Cell) {
	board.remainingCells.Remove(cell)

	if board.remainingCells.Len() == 0 && board.state == Ongoing {
		board.win()
	}
}

func (board *Board) win() {
	board.state = Won

	// Flag every mine left, like the classic game does
	for i := range board.cells {
		if cell := &board.cells[i]; cell.isMine && !cell.isFlagged {
			cell.setFlagged(true)
		}
	}

	board.endGame()
}

func (board *Board) lose() {
	board.state = Lost

	for i := range board.cells {
		board.cells[i].revealLost()
	}

	board.endGame()
}

func (board *Board) endGame() {
	if board.onGameEnd != nil {
		board.onGameEnd(board)
	}
}
