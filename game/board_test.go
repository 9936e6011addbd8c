package game

import (
	"math/rand"
	"strings"
	"testing"
)

func newTestBoard(width, height, mines int, mode GameMode, seed int64) *Board {
	return NewBoard(BoardConfig{
		Width:    width,
		Height:   height,
		NumMines: mines,
		Mode:     mode,
		Rand:     rand.New(rand.NewSource(seed)),
		Seed:     seed,
	})
}

func countMines(board *Board) int {
	count := 0
	for _, cell := range board.Cells() {
		if cell.isMine {
			count++
		}
	}
	return count
}

func TestFirstClickPlacesMinesAroundIt(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		board := newTestBoard(10, 10, 30, Classic, seed)
		if board.MinesPlaced() {
			t.Fatalf("mines placed before the first click")
		}

		cell := board.CellAt(3, 3)
		board.Apply(cell.Click())

		if !board.MinesPlaced() {
			t.Fatalf("seed %d: mines not placed after the first click", seed)
		}
		if cell.isMine {
			t.Fatalf("seed %d: first clicked cell holds a mine", seed)
		}
		if got := countMines(board); got != 30 {
			t.Fatalf("seed %d: board has %d mines, want 30", seed, got)
		}
		if !cell.IsRevealed() {
			t.Fatalf("seed %d: clicked cell not revealed", seed)
		}
		if state := cell.State(); !state.IsOpen() || int(state) != cell.NumMines() {
			t.Fatalf("seed %d: clicked cell state = %v with %d mines around", seed, state, cell.NumMines())
		}
		if n := cell.NumMines(); n < 0 || n > 8 {
			t.Fatalf("seed %d: NumMines() = %d", seed, n)
		}
	}
}

func TestWin7KeepsNeighboursFree(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		board := newTestBoard(9, 9, 10, Win7, seed)
		cell := board.CellAt(4, 4)
		board.Apply(cell.Click())

		if cell.NumMines() != 0 {
			t.Fatalf("seed %d: first click in win7 mode has %d mines around", seed, cell.NumMines())
		}
		if got := countMines(board); got != 10 {
			t.Fatalf("seed %d: board has %d mines, want 10", seed, got)
		}
	}
}

func TestWin7FallsBackOnCrowdedBoard(t *testing.T) {
	board := newTestBoard(3, 3, 7, Win7, 1)
	cell := board.CellAt(1, 1)
	board.Apply(cell.Click())

	if got := countMines(board); got != 7 {
		t.Fatalf("board has %d mines, want 7", got)
	}
	if cell.isMine {
		t.Fatalf("first clicked cell holds a mine")
	}
}

func TestNeighborCounts(t *testing.T) {
	board := newTestBoard(5, 5, 6, Classic, 7)
	board.Apply(board.CellAt(0, 0).Click())

	for _, cell := range board.Cells() {
		want := 0
		for _, neighbor := range cell.Neighbors() {
			if neighbor.isMine {
				want++
			}
		}
		if cell.NumMines() != want {
			t.Errorf("%v: NumMines() = %d, want %d", cell, cell.NumMines(), want)
		}
	}
}

func TestNeighbors(t *testing.T) {
	board := newTestBoard(4, 3, 0, Classic, 0)

	tests := []struct {
		x, y int
		want int
	}{
		{0, 0, 3},
		{3, 2, 3},
		{1, 0, 5},
		{1, 1, 8},
	}
	for _, test := range tests {
		if got := len(board.CellAt(test.x, test.y).Neighbors()); got != test.want {
			t.Errorf("(%d, %d) has %d neighbours, want %d", test.x, test.y, got, test.want)
		}
	}

	if board.CellAt(-1, 0) != nil || board.CellAt(4, 0) != nil || board.CellAt(0, 3) != nil {
		t.Errorf("CellAt() off the board returned a cell")
	}
}

func TestEmptyBoardCascadesToWin(t *testing.T) {
	ended := 0
	board := NewBoard(BoardConfig{
		Width:     6,
		Height:    4,
		NumMines:  0,
		Rand:      rand.New(rand.NewSource(1)),
		OnGameEnd: func(*Board) { ended++ },
	})

	board.Apply(board.CellAt(2, 2).Click())

	for _, cell := range board.Cells() {
		if !cell.IsRevealed() || cell.State() != Empty {
			t.Fatalf("%v not opened: %v", cell, cell.State())
		}
	}
	if board.State() != Won {
		t.Errorf("State() = %v, want win", board.State())
	}
	if ended != 1 {
		t.Errorf("OnGameEnd called %d times, want 1", ended)
	}
}

func TestFloodStopsAtNumbers(t *testing.T) {
	snapshot := &BoardSnapshot{SerializedBoard: strings.Join([]string{
		"#####",
		"#####",
		"####O",
	}, "\n")}
	board, err := snapshot.CreateBoard(BoardConfig{}, true)
	if err != nil {
		t.Fatalf("CreateBoard() failed: %v", err)
	}

	board.Apply(board.CellAt(0, 0).Click())

	if board.CellAt(3, 2).IsRevealed() != true || board.CellAt(3, 2).State() != Number1 {
		t.Errorf("(3, 2) = %v, want Number1", board.CellAt(3, 2).State())
	}
	if board.CellAt(4, 2).IsRevealed() {
		t.Errorf("mine was revealed by the flood")
	}
	if board.State() != Won {
		t.Errorf("State() = %v, want win", board.State())
	}
	if !board.CellAt(4, 2).IsFlagged() {
		t.Errorf("winning did not flag the remaining mine")
	}
}

func TestClickingMineLoses(t *testing.T) {
	snapshot := &BoardSnapshot{SerializedBoard: "O#\n#O"}
	board, err := snapshot.CreateBoard(BoardConfig{}, true)
	if err != nil {
		t.Fatalf("CreateBoard() failed: %v", err)
	}

	board.Apply(board.CellAt(1, 0).RightClick())
	board.Apply(board.CellAt(0, 0).Click())

	if board.State() != Lost {
		t.Fatalf("State() = %v, want loss", board.State())
	}
	if got := board.CellAt(0, 0).State(); got != MineLosing {
		t.Errorf("clicked mine = %v, want MineLosing", got)
	}
	if got := board.CellAt(1, 1).State(); got != MineUnrevealed {
		t.Errorf("other mine = %v, want MineUnrevealed", got)
	}
	if got := board.CellAt(1, 0).State(); got != FlagWrong {
		t.Errorf("wrong flag = %v, want FlagWrong", got)
	}

	// No more moves once lost
	board.Apply(board.CellAt(0, 1).Click())
	if board.CellAt(0, 1).IsRevealed() {
		t.Errorf("cell revealed after the game was lost")
	}
}

func TestRightClickTogglesFlag(t *testing.T) {
	board := newTestBoard(3, 3, 1, Classic, 3)
	cell := board.CellAt(1, 1)

	board.Apply(cell.RightClick())
	if !cell.IsFlagged() || cell.State() != Flag || board.NumFlags() != 1 {
		t.Fatalf("flag not set: %v, %d flags", cell.State(), board.NumFlags())
	}

	// Flagged cells can't be opened
	board.Apply(cell.Click())
	if cell.IsRevealed() {
		t.Fatalf("flagged cell was revealed")
	}

	board.Apply(cell.RightClick())
	if cell.IsFlagged() || cell.State() != Unrevealed || board.NumFlags() != 0 {
		t.Fatalf("flag not cleared: %v, %d flags", cell.State(), board.NumFlags())
	}
}

func TestMiddleClickChords(t *testing.T) {
	snapshot := &BoardSnapshot{SerializedBoard: strings.Join([]string{
		"O##",
		"###",
		"###",
	}, "\n")}
	board, err := snapshot.CreateBoard(BoardConfig{}, true)
	if err != nil {
		t.Fatalf("CreateBoard() failed: %v", err)
	}

	center := board.CellAt(1, 1)
	board.Apply(center.Click())
	if center.State() != Number1 {
		t.Fatalf("center = %v, want Number1", center.State())
	}

	// Not enough flags: nothing happens
	board.Apply(center.MiddleClick())
	if board.CellAt(2, 2).IsRevealed() {
		t.Fatalf("chord opened cells without enough flags")
	}

	board.Apply(board.CellAt(0, 0).RightClick())
	board.Apply(center.MiddleClick())

	for _, cell := range board.Cells() {
		if cell == board.CellAt(0, 0) {
			continue
		}
		if !cell.IsRevealed() {
			t.Errorf("%v not opened by chord", cell)
		}
	}
	if board.State() != Won {
		t.Errorf("State() = %v, want win", board.State())
	}
}
