package game

import (
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/hanak0/ggsweep/errs"
)

// BoardSnapshot is the YAML form of a board. Each row of SerializedBoard
// holds one character per cell:
//
//	*  the mine that lost the game
//	F  flagged mine
//	O  mine
//	f  flagged cell without a mine
//	.  revealed cell
//	#  unrevealed cell
type BoardSnapshot struct {
	Seed            int64  `yaml:"seed"`
	Mode            string `yaml:"mode,omitempty"`
	SerializedBoard string `yaml:"board"`
}

func (snapshot *BoardSnapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errs.Wrap(errs.Logic, err, "serialize board snapshot")
	}
	return string(out), nil
}

func LoadSnapshot(in string) (*BoardSnapshot, error) {
	var snapshot BoardSnapshot
	if err := yaml.UnmarshalStrict([]byte(in), &snapshot); err != nil {
		return nil, errs.Wrap(errs.Config, err, "parse board snapshot")
	}
	return &snapshot, nil
}

func (board *Board) Snapshot() *BoardSnapshot {
	var rows strings.Builder
	for y := 0; y < board.height; y++ {
		if y > 0 {
			rows.WriteByte('\n')
		}
		for x := 0; x < board.width; x++ {
			rows.WriteString(board.CellAt(x, y).serialize())
		}
	}

	return &BoardSnapshot{
		Seed:            board.seed,
		Mode:            board.mode.String(),
		SerializedBoard: rows.String(),
	}
}

// CreateBoard rebuilds the board described by the snapshot. The size and mine
// count in config are replaced by the snapshot's. With fresh set, every cell
// starts unrevealed and unflagged.
func (snapshot *BoardSnapshot) CreateBoard(config BoardConfig, fresh bool) (*Board, error) {
	rows := strings.Split(strings.TrimRight(snapshot.SerializedBoard, "\n"), "\n")

	config.Height = len(rows)
	config.Width = len(rows[0])
	if config.Width == 0 {
		return nil, errs.New(errs.Config, "board snapshot is empty")
	}
	for y, row := range rows {
		if len(row) != config.Width {
			return nil, errs.Errorf(errs.Config, "board snapshot row %d has %d cells, want %d", y, len(row), config.Width)
		}
	}
	if mode, ok := GameModes[snapshot.Mode]; ok {
		config.Mode = mode
	}

	config.Seed = snapshot.Seed
	config.Rand = nil
	config.NumMines = strings.Count(snapshot.SerializedBoard, "*") +
		strings.Count(snapshot.SerializedBoard, "F") +
		strings.Count(snapshot.SerializedBoard, "O")

	board := NewBoard(config)
	board.minesPlaced = true

	// Mines go first, so that neighbour counts are right once cells are revealed
	for y, row := range rows {
		for x, c := range row {
			if !board.CellAt(x, y).deserializeMine(c) {
				return nil, errs.Errorf(errs.Config, "board snapshot has unknown cell %q at (%d, %d)", c, x, y)
			}
		}
	}

	if !fresh {
		for y, row := range rows {
			for x, c := range row {
				board.CellAt(x, y).deserializeState(c)
			}
		}

		switch {
		case board.state == Lost:
			for i := range board.cells {
				board.cells[i].revealLost()
			}
		case board.remainingCells.Len() == 0:
			board.state = Won
		}
	}

	return board, nil
}

func (cell *Cell) serialize() string {
	switch {
	case cell.isMine:
		switch {
		case cell.isLosingMine:
			return "*"
		case cell.isFlagged:
			return "F"
		default:
			return "O"
		}
	case cell.isFlagged:
		return "f"
	case cell.isRevealed:
		return "."
	default:
		return "#"
	}
}

func (cell *Cell) deserializeMine(c rune) bool {
	switch c {
	case '*', 'F', 'O':
		cell.setMine(true)
	case 'f', '.', '#':
	default:
		return false
	}
	return true
}

func (cell *Cell) deserializeState(c rune) {
	switch c {
	case '*':
		cell.isRevealed = true
		cell.isLosingMine = true
		cell.setState(MineLosing)
		cell.board.state = Lost
	case 'F', 'f':
		cell.setFlagged(true)
	case '.':
		cell.isRevealed = true
		cell.setState(CellState(cell.numMines))
		cell.board.remainingCells.Remove(cell)
	}
}
