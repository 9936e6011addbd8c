package game

type CellState int
type BoardState int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	FlagWrong
	Mine
	MineUnrevealed
	MineLosing
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	FlagWrong,
	Mine,
	MineUnrevealed,
	MineLosing,
}

// IsOpen reports whether the state is an opened, mine-free cell.
func (state CellState) IsOpen() bool {
	return state >= Empty && state <= Number8
}

const (
	Lost BoardState = iota
	Won
	Ongoing
)

func (state BoardState) String() string {
	switch state {
	case Won:
		return "win"
	case Lost:
		return "loss"
	default:
		return "ongoing"
	}
}

type GameMode int

const (
	Classic GameMode = iota
	Win7
)

var GameModes = map[string]GameMode{
	"classic": Classic,
	"win7":    Win7,
}

func (mode GameMode) String() string {
	for name, m := range GameModes {
		if m == mode {
			return name
		}
	}
	return "unknown"
}
