package game

// Director plays the game in place of a human.
type Director interface {
	// Start is called with every new board, before any call to Act.
	Start(board *Board)

	// Act returns the next action to perform, or false if there is none.
	Act() (CellAction, bool)
}

type Action int

const (
	Click Action = iota
	RightClick
	MiddleClick
)

func (action Action) String() string {
	switch action {
	case Click:
		return "click"
	case RightClick:
		return "right-click"
	case MiddleClick:
		return "middle-click"
	default:
		return "unknown"
	}
}

type CellAction struct {
	Cell   *Cell
	Action Action
}
