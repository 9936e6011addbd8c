package state

import "fmt"

// EventResult is returned by the input hooks of a State.
type EventResult int

const (
	// Block stops the event from reaching the states below.
	Block EventResult = iota
	// LetThrough passes the event on to the next state down.
	LetThrough
)

func (result EventResult) String() string {
	if result == LetThrough {
		return "let-through"
	}
	return "block"
}

type Transition int

const (
	TransitionBlock Transition = iota
	TransitionLetThrough
	TransitionSwap
	TransitionPush
	TransitionPop
)

var transitionNames = map[Transition]string{
	TransitionBlock:      "block",
	TransitionLetThrough: "let-through",
	TransitionSwap:       "swap",
	TransitionPush:       "push",
	TransitionPop:        "pop",
}

func (transition Transition) String() string {
	if name, ok := transitionNames[transition]; ok {
		return name
	}
	return fmt.Sprintf("Transition(%d)", int(transition))
}

// UpdateResult is returned by State.Update. Next is only set for Swap and
// Push, and ownership of it passes to the Stack.
type UpdateResult struct {
	Transition Transition
	Next       State
}

var (
	// UpdateBlock stops the update walk for this frame.
	UpdateBlock = UpdateResult{Transition: TransitionBlock}
	// UpdateLetThrough updates the next state down as well.
	UpdateLetThrough = UpdateResult{Transition: TransitionLetThrough}
	// UpdatePop removes the returning state from the stack.
	UpdatePop = UpdateResult{Transition: TransitionPop}
)

// Swap replaces the returning state with next, in the same position.
func Swap(next State) UpdateResult {
	return UpdateResult{Transition: TransitionSwap, Next: next}
}

// Push puts next on top of the stack.
func Push(next State) UpdateResult {
	return UpdateResult{Transition: TransitionPush, Next: next}
}

func (result UpdateResult) String() string {
	return result.Transition.String()
}
