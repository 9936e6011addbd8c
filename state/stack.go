package state

import (
	"fmt"
	"image/color"

	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"

	"github.com/hanak0/ggsweep/errs"
)

// Stack owns an ordered collection of states, topmost first, and dispatches
// frame and input callbacks through it.
//
// Input hooks cannot hand an error back to the host, so the first one raised
// is kept and returned by every following call to Update.
type Stack struct {
	states     deque.Deque[State]
	clearColor color.Color
	eventErr   error

	log logrus.FieldLogger
}

type StackOption func(*Stack)

func WithLogger(log logrus.FieldLogger) StackOption {
	return func(stack *Stack) {
		stack.log = log
	}
}

func NewStack(initial State, clearColor color.Color, opts ...StackOption) *Stack {
	stack := &Stack{
		clearColor: clearColor,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(stack)
	}

	if initial != nil {
		stack.states.PushFront(initial)
	}
	return stack
}

// Len returns the number of states on the stack.
func (stack *Stack) Len() int {
	return stack.states.Len()
}

// Done reports whether the last state has been popped. The host should stop
// calling into the stack once this is true.
func (stack *Stack) Done() bool {
	return stack.states.Len() == 0
}

// Top returns the topmost state, or nil if the stack is empty.
func (stack *Stack) Top() State {
	if stack.states.Len() == 0 {
		return nil
	}
	return stack.states.Front()
}

// At returns the state at index i, 0 being the topmost, or nil if there is no
// such state.
func (stack *Stack) At(i int) State {
	if i < 0 || i >= stack.states.Len() {
		return nil
	}
	return stack.states.At(i)
}

// Push puts s on top of the stack from outside a frame, e.g. to open a menu
// over the initial state before the loop starts.
func (stack *Stack) Push(s State) {
	stack.states.PushFront(s)
}

// Err returns the error captured from an input hook, if any.
func (stack *Stack) Err() error {
	return stack.eventErr
}

// Update walks the stack from the top, updating states until one of them
// returns something other than LetThrough, then applies the structural change
// it asked for.
func (stack *Stack) Update(ctx Context) error {
	if stack.eventErr != nil {
		return stack.eventErr
	}
	if stack.states.Len() == 0 {
		return errs.ErrStackEmpty
	}

	index := -1
	var result UpdateResult
	for i := 0; i < stack.states.Len(); i++ {
		var err error
		result, err = stack.states.At(i).Update(ctx)
		if err != nil {
			return err
		}
		if result.Transition != TransitionLetThrough {
			index = i
			break
		}
	}

	if index < 0 {
		return nil
	}
	return stack.apply(index, result)
}

func (stack *Stack) apply(index int, result UpdateResult) error {
	switch result.Transition {
	case TransitionBlock:
	case TransitionSwap:
		if result.Next == nil {
			return errs.Errorf(errs.Logic, "state %d asked to swap in a nil state", index)
		}
		stack.log.WithField("index", index).Debugf("swapping in %s", stateName(result.Next))
		stack.states.Set(index, result.Next)
	case TransitionPush:
		if result.Next == nil {
			return errs.Errorf(errs.Logic, "state %d asked to push a nil state", index)
		}
		stack.log.WithField("index", index).Debugf("pushing %s", stateName(result.Next))
		stack.states.PushFront(result.Next)
	case TransitionPop:
		popped := stack.states.Remove(index)
		stack.log.WithField("index", index).Debugf("popped %s", stateName(popped))
	default:
		return errs.Errorf(errs.Logic, "state %d returned unknown transition %v", index, result.Transition)
	}
	return nil
}

// Draw clears the frame, draws every visible state bottom to top and presents
// the result. The topmost state is always visible; each visible state that
// lets draws through makes the one below it visible too.
func (stack *Stack) Draw(ctx Context) error {
	if stack.states.Len() == 0 {
		return errs.ErrStackEmpty
	}

	last := 0
	for i := 1; i < stack.states.Len(); i++ {
		if !stack.states.At(i - 1).LetThroughDraw() {
			break
		}
		last = i
	}

	ctx.Clear(stack.clearColor)

	for i := last; i >= 0; i-- {
		if err := stack.states.At(i).Draw(ctx); err != nil {
			return err
		}
	}

	ctx.Present()
	return nil
}

func (stack *Stack) MouseMotion(ctx Context, ev MouseMotionEvent) {
	stack.dispatch("mouse motion", func(state State) (EventResult, error) {
		return state.MouseMotion(ctx, ev)
	})
}

func (stack *Stack) MouseButtonDown(ctx Context, ev MouseButtonEvent) {
	stack.dispatch("mouse button down", func(state State) (EventResult, error) {
		return state.MouseButtonDown(ctx, ev)
	})
}

func (stack *Stack) MouseButtonUp(ctx Context, ev MouseButtonEvent) {
	stack.dispatch("mouse button up", func(state State) (EventResult, error) {
		return state.MouseButtonUp(ctx, ev)
	})
}

func (stack *Stack) KeyUp(ctx Context, ev KeyEvent) {
	stack.dispatch("key up", func(state State) (EventResult, error) {
		return state.KeyUp(ctx, ev)
	})
}

func (stack *Stack) dispatch(event string, handle func(State) (EventResult, error)) {
	for i := 0; i < stack.states.Len(); i++ {
		result, err := handle(stack.states.At(i))
		if err != nil {
			stack.log.WithError(err).WithField("index", i).Errorf("encountered error in %s event", event)
			if stack.eventErr == nil {
				stack.eventErr = err
			}
			return
		}
		if result == Block {
			return
		}
	}
}

func stateName(state State) string {
	if stringer, ok := state.(fmt.Stringer); ok {
		return stringer.String()
	}
	return fmt.Sprintf("%T", state)
}
