package host

import (
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"

	"github.com/hanak0/ggsweep/state"
)

// poller is the part of *pixelgl.Window that reports input.
type poller interface {
	MousePosition() pixel.Vec
	Pressed(button pixelgl.Button) bool
	JustPressed(button pixelgl.Button) bool
	JustReleased(button pixelgl.Button) bool
}

// receiver is the part of *state.Stack that takes input.
type receiver interface {
	MouseMotion(ctx state.Context, ev state.MouseMotionEvent)
	MouseButtonDown(ctx state.Context, ev state.MouseButtonEvent)
	MouseButtonUp(ctx state.Context, ev state.MouseButtonEvent)
	KeyUp(ctx state.Context, ev state.KeyEvent)
}

var mouseButtons = []struct {
	button pixelgl.Button
	state  state.MouseButton
}{
	{pixelgl.MouseButtonLeft, state.MouseButtonLeft},
	{pixelgl.MouseButtonRight, state.MouseButtonRight},
	{pixelgl.MouseButtonMiddle, state.MouseButtonMiddle},
}

var keys = []struct {
	button pixelgl.Button
	key    state.Key
}{
	{pixelgl.KeyEnter, state.KeyReturn},
	{pixelgl.KeyKPEnter, state.KeyReturn},
	{pixelgl.KeyEscape, state.KeyEscape},
	{pixelgl.KeySpace, state.KeySpace},
	{pixelgl.KeyRight, state.KeyRight},
	{pixelgl.KeyR, state.KeyR},
	{pixelgl.KeyN, state.KeyN},
}

var modifiers = []struct {
	buttons []pixelgl.Button
	mod     state.Mods
}{
	{[]pixelgl.Button{pixelgl.KeyLeftShift, pixelgl.KeyRightShift}, state.ModShift},
	{[]pixelgl.Button{pixelgl.KeyLeftControl, pixelgl.KeyRightControl}, state.ModCtrl},
	{[]pixelgl.Button{pixelgl.KeyLeftAlt, pixelgl.KeyRightAlt}, state.ModAlt},
	{[]pixelgl.Button{pixelgl.KeyLeftSuper, pixelgl.KeyRightSuper}, state.ModSuper},
}

func currentMods(in poller) state.Mods {
	var mods state.Mods
	for _, m := range modifiers {
		for _, button := range m.buttons {
			if in.Pressed(button) {
				mods |= m.mod
			}
		}
	}
	return mods
}

// input tracks the mouse between frames.
type input struct {
	lastPos pixel.Vec
	seen    bool
}

// dispatch sends the input polled during the last window update to the stack:
// motion first, then presses, releases and released keys.
func (i *input) dispatch(in poller, stack receiver, ctx state.Context) {
	pos := in.MousePosition()
	if !i.seen || pos != i.lastPos {
		delta := pixel.ZV
		if i.seen {
			delta = pos.Sub(i.lastPos)
		}
		stack.MouseMotion(ctx, state.MouseMotionEvent{Pos: pos, Delta: delta})
		i.lastPos, i.seen = pos, true
	}

	for _, b := range mouseButtons {
		if in.JustPressed(b.button) {
			stack.MouseButtonDown(ctx, state.MouseButtonEvent{Button: b.state, Pos: pos})
		}
	}
	for _, b := range mouseButtons {
		if in.JustReleased(b.button) {
			stack.MouseButtonUp(ctx, state.MouseButtonEvent{Button: b.state, Pos: pos})
		}
	}

	mods := currentMods(in)
	for _, k := range keys {
		if in.JustReleased(k.button) {
			stack.KeyUp(ctx, state.KeyEvent{Key: k.key, Mods: mods})
		}
	}
}
