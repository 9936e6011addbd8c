// Package state implements a stack of interactive layers. Each layer is a
// State that is updated, drawn and fed input by a Stack, and can push, pop or
// swap states through the results it returns.
package state

import (
	"image/color"

	"github.com/faiface/pixel"
)

// Context is the host rendering and input handle. It is only valid for the
// call it is passed into; states must not keep it.
type Context interface {
	pixel.Target

	Bounds() pixel.Rect
	Clear(c color.Color)
	// Present shows the frame drawn since the last Clear.
	Present()
}

// State is a single layer of the stack.
//
// Update and Draw are required. The remaining methods can be inherited from
// Opaque, which blocks everything.
type State interface {
	// Update advances the state by one tick. The returned UpdateResult tells
	// the stack whether to update the next state down, and which structural
	// change to make, if any.
	Update(ctx Context) (UpdateResult, error)

	// Draw renders the state. It must not change anything observable.
	Draw(ctx Context) error

	// LetThroughDraw reports whether the state below this one should be drawn
	// as well.
	LetThroughDraw() bool

	MouseMotion(ctx Context, ev MouseMotionEvent) (EventResult, error)
	MouseButtonDown(ctx Context, ev MouseButtonEvent) (EventResult, error)
	MouseButtonUp(ctx Context, ev MouseButtonEvent) (EventResult, error)
	KeyUp(ctx Context, ev KeyEvent) (EventResult, error)
}

// Opaque provides the default State hooks: nothing below it is drawn and every
// input event is blocked. Embed it and override what should pass through.
type Opaque struct{}

func (Opaque) LetThroughDraw() bool {
	return false
}

func (Opaque) MouseMotion(Context, MouseMotionEvent) (EventResult, error) {
	return Block, nil
}

func (Opaque) MouseButtonDown(Context, MouseButtonEvent) (EventResult, error) {
	return Block, nil
}

func (Opaque) MouseButtonUp(Context, MouseButtonEvent) (EventResult, error) {
	return Block, nil
}

func (Opaque) KeyUp(Context, KeyEvent) (EventResult, error) {
	return Block, nil
}
