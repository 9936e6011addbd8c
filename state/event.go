package state

import "github.com/faiface/pixel"

type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
)

func (button MouseButton) String() string {
	switch button {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

type Key int

const (
	KeyUnknown Key = iota
	KeyReturn
	KeyEscape
	KeySpace
	KeyRight
	KeyR
	KeyN
)

type Mods int

const (
	ModNone  Mods = 0
	ModShift Mods = 1 << 0
	ModCtrl  Mods = 1 << 1
	ModAlt   Mods = 1 << 2
	ModSuper Mods = 1 << 3
)

func (mods Mods) Has(mod Mods) bool {
	return mods&mod != 0
}

// MouseMotionEvent is sent when the cursor moves. Positions are in window
// coordinates, origin at the bottom-left.
type MouseMotionEvent struct {
	Pos   pixel.Vec
	Delta pixel.Vec
}

type MouseButtonEvent struct {
	Button MouseButton
	Pos    pixel.Vec
}

type KeyEvent struct {
	Key  Key
	Mods Mods
}
