// Package ui draws menu widgets from a sprite sheet.
package ui

import (
	"math"

	"github.com/faiface/pixel"

	"github.com/hanak0/ggsweep/errs"
	"github.com/hanak0/ggsweep/spritesheet"
)

// Slice indexes the nine sprites of a Panel.
type Slice int

const (
	TopLeft Slice = iota
	Top
	TopRight
	Left
	Center
	Right
	BottomLeft
	Bottom
	BottomRight
)

// Panel is a window or a part of the UI, drawn as a 9-slice: fixed corners,
// repeated edges and a repeated centre. All nine sprites must share the size
// of the top-left one. Sizes just above a multiple of that size leave the
// corners overlapping the edges.
type Panel struct {
	Rect    pixel.Rect
	Sprites [9]string
}

func NewPanel(rect pixel.Rect, sprites [9]string) *Panel {
	return &Panel{Rect: rect, Sprites: sprites}
}

type placement struct {
	slice Slice
	// Bottom-left corner of the tile
	min pixel.Vec
}

// layout places tiles of the given size, edges and centre first so that the
// corners end up on top.
func (panel *Panel) layout(tile pixel.Vec) []placement {
	rect := panel.Rect
	numHor := int(math.Max(rect.W()/tile.X-1, 0))
	numVert := int(math.Max(rect.H()/tile.Y-1, 0))

	var tiles []placement

	for i := 0; i < numVert; i++ {
		y := rect.Max.Y - tile.Y*float64(i+2)
		for j := 0; j < numHor; j++ {
			tiles = append(tiles, placement{Center, pixel.V(rect.Min.X+tile.X*float64(j+1), y)})
		}
	}

	for i := 0; i < numHor; i++ {
		x := rect.Min.X + tile.X*float64(i+1)
		tiles = append(tiles,
			placement{Top, pixel.V(x, rect.Max.Y-tile.Y)},
			placement{Bottom, pixel.V(x, rect.Min.Y)},
		)
	}

	for i := 0; i < numVert; i++ {
		y := rect.Max.Y - tile.Y*float64(i+2)
		tiles = append(tiles,
			placement{Left, pixel.V(rect.Min.X, y)},
			placement{Right, pixel.V(rect.Max.X-tile.X, y)},
		)
	}

	return append(tiles,
		placement{TopLeft, pixel.V(rect.Min.X, rect.Max.Y-tile.Y)},
		placement{TopRight, pixel.V(rect.Max.X-tile.X, rect.Max.Y-tile.Y)},
		placement{BottomLeft, rect.Min},
		placement{BottomRight, pixel.V(rect.Max.X-tile.X, rect.Min.Y)},
	)
}

func (panel *Panel) Draw(t pixel.Target, sheet *spritesheet.SpriteSheet) error {
	tile, ok := sheet.PixelSize(panel.Sprites[TopLeft])
	if !ok {
		return errs.Errorf(errs.Resource, "sprite sheet %s does not have %s", sheet.Name(), panel.Sprites[TopLeft])
	}

	var sprites [9]*pixel.Sprite
	for i, name := range panel.Sprites {
		sprite, err := sheet.Sprite(name)
		if err != nil {
			return err
		}
		sprites[i] = sprite
	}

	half := tile.Scaled(0.5)
	for _, p := range panel.layout(tile) {
		sprites[p.slice].Draw(t, pixel.IM.Moved(p.min.Add(half)))
	}
	return nil
}
