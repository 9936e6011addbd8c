package ui

import (
	"fmt"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/text"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/hanak0/ggsweep/spritesheet"
)

// Size of the placeholder drawn for sprites missing from the sheet
const placeholderSize = 32

// Element is a sprite, a text label, or a label centred on a sprite.
type Element struct {
	// Bottom-left corner
	Position   pixel.Vec
	SpriteName string
	Label      string

	warned bool
}

func NewElement(position pixel.Vec, spriteName, label string) *Element {
	return &Element{Position: position, SpriteName: spriteName, Label: label}
}

// NewImageElement creates an element without any text on it.
func NewImageElement(position pixel.Vec, spriteName string) *Element {
	return &Element{Position: position, SpriteName: spriteName}
}

// NewLabelElement creates an element that only has text.
func NewLabelElement(position pixel.Vec, label string) *Element {
	return &Element{Position: position, Label: label}
}

// Draw renders the element. A sprite missing from the sheet is drawn as a
// magenta square, and logged the first time only.
func (element *Element) Draw(t pixel.Target, sheet *spritesheet.SpriteSheet, atlas *text.Atlas, log logrus.FieldLogger) {
	spriteSize := pixel.ZV

	if element.SpriteName != "" {
		if sprite, err := sheet.Sprite(element.SpriteName); err == nil {
			spriteSize = sprite.Frame().Size()
			sprite.Draw(t, pixel.IM.Moved(element.Position.Add(spriteSize.Scaled(0.5))))
		} else {
			if !element.warned {
				log.WithField("sprite", element.SpriteName).Error("Sprite sheet has no such sprite")
				element.warned = true
			}
			spriteSize = pixel.V(placeholderSize, placeholderSize)

			imd := imdraw.New(nil)
			imd.Color = colornames.Magenta
			imd.Push(element.Position, element.Position.Add(spriteSize))
			imd.Rectangle(0)
			imd.Draw(t)
		}
	}

	if element.Label != "" {
		label := text.New(pixel.ZV, atlas)
		fmt.Fprint(label, element.Label)
		bounds := label.Bounds()

		pos := element.Position
		if element.SpriteName != "" {
			pos = pos.Add(spriteSize.Scaled(0.5)).Sub(bounds.Size().Scaled(0.5))
		}
		label.Draw(t, pixel.IM.Moved(pos.Sub(bounds.Min)))
	}
}
