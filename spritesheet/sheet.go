// Package spritesheet loads named sprites packed into a single image.
package spritesheet

import (
	"image"
	"sort"

	_ "image/png"

	"github.com/faiface/pixel"
	"gopkg.in/yaml.v2"

	"github.com/hanak0/ggsweep/config"
	"github.com/hanak0/ggsweep/errs"
)

// SheetInfo describes a sprite sheet. Files maps variant names, e.g. colours,
// to images that share the same layout.
type SheetInfo struct {
	Name    string            `yaml:"name"`
	Files   map[string]string `yaml:"files"`
	Sprites []SpriteInfo      `yaml:"sprites"`
}

// SpriteInfo locates a sprite in image coordinates, origin at the top-left.
type SpriteInfo struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

func ParseSheetInfo(data []byte) (SheetInfo, error) {
	var info SheetInfo
	if err := yaml.UnmarshalStrict(data, &info); err != nil {
		return info, errs.Wrap(errs.Config, err, "parse sprite sheet")
	}
	return info, nil
}

type SpriteSheet struct {
	info    SheetInfo
	picture pixel.Picture
	frames  map[string]pixel.Rect
	sprites map[string]*pixel.Sprite
}

// New cuts the sprites described by info out of picture.
func New(info SheetInfo, picture pixel.Picture) (*SpriteSheet, error) {
	bounds := picture.Bounds()
	sheet := &SpriteSheet{
		info:    info,
		picture: picture,
		frames:  make(map[string]pixel.Rect, len(info.Sprites)),
		sprites: make(map[string]*pixel.Sprite, len(info.Sprites)),
	}

	for _, sprite := range info.Sprites {
		// Pictures are addressed from the bottom-left
		frame := pixel.R(
			bounds.Min.X+float64(sprite.X),
			bounds.Max.Y-float64(sprite.Y+sprite.Height),
			bounds.Min.X+float64(sprite.X+sprite.Width),
			bounds.Max.Y-float64(sprite.Y),
		)
		if sprite.Width <= 0 || sprite.Height <= 0 || !contains(bounds, frame) {
			return nil, errs.Errorf(errs.Resource, "sprite %s of sheet %s does not fit in its %vx%v image",
				sprite.Name, info.Name, bounds.W(), bounds.H())
		}

		sheet.frames[sprite.Name] = frame
		sheet.sprites[sprite.Name] = pixel.NewSprite(picture, frame)
	}

	return sheet, nil
}

// Load reads the sheet info in infoName and the image it links to under
// fileKey.
func Load(res config.Resources, infoName, fileKey string) (*SpriteSheet, error) {
	data, err := res.ReadFile(infoName)
	if err != nil {
		return nil, err
	}
	info, err := ParseSheetInfo(data)
	if err != nil {
		return nil, err
	}

	imagePath, ok := info.Files[fileKey]
	if !ok {
		return nil, errs.Errorf(errs.Resource, "sheet %s does not have a link to a file called %s", info.Name, fileKey)
	}

	picture, err := loadPicture(res, imagePath)
	if err != nil {
		return nil, err
	}
	return New(info, picture)
}

func loadPicture(res config.Resources, path string) (pixel.Picture, error) {
	file, err := res.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, errs.Wrapf(errs.Resource, err, "decode image %s", path)
	}
	return pixel.PictureDataFromImage(img), nil
}

func contains(outer, inner pixel.Rect) bool {
	return inner.Min.X >= outer.Min.X && inner.Min.Y >= outer.Min.Y &&
		inner.Max.X <= outer.Max.X && inner.Max.Y <= outer.Max.Y
}

func (sheet *SpriteSheet) Name() string {
	return sheet.info.Name
}

func (sheet *SpriteSheet) Picture() pixel.Picture {
	return sheet.picture
}

// Names returns the sprite names in sorted order.
func (sheet *SpriteSheet) Names() []string {
	names := make([]string, 0, len(sheet.frames))
	for name := range sheet.frames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Frame returns the region of the picture holding the named sprite.
func (sheet *SpriteSheet) Frame(name string) (pixel.Rect, bool) {
	frame, ok := sheet.frames[name]
	return frame, ok
}

func (sheet *SpriteSheet) Sprite(name string) (*pixel.Sprite, error) {
	sprite, ok := sheet.sprites[name]
	if !ok {
		return nil, errs.Errorf(errs.Resource, "sprite sheet %s does not have %s", sheet.info.Name, name)
	}
	return sprite, nil
}

// PixelSize returns the width and height of the named sprite in pixels.
func (sheet *SpriteSheet) PixelSize(name string) (pixel.Vec, bool) {
	frame, ok := sheet.frames[name]
	if !ok {
		return pixel.ZV, false
	}
	return frame.Size(), true
}
