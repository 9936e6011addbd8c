package spritesheet

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/pixel"

	"github.com/hanak0/ggsweep/config"
	"github.com/hanak0/ggsweep/errs"
)

const sheetYAML = `
name: colored
files:
  blue: /sheet_blue.png
  red: /missing.png
sprites:
  - {name: button01, x: 0, y: 0, width: 32, height: 16}
  - {name: corner, x: 32, y: 16, width: 8, height: 8}
`

func testPicture() pixel.Picture {
	return pixel.PictureDataFromImage(image.NewRGBA(image.Rect(0, 0, 64, 32)))
}

func TestFramesAreFlipped(t *testing.T) {
	info, err := ParseSheetInfo([]byte(sheetYAML))
	if err != nil {
		t.Fatalf("ParseSheetInfo() failed: %v", err)
	}
	sheet, err := New(info, testPicture())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	tests := map[string]pixel.Rect{
		"button01": pixel.R(0, 16, 32, 32),
		"corner":   pixel.R(32, 8, 40, 16),
	}
	for name, want := range tests {
		frame, ok := sheet.Frame(name)
		if !ok {
			t.Fatalf("Frame(%q) not found", name)
		}
		if frame != want {
			t.Errorf("Frame(%q) = %v, want %v", name, frame, want)
		}
	}

	if size, ok := sheet.PixelSize("button01"); !ok || size != pixel.V(32, 16) {
		t.Errorf("PixelSize(button01) = %v, %v", size, ok)
	}
	if _, ok := sheet.PixelSize("nope"); ok {
		t.Errorf("PixelSize(nope) found a sprite")
	}
	if got := sheet.Names(); len(got) != 2 || got[0] != "button01" || got[1] != "corner" {
		t.Errorf("Names() = %v", got)
	}
}

func TestSprite(t *testing.T) {
	info, _ := ParseSheetInfo([]byte(sheetYAML))
	sheet, err := New(info, testPicture())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	sprite, err := sheet.Sprite("corner")
	if err != nil {
		t.Fatalf("Sprite(corner) failed: %v", err)
	}
	if sprite.Frame() != pixel.R(32, 8, 40, 16) {
		t.Errorf("sprite frame = %v", sprite.Frame())
	}

	if _, err := sheet.Sprite("nope"); !errs.Is(err, errs.Resource) {
		t.Errorf("Sprite(nope) error = %v, want resource error", err)
	}
}

func TestSpriteOutsideImage(t *testing.T) {
	info := SheetInfo{
		Name:    "small",
		Sprites: []SpriteInfo{{Name: "big", X: 60, Y: 0, Width: 8, Height: 8}},
	}
	if _, err := New(info, testPicture()); !errs.Is(err, errs.Resource) {
		t.Errorf("New() error = %v, want resource error", err)
	}
}

func TestParseSheetInfoRejectsUnknownFields(t *testing.T) {
	if _, err := ParseSheetInfo([]byte("name: x\ncolour: blue\n")); !errs.Is(err, errs.Config) {
		t.Errorf("ParseSheetInfo() error = %v, want config error", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "sheet.yaml"), []byte(sheetYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	file, err := os.Create(filepath.Join(dir, "sheet_blue.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(file, image.NewRGBA(image.Rect(0, 0, 64, 32))); err != nil {
		t.Fatal(err)
	}
	file.Close()

	res := config.Resources{Root: dir}

	sheet, err := Load(res, "/sheet.yaml", "blue")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if sheet.Name() != "colored" || sheet.Picture().Bounds() != pixel.R(0, 0, 64, 32) {
		t.Errorf("loaded %s with bounds %v", sheet.Name(), sheet.Picture().Bounds())
	}

	tests := map[string]string{
		"unknown file key": "green",
		"missing image":    "red",
	}
	for name, key := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(res, "/sheet.yaml", key); !errs.Is(err, errs.Resource) {
				t.Errorf("Load(%q) error = %v, want resource error", key, err)
			}
		})
	}
}
