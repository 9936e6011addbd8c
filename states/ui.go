package states

import (
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/text"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font/basicfont"

	"github.com/hanak0/ggsweep/config"
	"github.com/hanak0/ggsweep/spritesheet"
	"github.com/hanak0/ggsweep/state"
	"github.com/hanak0/ggsweep/ui"
)

const (
	mainMenuSheet     = "/Ui/Spritesheet/colored_sheet.yaml"
	mainMenuSheetFile = "blue"
)

var mainMenuPanelSprites = [9]string{
	"panel_tl", "panel_t", "panel_tr",
	"panel_l", "panel_c", "panel_r",
	"panel_bl", "panel_b", "panel_br",
}

// UIState is an overlay of UI elements. While it is a menu it takes every
// event and keeps the states below from updating. The states below are
// always drawn.
type UIState struct {
	sheet    *spritesheet.SpriteSheet
	panel    *ui.Panel
	elements []*ui.Element
	atlas    *text.Atlas
	log      logrus.FieldLogger

	isMenu bool
	quit   bool
}

// NewUI creates a UI overlay. panel may be nil.
func NewUI(sheet *spritesheet.SpriteSheet, panel *ui.Panel, elements []*ui.Element, isMenu bool, log logrus.FieldLogger) *UIState {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &UIState{
		sheet:    sheet,
		panel:    panel,
		elements: elements,
		atlas:    text.NewAtlas(basicfont.Face7x13, text.ASCII),
		log:      log.WithField("state", "ui"),
		isMenu:   isMenu,
	}
}

// NewMainMenu builds the menu shown over the game at start up. Clicking
// anywhere dismisses it.
func NewMainMenu(res config.Resources, log logrus.FieldLogger) (*UIState, error) {
	sheet, err := spritesheet.Load(res, mainMenuSheet, mainMenuSheetFile)
	if err != nil {
		return nil, err
	}

	panel := ui.NewPanel(pixel.R(80, 80, 208, 144), mainMenuPanelSprites)
	elements := []*ui.Element{
		ui.NewElement(pixel.V(100, 100), "button01", "hello world"),
		ui.NewLabelElement(pixel.V(92, 128), "click to play"),
	}
	return NewUI(sheet, panel, elements, true, log), nil
}

func (s *UIState) String() string {
	return "UIState"
}

func (s *UIState) IsMenu() bool {
	return s.isMenu
}

func (s *UIState) Update(ctx state.Context) (state.UpdateResult, error) {
	switch {
	case s.quit:
		return state.UpdatePop, nil
	case s.isMenu:
		return state.UpdateBlock, nil
	default:
		return state.UpdateLetThrough, nil
	}
}

func (s *UIState) Draw(ctx state.Context) error {
	if s.panel != nil {
		if err := s.panel.Draw(ctx, s.sheet); err != nil {
			return err
		}
	}
	for _, element := range s.elements {
		element.Draw(ctx, s.sheet, s.atlas, s.log)
	}
	return nil
}

func (s *UIState) LetThroughDraw() bool {
	return true
}

func (s *UIState) result() state.EventResult {
	if s.isMenu {
		return state.Block
	}
	return state.LetThrough
}

func (s *UIState) MouseMotion(ctx state.Context, ev state.MouseMotionEvent) (state.EventResult, error) {
	return s.result(), nil
}

func (s *UIState) MouseButtonDown(ctx state.Context, ev state.MouseButtonEvent) (state.EventResult, error) {
	return s.result(), nil
}

// MouseButtonUp dismisses the menu. It is popped on the next update.
func (s *UIState) MouseButtonUp(ctx state.Context, ev state.MouseButtonEvent) (state.EventResult, error) {
	if s.isMenu {
		s.quit = true
	}
	return s.result(), nil
}

func (s *UIState) KeyUp(ctx state.Context, ev state.KeyEvent) (state.EventResult, error) {
	if s.isMenu && ev.Key == state.KeyEscape {
		s.quit = true
	}
	return s.result(), nil
}
