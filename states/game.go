// Package states holds the concrete states the game stack is made of.
package states

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/text"
	"github.com/gammazero/deque"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"

	"github.com/hanak0/ggsweep/config"
	"github.com/hanak0/ggsweep/game"
	"github.com/hanak0/ggsweep/state"
	"github.com/hanak0/ggsweep/storage"
)

const (
	headerHeight   = 50
	minWindowWidth = 200
)

// ResultRecorder stores the outcome of finished games.
type ResultRecorder interface {
	RecordResult(result storage.Result) (int64, error)
}

type GameOptions struct {
	Config config.GameConfig
	// Source of randomness for the first board and the seeds of later ones.
	// Defaults to one seeded with Config.Seed.
	Rand *rand.Rand

	// Snapshot to load boards from instead of placing mines at random
	Snapshot *game.BoardSnapshot
	// Whether to set all cells as unrevealed when loading the Snapshot
	SnapshotFresh bool

	// Plays the game when set
	Director game.Director
	Recorder ResultRecorder

	// Transparency of annotations when first displayed
	AnnotationBaseAlpha float64
	// Total time an annotation will be displayed
	AnnotationDuration time.Duration

	Log logrus.FieldLogger
	Now func() time.Time
}

type press struct {
	button state.MouseButton
	index  int
}

// GameState is the minesweeper board. It takes every event and never lets
// anything below it update.
type GameState struct {
	state.Opaque

	opts  GameOptions
	cfg   config.GameConfig
	mode  game.GameMode
	rand  *rand.Rand
	log   logrus.FieldLogger
	atlas *text.Atlas

	board     *game.Board
	startedAt time.Time

	hover   int
	press   *press
	paused  bool
	lastAct time.Time

	annotations deque.Deque[annotation]
	actFrame    int
}

func NewGame(opts GameOptions) (*GameState, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(opts.Config.Seed))
	}
	if opts.AnnotationDuration == 0 {
		opts.AnnotationDuration = opts.Config.DirectorInterval
	}
	if opts.AnnotationDuration == 0 {
		opts.AnnotationDuration = 200 * time.Millisecond
	}
	if opts.AnnotationBaseAlpha == 0 {
		opts.AnnotationBaseAlpha = 0.5
	}

	mode, ok := game.GameModes[opts.Config.Mode]
	if !ok {
		mode = game.Classic
	}

	s := &GameState{
		opts:  opts,
		cfg:   opts.Config,
		mode:  mode,
		rand:  opts.Rand,
		log:   opts.Log.WithField("state", "game"),
		atlas: text.NewAtlas(basicfont.Face7x13, text.ASCII),
		hover: -1,
	}
	if err := s.resetBoard(opts.Rand, opts.Config.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *GameState) String() string {
	return "GameState"
}

func (s *GameState) Board() *game.Board {
	return s.board
}

func (s *GameState) Paused() bool {
	return s.paused
}

// WindowSize is the size of the window that fits the board and its header.
func (s *GameState) WindowSize() pixel.Vec {
	size := s.cfg.SquarePixelSize
	return pixel.V(
		math.Max(float64(s.board.Width())*size, minWindowWidth),
		float64(s.board.Height())*size+headerHeight,
	)
}

func (s *GameState) resetBoard(rng *rand.Rand, seed int64) error {
	boardConfig := game.BoardConfig{
		Width:     s.cfg.GridWidth,
		Height:    s.cfg.GridHeight,
		NumMines:  s.cfg.MineCount,
		Mode:      s.mode,
		Rand:      rng,
		Seed:      seed,
		OnGameEnd: s.onGameEnd,
	}

	if s.opts.Snapshot != nil {
		board, err := s.opts.Snapshot.CreateBoard(boardConfig, s.opts.SnapshotFresh)
		if err != nil {
			return err
		}
		s.board = board
	} else {
		s.board = game.NewBoard(boardConfig)
	}

	s.startedAt = s.opts.Now()
	s.lastAct = s.startedAt
	s.press = nil
	s.annotations.Clear()
	if s.opts.Director != nil {
		s.opts.Director.Start(s.board)
	}

	s.log.WithFields(logrus.Fields{
		"width":  s.board.Width(),
		"height": s.board.Height(),
		"mines":  s.board.NumMines(),
		"mode":   s.board.Mode(),
		"seed":   s.board.Seed(),
	}).Info("New board")
	return nil
}

func (s *GameState) newGame(paused bool) error {
	seed := s.rand.Int63()
	if err := s.resetBoard(rand.New(rand.NewSource(seed)), seed); err != nil {
		return err
	}
	s.paused = paused && s.opts.Director != nil
	return nil
}

func (s *GameState) onGameEnd(board *game.Board) {
	now := s.opts.Now()
	log := s.log.WithFields(logrus.Fields{
		"outcome": board.State(),
		"seed":    board.Seed(),
	})
	log.Info("Game over")

	if s.opts.Recorder != nil {
		_, err := s.opts.Recorder.RecordResult(storage.Result{
			PlayedAt: now,
			Width:    board.Width(),
			Height:   board.Height(),
			Mines:    board.NumMines(),
			Mode:     board.Mode().String(),
			Seed:     board.Seed(),
			Outcome:  board.State().String(),
			Duration: now.Sub(s.startedAt),
		})
		if err != nil {
			log.WithError(err).Warn("Could not record result")
		}
	}

	if s.cfg.SnapshotsDir != "" {
		path, err := saveSnapshot(s.cfg.SnapshotsDir, board, now)
		if err != nil {
			log.WithError(err).Warn("Could not save snapshot")
		} else {
			log.WithField("path", path).Debug("Saved snapshot")
		}
	}
}

// Update lets the director play, if there is one. The game always blocks the
// states below it.
func (s *GameState) Update(ctx state.Context) (state.UpdateResult, error) {
	now := s.opts.Now()

	for s.annotations.Len() > 0 {
		oldest := s.annotations.Front()
		if oldest.frame == s.actFrame || now.Sub(oldest.shown) <= s.opts.AnnotationDuration {
			break
		}
		s.annotations.PopFront()
	}

	if s.opts.Director != nil && !s.paused && s.board.CanPlay() &&
		now.Sub(s.lastAct) >= s.cfg.DirectorInterval {
		s.lastAct = now
		s.directorAct(now)
	}

	return state.UpdateBlock, nil
}

func (s *GameState) directorAct(now time.Time) {
	action, ok := s.opts.Director.Act()
	if !ok {
		return
	}
	s.actFrame++
	s.annotations.PushBack(annotation{
		cell:   action.Cell,
		action: action.Action,
		shown:  now,
		frame:  s.actFrame,
	})
	s.board.Apply(action)
}

// cellAt maps a window position to the index of the cell under it, or -1.
func (s *GameState) cellAt(pos pixel.Vec) int {
	size := s.cfg.SquarePixelSize
	col := int(math.Floor(pos.X / size))
	row := s.board.Height() - 1 - int(math.Floor(pos.Y/size))
	if cell := s.board.CellAt(col, row); cell != nil {
		return cell.Index()
	}
	return -1
}

func (s *GameState) MouseMotion(ctx state.Context, ev state.MouseMotionEvent) (state.EventResult, error) {
	s.hover = s.cellAt(ev.Pos)
	return state.Block, nil
}

func (s *GameState) MouseButtonDown(ctx state.Context, ev state.MouseButtonEvent) (state.EventResult, error) {
	s.hover = s.cellAt(ev.Pos)
	if s.hover >= 0 {
		s.press = &press{button: ev.Button, index: s.hover}
	} else {
		s.press = nil
	}
	return state.Block, nil
}

// MouseButtonUp acts on a cell when the button is released over the cell it
// was pressed on.
func (s *GameState) MouseButtonUp(ctx state.Context, ev state.MouseButtonEvent) (state.EventResult, error) {
	pressed := s.press
	s.press = nil

	index := s.cellAt(ev.Pos)
	if pressed == nil || pressed.button != ev.Button || pressed.index != index {
		return state.Block, nil
	}

	cell := s.board.CellAtIndex(index)
	switch ev.Button {
	case state.MouseButtonLeft:
		s.board.Apply(cell.Click())
	case state.MouseButtonRight:
		s.board.Apply(cell.RightClick())
	case state.MouseButtonMiddle:
		s.board.Apply(cell.MiddleClick())
	}
	return state.Block, nil
}

func (s *GameState) KeyUp(ctx state.Context, ev state.KeyEvent) (state.EventResult, error) {
	if s.board.CanPlay() {
		switch {
		// Pause the director with Space
		case ev.Key == state.KeySpace && s.opts.Director != nil:
			s.paused = !s.paused
		// Single step while paused with Right Arrow
		case ev.Key == state.KeyRight && s.paused:
			s.directorAct(s.opts.Now())
		case ev.Key == state.KeyN && ev.Mods.Has(state.ModCtrl):
			return state.Block, s.newGame(false)
		}
		return state.Block, nil
	}

	switch ev.Key {
	// Start a new game with Enter
	case state.KeyReturn:
		return state.Block, s.newGame(false)
	// Start a new, paused game with Space or Right Arrow
	case state.KeySpace, state.KeyRight:
		return state.Block, s.newGame(true)
	}
	return state.Block, nil
}

var numberColors = [9]pixel.RGBA{
	pixel.ToRGBA(colornames.Black),
	pixel.ToRGBA(colornames.Blue),
	pixel.ToRGBA(colornames.Green),
	pixel.ToRGBA(colornames.Red),
	pixel.ToRGBA(colornames.Navy),
	pixel.ToRGBA(colornames.Maroon),
	pixel.ToRGBA(colornames.Darkcyan),
	pixel.ToRGBA(colornames.Black),
	pixel.ToRGBA(colornames.Gray),
}

func (s *GameState) cellColor(cell *game.Cell) pixel.RGBA {
	colors := s.cfg.Colors
	switch cell.State() {
	case game.Unrevealed, game.Flag:
		if cell.Index() == s.hover && s.board.CanPlay() {
			return colors.SelectedSquare.RGBA()
		}
		return colors.Square.RGBA()
	case game.Mine, game.MineUnrevealed, game.MineLosing, game.FlagWrong:
		return colors.MineSquare.RGBA()
	default:
		return pixel.ToRGBA(colornames.Lightgray)
	}
}

// cellRect is the area of a cell in window coordinates.
func (s *GameState) cellRect(cell *game.Cell) pixel.Rect {
	size := s.cfg.SquarePixelSize
	min := pixel.V(float64(cell.X())*size, float64(s.board.Height()-1-cell.Y())*size)
	return pixel.Rect{Min: min, Max: min.Add(pixel.V(size, size))}
}

func (s *GameState) Draw(ctx state.Context) error {
	imd := imdraw.New(nil)
	numbers := text.New(pixel.ZV, s.atlas)
	half := pixel.V(s.atlas.Glyph('0').Advance/2, s.atlas.LineHeight()/3)

	for _, cell := range s.board.Cells() {
		rect := s.cellRect(cell)
		inner := rect.Resized(rect.Center(), rect.Size().Sub(pixel.V(2, 2)))

		imd.Color = s.cellColor(cell)
		imd.Push(inner.Min, inner.Max)
		imd.Rectangle(0)

		switch cellState := cell.State(); {
		case cellState == game.Flag || cellState == game.FlagWrong:
			flag := inner.Resized(inner.Center(), inner.Size().Scaled(0.4))
			imd.Color = colornames.Orange
			imd.Push(flag.Min, flag.Max)
			imd.Rectangle(0)
		case cellState.IsOpen() && cellState != game.Empty:
			numbers.Dot = rect.Center().Sub(half)
			numbers.Color = numberColors[cell.NumMines()]
			fmt.Fprint(numbers, cell.NumMines())
		}
	}

	s.drawAnnotations(imd)

	imd.Draw(ctx)
	numbers.Draw(ctx, pixel.IM)
	s.drawHeader(ctx)
	return nil
}

func (s *GameState) drawHeader(t pixel.Target) {
	top := float64(s.board.Height())*s.cfg.SquarePixelSize + headerHeight

	score := text.New(pixel.V(20, top-30), s.atlas)
	score.Color = colornames.Black
	fmt.Fprintf(score, "%03d", s.board.NumMines()-s.board.NumFlags())

	switch s.board.State() {
	case game.Won:
		score.Color = colornames.Green
		fmt.Fprint(score, "   WIN!")
	case game.Lost:
		score.Color = colornames.Red
		fmt.Fprint(score, "   LOSE :(")
	default:
		if s.paused {
			fmt.Fprint(score, "   PAUSED")
		}
	}
	score.Draw(t, pixel.IM)

	if cell := s.board.CellAtIndex(s.hover); cell != nil {
		width := s.WindowSize().X
		pos := text.New(pixel.V(width-60, top-30), s.atlas)
		pos.Color = colornames.Darkcyan
		fmt.Fprintf(pos, "(%d, %d)", cell.X(), cell.Y())
		pos.Draw(t, pixel.IM)
	}
}
