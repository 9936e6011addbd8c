package states

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/faiface/pixel"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/hanak0/ggsweep/config"
	"github.com/hanak0/ggsweep/errs"
	"github.com/hanak0/ggsweep/state"
)

// Phase is the progress of the asset pipeline.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseDraw
	PhaseShow
	PhaseSave
	PhaseDone
)

func (phase Phase) String() string {
	switch phase {
	case PhaseSetup:
		return "setup"
	case PhaseDraw:
		return "draw"
	case PhaseShow:
		return "show"
	case PhaseSave:
		return "save"
	case PhaseDone:
		return "done"
	default:
		return "Phase(" + strconv.Itoa(int(phase)) + ")"
	}
}

// Digits are laid out in a 3x3 grid of squares
const digitColumns = 3

// BuiltinFont can be used as font_path to render with the Go Regular font.
const BuiltinFont = "builtin:goregular"

type PipelineOptions struct {
	// Output paths are resolved against Resources
	Resources config.Resources
	// Save without waiting for the user to confirm the preview
	AutoConfirm bool

	Log logrus.FieldLogger
	Now func() time.Time
}

// PipelineState renders the digit sheet used by the game: the digits 0 to 8,
// each centred in a square of the game's square size. Once drawn the sheet is
// shown until the user saves it with Return or discards it with Escape.
type PipelineState struct {
	state.Opaque

	cfg     config.PipelineConfig
	game    config.GameConfig
	font    *opentype.Font
	opts    PipelineOptions
	log     logrus.FieldLogger
	started time.Time

	phase   Phase
	face    font.Face
	canvas  *image.RGBA
	preview *pixel.Sprite
}

// LoadPipeline reads the pipeline config in name, the game config and font it
// refers to.
func LoadPipeline(name string, opts PipelineOptions) (*PipelineState, error) {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	log := opts.Log
	log.WithField("path", name).Info("Pipeline load started")
	start := opts.Now()

	res := opts.Resources
	cfg, err := res.LoadPipeline(name)
	if err != nil {
		return nil, err
	}
	gameConfig, err := res.LoadGame(cfg.GameConfigPath)
	if err != nil {
		return nil, err
	}
	fontData := goregular.TTF
	if cfg.FontPath != BuiltinFont {
		fontData, err = res.ReadFile(cfg.FontPath)
		if err != nil {
			return nil, err
		}
	}
	fnt, err := opentype.Parse(fontData)
	if err != nil {
		return nil, errs.Wrapf(errs.Resource, err, "parse font %s", cfg.FontPath)
	}

	log.WithField("duration", opts.Now().Sub(start)).Info("Loaded pipeline")
	return NewPipeline(cfg, gameConfig, fnt, opts), nil
}

func NewPipeline(cfg config.PipelineConfig, gameConfig config.GameConfig, fnt *opentype.Font, opts PipelineOptions) *PipelineState {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &PipelineState{
		cfg:   cfg,
		game:  gameConfig,
		font:  fnt,
		opts:  opts,
		log:   opts.Log.WithField("state", "pipeline"),
		phase: PhaseSetup,
	}
}

func (s *PipelineState) String() string {
	return "PipelineState"
}

func (s *PipelineState) Phase() Phase {
	return s.phase
}

// Canvas is the rendered digit sheet, nil before setup.
func (s *PipelineState) Canvas() *image.RGBA {
	return s.canvas
}

// OutputPath is where the digit sheet is saved.
func (s *PipelineState) OutputPath() string {
	return s.opts.Resources.Path(s.cfg.OutputTargetPath)
}

func (s *PipelineState) setPhase(phase Phase) {
	s.log.WithFields(logrus.Fields{
		"phase": phase,
		"from":  s.phase,
	}).Info("Pipeline phase")
	s.phase = phase
}

func (s *PipelineState) Update(ctx state.Context) (state.UpdateResult, error) {
	switch s.phase {
	case PhaseSetup:
		if err := s.setup(); err != nil {
			return state.UpdateBlock, err
		}
		s.setPhase(PhaseDraw)

	case PhaseDraw:
		if err := s.drawDigits(); err != nil {
			return state.UpdateBlock, err
		}
		s.setPhase(PhaseShow)

	case PhaseShow:
		if s.canvas == nil {
			return state.UpdateBlock, errs.New(errs.Logic, "pipeline reached show without a canvas")
		}
		if s.opts.AutoConfirm {
			s.setPhase(PhaseSave)
		}

	case PhaseSave:
		if err := s.save(); err != nil {
			return state.UpdateBlock, err
		}
		s.setPhase(PhaseDone)

	case PhaseDone:
		s.log.WithField("duration", s.opts.Now().Sub(s.started)).Info("Pipeline done")
		return state.UpdatePop, nil
	}

	return state.UpdateBlock, nil
}

func (s *PipelineState) setup() error {
	s.log.Info("Pipeline started")
	s.started = s.opts.Now()

	face, err := opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    s.cfg.TextPointSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return errs.Wrap(errs.Resource, err, "create font face")
	}
	s.face = face

	size := int(s.game.SquarePixelSize) * digitColumns
	s.log.WithField("size", size).Info("Creating canvas")
	s.canvas = image.NewRGBA(image.Rect(0, 0, size, size))
	return nil
}

// drawDigits renders the digits 0 to 8 into the canvas, row by row from the
// top-left square.
func (s *PipelineState) drawDigits() error {
	if s.canvas == nil || s.face == nil {
		return errs.New(errs.Logic, "pipeline entered draw without a canvas")
	}

	square := fixed.I(int(s.game.SquarePixelSize))
	metrics := s.face.Metrics()
	drawer := &font.Drawer{
		Dst:  s.canvas,
		Src:  image.NewUniform(color.White),
		Face: s.face,
	}

	for i := 0; i < digitColumns*digitColumns; i++ {
		digit := strconv.Itoa(i)
		centerX := square*fixed.Int26_6(i%digitColumns) + square/2
		centerY := square*fixed.Int26_6(i/digitColumns) + square/2

		drawer.Dot = fixed.Point26_6{
			X: centerX - drawer.MeasureString(digit)/2,
			Y: centerY + (metrics.Ascent-metrics.Descent)/2,
		}
		drawer.DrawString(digit)
	}

	s.preview = pixel.NewSprite(pixel.PictureDataFromImage(s.canvas), pixel.R(0, 0, float64(s.canvas.Rect.Dx()), float64(s.canvas.Rect.Dy())))
	return nil
}

func (s *PipelineState) save() error {
	if s.canvas == nil {
		return errs.New(errs.Logic, "pipeline reached save without a canvas")
	}

	path := s.OutputPath()
	s.log.WithField("path", path).Info("Rendering digit sheet")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errs.Wrapf(errs.Resource, err, "create directory for %s", path)
	}
	file, err := os.Create(path)
	if err != nil {
		return errs.Wrapf(errs.Resource, err, "create %s", path)
	}

	if err := png.Encode(file, s.canvas); err != nil {
		file.Close()
		return errs.Wrapf(errs.Rendering, err, "encode %s", path)
	}
	return errs.Wrapf(errs.Resource, file.Close(), "close %s", path)
}

// Draw previews the digit sheet in the middle of the window while it waits
// for confirmation.
func (s *PipelineState) Draw(ctx state.Context) error {
	if s.phase != PhaseShow && s.phase != PhaseSave {
		return nil
	}
	if s.preview == nil {
		return errs.Errorf(errs.Logic, "pipeline in %s without a canvas", s.phase)
	}

	s.preview.Draw(ctx, pixel.IM.Moved(ctx.Bounds().Center()))
	return nil
}

// KeyUp confirms the preview with Return, or discards it with Escape.
func (s *PipelineState) KeyUp(ctx state.Context, ev state.KeyEvent) (state.EventResult, error) {
	if s.phase != PhaseShow {
		return state.Block, nil
	}

	switch ev.Key {
	case state.KeyReturn:
		s.setPhase(PhaseSave)
	case state.KeyEscape:
		s.log.Info("Digit sheet discarded")
		s.setPhase(PhaseDone)
	}
	return state.Block, nil
}
