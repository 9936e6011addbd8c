package states

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/hanak0/ggsweep/config"
	"github.com/hanak0/ggsweep/errs"
	"github.com/hanak0/ggsweep/state"
	"github.com/hanak0/ggsweep/state/statetest"
)

const (
	pipelineYAML = `
font_path: /fonts/goregular.ttf
output_target_path: /out/numbers.png
text_point_size: 20
game_config_path: /config.yaml
`
	pipelineGameYAML = `
grid_width: 9
grid_height: 9
mine_count: 10
square_pixel_size: 32
`
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

func pipelineResources(t *testing.T) config.Resources {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "GenConfig.yaml"), []byte(pipelineYAML))
	writeFile(t, filepath.Join(dir, "config.yaml"), []byte(pipelineGameYAML))
	writeFile(t, filepath.Join(dir, "fonts", "goregular.ttf"), goregular.TTF)
	return config.Resources{Root: dir}
}

func loadTestPipeline(t *testing.T, autoConfirm bool) (*PipelineState, config.Resources) {
	t.Helper()
	res := pipelineResources(t)
	log, _ := test.NewNullLogger()

	s, err := LoadPipeline("/GenConfig.yaml", PipelineOptions{Resources: res, AutoConfirm: autoConfirm, Log: log})
	if err != nil {
		t.Fatalf("LoadPipeline() failed: %v", err)
	}
	return s, res
}

func update(t *testing.T, s *PipelineState, want state.UpdateResult) {
	t.Helper()
	res, err := s.Update(statetest.NewContext(320, 240))
	if err != nil {
		t.Fatalf("Update() in %v failed: %v", s.Phase(), err)
	}
	if res != want {
		t.Fatalf("Update() = %v, want %v", res, want)
	}
}

func TestPipelinePhases(t *testing.T) {
	s, res := loadTestPipeline(t, false)
	ctx := statetest.NewContext(320, 240)

	if s.Phase() != PhaseSetup {
		t.Fatalf("Phase() = %v, want setup", s.Phase())
	}
	update(t, s, state.UpdateBlock)
	if s.Phase() != PhaseDraw || s.Canvas() == nil {
		t.Fatalf("after setup: phase %v, canvas %v", s.Phase(), s.Canvas() != nil)
	}
	if got := s.Canvas().Bounds(); got != image.Rect(0, 0, 96, 96) {
		t.Errorf("canvas bounds = %v, want 96x96", got)
	}

	update(t, s, state.UpdateBlock)
	if s.Phase() != PhaseShow {
		t.Fatalf("Phase() = %v, want show", s.Phase())
	}

	// Nothing happens until the user confirms
	update(t, s, state.UpdateBlock)
	if s.Phase() != PhaseShow {
		t.Fatalf("Phase() = %v, want show", s.Phase())
	}

	if err := s.Draw(ctx); err != nil {
		t.Fatalf("Draw() failed: %v", err)
	}
	if ctx.Draws != 1 {
		t.Errorf("preview made %d draw calls, want 1", ctx.Draws)
	}

	if r, _ := s.KeyUp(ctx, state.KeyEvent{Key: state.KeyReturn}); r != state.Block {
		t.Errorf("KeyUp() = %v", r)
	}
	if s.Phase() != PhaseSave {
		t.Fatalf("Phase() = %v, want save", s.Phase())
	}
	if _, err := os.Stat(res.Path("/out/numbers.png")); !os.IsNotExist(err) {
		t.Fatalf("digit sheet written before the save phase")
	}

	update(t, s, state.UpdateBlock)
	if s.Phase() != PhaseDone {
		t.Fatalf("Phase() = %v, want done", s.Phase())
	}
	update(t, s, state.UpdatePop)

	file, err := os.Open(s.OutputPath())
	if err != nil {
		t.Fatalf("digit sheet not written: %v", err)
	}
	defer file.Close()
	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("png.Decode() failed: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 96, 96) {
		t.Errorf("digit sheet bounds = %v", img.Bounds())
	}

	// Every square holds a digit
	for i := 0; i < 9; i++ {
		square := image.Rect(i%3*32, i/3*32, i%3*32+32, i/3*32+32)
		if !hasInk(img, square) {
			t.Errorf("square %d is empty", i)
		}
	}
}

func hasInk(img image.Image, rect image.Rectangle) bool {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a > 0 {
				return true
			}
		}
	}
	return false
}

func TestPipelineEscapeDiscards(t *testing.T) {
	s, _ := loadTestPipeline(t, false)
	ctx := statetest.NewContext(320, 240)

	update(t, s, state.UpdateBlock)
	update(t, s, state.UpdateBlock)
	s.KeyUp(ctx, state.KeyEvent{Key: state.KeyEscape})
	if s.Phase() != PhaseDone {
		t.Fatalf("Phase() = %v, want done", s.Phase())
	}
	update(t, s, state.UpdatePop)

	if _, err := os.Stat(s.OutputPath()); !os.IsNotExist(err) {
		t.Errorf("discarded digit sheet was saved")
	}
}

func TestPipelineAutoConfirm(t *testing.T) {
	s, _ := loadTestPipeline(t, true)
	stack := state.NewStack(s, nil)
	ctx := statetest.NewContext(320, 240)

	for i := 0; i < 10 && !stack.Done(); i++ {
		if err := stack.Update(ctx); err != nil {
			t.Fatalf("Update() failed: %v", err)
		}
	}
	if !stack.Done() {
		t.Fatalf("pipeline did not finish, stuck in %v", s.Phase())
	}
	if _, err := os.Stat(s.OutputPath()); err != nil {
		t.Errorf("digit sheet not saved: %v", err)
	}
}

func TestPipelineKeysIgnoredOutsideShow(t *testing.T) {
	s, _ := loadTestPipeline(t, false)
	s.KeyUp(statetest.NewContext(320, 240), state.KeyEvent{Key: state.KeyEscape})
	if s.Phase() != PhaseSetup {
		t.Errorf("Escape during setup moved to %v", s.Phase())
	}
}

func TestPipelineWithoutCanvas(t *testing.T) {
	s, _ := loadTestPipeline(t, false)
	ctx := statetest.NewContext(320, 240)

	for _, phase := range []Phase{PhaseShow, PhaseSave} {
		s.phase = phase
		if _, err := s.Update(ctx); !errs.Is(err, errs.Logic) {
			t.Errorf("Update() in %v error = %v, want logic error", phase, err)
		}
		if err := s.Draw(ctx); !errs.Is(err, errs.Logic) {
			t.Errorf("Draw() in %v error = %v, want logic error", phase, err)
		}
	}

	s.phase = PhaseDraw
	if _, err := s.Update(ctx); !errs.Is(err, errs.Logic) {
		t.Errorf("Update() in draw error = %v, want logic error", err)
	}
}

func TestLoadPipelineErrors(t *testing.T) {
	log, _ := test.NewNullLogger()

	res := pipelineResources(t)
	writeFile(t, res.Path("/fonts/goregular.ttf"), []byte("not a font"))
	if _, err := LoadPipeline("/GenConfig.yaml", PipelineOptions{Resources: res, Log: log}); !errs.Is(err, errs.Resource) {
		t.Errorf("bad font: error = %v, want resource error", err)
	}

	res = pipelineResources(t)
	writeFile(t, res.Path("/GenConfig.yaml"), []byte("font_path: x\n"))
	if _, err := LoadPipeline("/GenConfig.yaml", PipelineOptions{Resources: res, Log: log}); !errs.Is(err, errs.Config) {
		t.Errorf("bad config: error = %v, want config error", err)
	}

	if _, err := LoadPipeline("/missing.yaml", PipelineOptions{Resources: res, Log: log}); !errs.Is(err, errs.Resource) {
		t.Errorf("missing config: error = %v, want resource error", err)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseShow.String() != "show" || Phase(42).String() != "Phase(42)" {
		t.Errorf("Phase names = %v, %v", PhaseShow, Phase(42))
	}
}

func TestPipelineBuiltinFont(t *testing.T) {
	res := pipelineResources(t)
	writeFile(t, res.Path("/GenConfig.yaml"), []byte(`
font_path: builtin:goregular
output_target_path: /numbers.png
text_point_size: 16
game_config_path: /config.yaml
`))
	log, _ := test.NewNullLogger()

	s, err := LoadPipeline("/GenConfig.yaml", PipelineOptions{Resources: res, AutoConfirm: true, Log: log})
	if err != nil {
		t.Fatalf("LoadPipeline() failed: %v", err)
	}
	for s.Phase() != PhaseDone {
		update(t, s, state.UpdateBlock)
	}
	if _, err := os.Stat(res.Path("/numbers.png")); err != nil {
		t.Errorf("digit sheet not saved: %v", err)
	}
}

func TestPipelineTimingUsesClock(t *testing.T) {
	res := pipelineResources(t)
	log, hook := test.NewNullLogger()

	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	s, err := LoadPipeline("/GenConfig.yaml", PipelineOptions{Resources: res, AutoConfirm: true, Log: log, Now: clock})
	if err != nil {
		t.Fatalf("LoadPipeline() failed: %v", err)
	}

	loaded := hook.LastEntry()
	if loaded.Message != "Loaded pipeline" || loaded.Data["duration"] != time.Second {
		t.Errorf("load logged %q with duration %v, want 1s", loaded.Message, loaded.Data["duration"])
	}

	for s.Phase() != PhaseDone {
		update(t, s, state.UpdateBlock)
	}
	update(t, s, state.UpdatePop)

	done := hook.LastEntry()
	if done.Message != "Pipeline done" {
		t.Fatalf("last entry = %q, want the done message", done.Message)
	}
	if d, ok := done.Data["duration"].(time.Duration); !ok || d <= 0 || d%time.Second != 0 {
		t.Errorf("pipeline duration = %v, want whole seconds from the clock", done.Data["duration"])
	}
}
