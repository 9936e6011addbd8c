// Package config holds the YAML configuration of the game and the asset
// pipeline, and the environment the binaries run in.
package config

import (
	"time"

	"github.com/faiface/pixel"
	"gopkg.in/yaml.v2"

	"github.com/hanak0/ggsweep/errs"
)

// RGB is a colour written as a flow sequence, e.g. [38, 38, 38].
type RGB [3]uint8

func (c RGB) RGBA() pixel.RGBA {
	return pixel.RGB(float64(c[0])/255, float64(c[1])/255, float64(c[2])/255)
}

type Colors struct {
	Square         RGB `yaml:"square,flow"`
	SelectedSquare RGB `yaml:"selected_square,flow"`
	MineSquare     RGB `yaml:"mine_square,flow"`
}

const (
	ModeClassic = "classic"
	ModeWin7    = "win7"
)

type GameConfig struct {
	GridWidth       int     `yaml:"grid_width"`
	GridHeight      int     `yaml:"grid_height"`
	MineCount       int     `yaml:"mine_count"`
	SquarePixelSize float64 `yaml:"square_pixel_size"`
	Colors          Colors  `yaml:"colors"`

	// Mode controls the first click: classic only keeps the clicked cell
	// free of mines, win7 also clears its neighbours.
	Mode string `yaml:"mode,omitempty"`
	// Seed for mine placement. Zero picks a random seed.
	Seed int64 `yaml:"seed,omitempty"`
	// Directory where a snapshot of every finished board is written.
	SnapshotsDir string `yaml:"snapshots_dir,omitempty"`
	// Delay between moves when the computer plays.
	DirectorInterval time.Duration `yaml:"director_interval,omitempty"`
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		GridWidth:       30,
		GridHeight:      16,
		MineCount:       99,
		SquarePixelSize: 32,
		Colors: Colors{
			Square:         RGB{0, 102, 255},
			SelectedSquare: RGB{102, 170, 255},
			MineSquare:     RGB{220, 40, 40},
		},
		Mode:             ModeClassic,
		DirectorInterval: 200 * time.Millisecond,
	}
}

func (cfg GameConfig) Validate() error {
	switch {
	case cfg.GridWidth <= 0 || cfg.GridHeight <= 0:
		return errs.Errorf(errs.Config, "grid must be at least 1x1, got %dx%d", cfg.GridWidth, cfg.GridHeight)
	case cfg.MineCount < 0:
		return errs.Errorf(errs.Config, "mine_count must not be negative, got %d", cfg.MineCount)
	case cfg.MineCount >= cfg.GridWidth*cfg.GridHeight:
		return errs.Errorf(errs.Config, "%d mines do not fit in a %dx%d grid", cfg.MineCount, cfg.GridWidth, cfg.GridHeight)
	case cfg.SquarePixelSize <= 0:
		return errs.Errorf(errs.Config, "square_pixel_size must be positive, got %v", cfg.SquarePixelSize)
	case cfg.Mode != "" && cfg.Mode != ModeClassic && cfg.Mode != ModeWin7:
		return errs.Errorf(errs.Config, "unknown mode %q", cfg.Mode)
	case cfg.DirectorInterval < 0:
		return errs.Errorf(errs.Config, "director_interval must not be negative, got %v", cfg.DirectorInterval)
	}
	return nil
}

// ParseGame decodes a game config. Fields missing from data keep their
// default values.
func ParseGame(data []byte) (GameConfig, error) {
	cfg := DefaultGameConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errs.Wrap(errs.Config, err, "parse game config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// PipelineConfig drives the asset pipeline that renders the digit sheet.
type PipelineConfig struct {
	FontPath         string  `yaml:"font_path"`
	OutputTargetPath string  `yaml:"output_target_path"`
	TextPointSize    float64 `yaml:"text_point_size"`
	GameConfigPath   string  `yaml:"game_config_path"`
}

func (cfg PipelineConfig) Validate() error {
	switch {
	case cfg.FontPath == "":
		return errs.New(errs.Config, "font_path is required")
	case cfg.OutputTargetPath == "":
		return errs.New(errs.Config, "output_target_path is required")
	case cfg.GameConfigPath == "":
		return errs.New(errs.Config, "game_config_path is required")
	case cfg.TextPointSize <= 0:
		return errs.Errorf(errs.Config, "text_point_size must be positive, got %v", cfg.TextPointSize)
	}
	return nil
}

func ParsePipeline(data []byte) (PipelineConfig, error) {
	var cfg PipelineConfig
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errs.Wrap(errs.Config, err, "parse pipeline config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
