package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/image/colornames"

	"github.com/hanak0/ggsweep/config"
	"github.com/hanak0/ggsweep/director/constraint"
	"github.com/hanak0/ggsweep/director/random"
	"github.com/hanak0/ggsweep/errs"
	"github.com/hanak0/ggsweep/game"
	"github.com/hanak0/ggsweep/host"
	"github.com/hanak0/ggsweep/state"
	"github.com/hanak0/ggsweep/states"
	"github.com/hanak0/ggsweep/storage"
)

var (
	gameConfig     = config.DefaultGameConfig()
	gameMode       = game.Classic
	gameConfigPath string
	snapshotPath   string
	snapshotFresh  bool
	directorName   string
	showMenu       bool
)

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadGameConfig(cmd)
	if err != nil {
		return err
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	opts := states.GameOptions{
		Config:        cfg,
		Rand:          rng,
		SnapshotFresh: snapshotFresh,
		Log:           log,
	}

	if directorName != "" {
		opts.Director = directors[directorName](rand.New(rand.NewSource(rng.Int63())))
	}

	if snapshotPath != "" {
		data, err := os.ReadFile(snapshotPath)
		if err != nil {
			return errs.Wrapf(errs.Resource, err, "read snapshot %s", snapshotPath)
		}
		if opts.Snapshot, err = game.LoadSnapshot(string(data)); err != nil {
			return err
		}
	}

	if store, err := storage.Open(dbPath); err != nil {
		log.WithError(err).Warn("Results will not be recorded")
	} else {
		defer store.Close()
		opts.Recorder = store
	}

	gameState, err := states.NewGame(opts)
	if err != nil {
		return err
	}

	stack := state.NewStack(gameState, colornames.Gainsboro, state.WithLogger(log))
	if showMenu {
		menu, err := states.NewMainMenu(resources(), log)
		if err != nil {
			return err
		}
		stack.Push(menu)
	}

	return runWindow(stack, host.Config{
		Title:   "ggsweep",
		Size:    gameState.WindowSize(),
		VSync:   true,
		ShowFPS: true,
	})
}

// loadGameConfig reads the game config, if there is one, and applies the
// flags given on the command line over it.
func loadGameConfig(cmd *cobra.Command) (config.GameConfig, error) {
	flags := cmd.Flags()

	cfg := config.DefaultGameConfig()
	if _, err := os.Stat(resources().Path(gameConfigPath)); err == nil || flags.Changed("config") {
		if cfg, err = resources().LoadGame(gameConfigPath); err != nil {
			return cfg, err
		}
	}

	if flags.Changed("width") {
		cfg.GridWidth = gameConfig.GridWidth
	}
	if flags.Changed("height") {
		cfg.GridHeight = gameConfig.GridHeight
	}
	if flags.Changed("mines") {
		cfg.MineCount = gameConfig.MineCount
	}
	if flags.Changed("mode") {
		cfg.Mode = gameMode.String()
	}
	if flags.Changed("seed") {
		cfg.Seed = gameConfig.Seed
	}
	if flags.Changed("interval") {
		cfg.DirectorInterval = gameConfig.DirectorInterval
	}
	if snapshotsDir != "" {
		cfg.SnapshotsDir = snapshotsDir
	}

	return cfg, cfg.Validate()
}

type gameModeValue game.GameMode

var _ pflag.Value = (*gameModeValue)(nil)

func newGameModeValue(val game.GameMode, p *game.GameMode) *gameModeValue {
	*p = val
	return (*gameModeValue)(p)
}

func (modeVal *gameModeValue) String() string {
	return game.GameMode(*modeVal).String()
}

func (modeVal *gameModeValue) Set(value string) error {
	mode, isValid := game.GameModes[value]
	if !isValid {
		return fmt.Errorf("invalid game mode %q", value)
	}
	*modeVal = gameModeValue(mode)
	return nil
}

func (modeVal *gameModeValue) Type() string {
	return "game.GameMode"
}

var directors = map[string]func(rng *rand.Rand) game.Director{
	"constraint": func(rng *rand.Rand) game.Director { return constraint.New(rng) },
	"random":     func(rng *rand.Rand) game.Director { return random.New(rng) },
}

// directorValue names one of directors, or none when empty.
type directorValue string

var _ pflag.Value = (*directorValue)(nil)

func newDirectorValue(val string, p *string) *directorValue {
	*p = val
	return (*directorValue)(p)
}

func (dirVal *directorValue) String() string {
	return string(*dirVal)
}

func (dirVal *directorValue) Set(value string) error {
	if _, isValid := directors[value]; !isValid && value != "" {
		return fmt.Errorf("invalid director %q", value)
	}
	*dirVal = directorValue(value)
	return nil
}

func (dirVal *directorValue) Type() string {
	return "director"
}

func initPlayFlags() {
	// Define our root -help without a shorthand, as we'll use -h for --height
	// Ref: https://github.com/spf13/cobra/issues/291
	rootCmd.Flags().Bool("help", false, "Help for this command")

	rootCmd.Flags().StringVarP(&gameConfigPath, "config", "c", "/config.yaml", "Game config, relative to the resources directory")
	rootCmd.Flags().IntVarP(&gameConfig.GridWidth, "width", "w", gameConfig.GridWidth, "Width of game board, in cells")
	rootCmd.Flags().IntVarP(&gameConfig.GridHeight, "height", "h", gameConfig.GridHeight, "Height of game board, in cells")
	rootCmd.Flags().IntVarP(&gameConfig.MineCount, "mines", "m", gameConfig.MineCount, "Number of mines to place in the game board")
	rootCmd.Flags().Var(newGameModeValue(game.Classic, &gameMode), "mode", `Game mode, controlling behaviour of first click.
win7: all cells surrounding the first-clicked cell are cleared of mines
classic: only the first-clicked cell is kept free of mines`)
	rootCmd.Flags().Int64Var(&gameConfig.Seed, "seed", 0, "Seed for mine placement (0 = random based on time)")
	directorFlag := rootCmd.Flags().VarPF(newDirectorValue("", &directorName), "director", "d", `Make the computer play.
constraint: deduce mines from the numbers, guessing only when stuck
random: click unrevealed cells in a random order`)
	directorFlag.NoOptDefVal = "constraint"
	rootCmd.Flags().DurationVar(&gameConfig.DirectorInterval, "interval", gameConfig.DirectorInterval, "Delay between moves of the computer")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "Board snapshot to play")
	rootCmd.Flags().BoolVar(&snapshotFresh, "fresh", true, "Start the snapshot with every cell unrevealed")
	rootCmd.Flags().StringVar(&snapshotsDir, "snapshots", "", "Directory to save a snapshot of every finished board in [GGSWEEP_SNAPSHOTS]")
	rootCmd.Flags().BoolVar(&showMenu, "menu", true, "Show the menu over the board at start")
}
