package cmd

import (
	"os"

	"github.com/faiface/pixel/pixelgl"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hanak0/ggsweep/config"
	"github.com/hanak0/ggsweep/errs"
	"github.com/hanak0/ggsweep/host"
	"github.com/hanak0/ggsweep/state"
)

var log = logrus.New()

var (
	resourceDir  string
	logLevel     string
	dbPath       string
	snapshotsDir string
)

var rootCmd = &cobra.Command{
	Use:   "ggsweep",
	Short: "Play manual or computer-driven Minesweeper",
	Long: `ggsweep is a Minesweeper game which supports human- or
computer-driven playing.

Run with no arguments to play manually
	ggsweep

Use the director flag to make the computer play for you
	ggsweep -director

Render the digit sheet used by the game
	ggsweep pipeline

Show the latest results
	ggsweep scores
`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runPlay,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.WithField("kind", errs.KindOf(err)).Error(err)
		log.Debugf("%+v", err)
		os.Exit(1)
	}
}

// setup fills the flags left unset from the environment and configures
// logging.
func setup(cmd *cobra.Command, args []string) error {
	env, err := config.ParseEnv()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	fromEnv := func(name string, value *string, envValue string) {
		if flags.Lookup(name) != nil && !flags.Changed(name) {
			*value = envValue
		}
	}
	fromEnv("resources", &resourceDir, env.ResourceDir)
	fromEnv("log-level", &logLevel, env.LogLevel)
	fromEnv("db", &dbPath, env.DBPath)
	fromEnv("snapshots", &snapshotsDir, env.SnapshotsDir)

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return errs.Wrap(errs.Config, err, "log level")
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	log.WithFields(logrus.Fields{
		"resources": resourceDir,
		"db":        dbPath,
	}).Debug("Configured")
	return nil
}

func resources() config.Resources {
	return config.Resources{Root: resourceDir}
}

// runWindow drives stack in a window on the main thread.
func runWindow(stack *state.Stack, cfg host.Config) error {
	var err error
	pixelgl.Run(func() {
		err = host.Run(stack, cfg, log)
	})
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&resourceDir, "resources", "resources", "Directory holding configs and assets [GGSWEEP_RESOURCES]")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error [GGSWEEP_LOG_LEVEL]")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "~/.ggsweep/results.db", "Path to the results database [GGSWEEP_DB]")

	rootCmd.AddCommand(pipelineCmd)
	rootCmd.AddCommand(scoresCmd)

	initPlayFlags()
}
