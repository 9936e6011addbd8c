package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/hanak0/ggsweep/errs"
)

// Env is the configuration read from the environment. Command-line flags take
// precedence over it.
type Env struct {
	ResourceDir  string `env:"GGSWEEP_RESOURCES" envDefault:"resources"`
	LogLevel     string `env:"GGSWEEP_LOG_LEVEL" envDefault:"info"`
	DBPath       string `env:"GGSWEEP_DB" envDefault:"~/.ggsweep/results.db"`
	SnapshotsDir string `env:"GGSWEEP_SNAPSHOTS"`
}

func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, errs.Wrap(errs.Config, err, "parse env")
	}
	return e, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errs.Wrap(errs.Config, err, "cannot expand home directory")
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
