package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/hanak0/ggsweep/errs"
)

// Resources resolves asset names against a root directory. Names use forward
// slashes and may start with one, e.g. "/Ui/Spritesheet/colored_sheet.yaml".
type Resources struct {
	Root string
}

func (res Resources) Path(name string) string {
	return filepath.Join(res.Root, filepath.FromSlash(strings.TrimPrefix(name, "/")))
}

func (res Resources) Open(name string) (*os.File, error) {
	file, err := os.Open(res.Path(name))
	if err != nil {
		return nil, errs.Wrapf(errs.Resource, err, "open resource %s", name)
	}
	return file, nil
}

func (res Resources) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(res.Path(name))
	if err != nil {
		return nil, errs.Wrapf(errs.Resource, err, "read resource %s", name)
	}
	return data, nil
}

func (res Resources) LoadGame(name string) (GameConfig, error) {
	data, err := res.ReadFile(name)
	if err != nil {
		return GameConfig{}, err
	}
	cfg, err := ParseGame(data)
	if err != nil {
		return cfg, errors.Wrapf(err, "in %s", name)
	}
	return cfg, nil
}

func (res Resources) LoadPipeline(name string) (PipelineConfig, error) {
	data, err := res.ReadFile(name)
	if err != nil {
		return PipelineConfig{}, err
	}
	cfg, err := ParsePipeline(data)
	if err != nil {
		return cfg, errors.Wrapf(err, "in %s", name)
	}
	return cfg, nil
}
