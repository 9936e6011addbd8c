package states

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hanak0/ggsweep/errs"
	"github.com/hanak0/ggsweep/game"
)

// saveSnapshot writes the final snapshot of board into dir and returns the
// path of the new file. Existing files are never overwritten.
func saveSnapshot(dir string, board *game.Board, t time.Time) (string, error) {
	stat, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return "", errs.Wrapf(errs.Resource, err, "create snapshots directory %s", dir)
		}
	case err != nil:
		return "", errs.Wrapf(errs.Resource, err, "stat snapshots directory %s", dir)
	case !stat.Mode().IsDir():
		return "", errs.Errorf(errs.Resource, "%s is not a directory; cannot save snapshots to it", dir)
	}

	out, err := board.Snapshot().Serialize()
	if err != nil {
		return "", err
	}

	base := snapshotFilename(board, t)
	for attempt := 0; ; attempt++ {
		name := base
		if attempt > 0 {
			name += "_" + strconv.Itoa(attempt)
		}
		path := filepath.Join(dir, name+".yaml")

		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o666)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", errs.Wrapf(errs.Resource, err, "create snapshot %s", path)
		}

		_, err = file.WriteString(out)
		if closeErr := file.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return "", errs.Wrapf(errs.Resource, err, "write snapshot %s", path)
		}
		return path, nil
	}
}

// snapshotFilename names a snapshot after the time the game ended and its
// outcome, e.g. 20260102_150405_win.
func snapshotFilename(board *game.Board, t time.Time) string {
	var name strings.Builder
	name.WriteString(t.Format("20060102_150405_"))

	switch board.State() {
	case game.Won, game.Lost:
		name.WriteString(board.State().String())
	default:
		name.WriteString("other")
	}
	return name.String()
}
