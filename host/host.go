// Package host runs a state stack in a pixelgl window.
package host

import (
	"fmt"
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/pixelgl"
	"github.com/sirupsen/logrus"

	"github.com/hanak0/ggsweep/errs"
	"github.com/hanak0/ggsweep/state"
)

type Config struct {
	Title string
	Size  pixel.Vec
	VSync bool
	// Show the frame rate in the window title
	ShowFPS bool
}

// windowContext presents frames by swapping the window buffers, which also
// polls for new input.
type windowContext struct {
	*pixelgl.Window
}

func (ctx windowContext) Present() {
	ctx.Update()
}

// Run opens a window and drives stack until the window is closed or the last
// state is popped. It must be called from the function passed to
// pixelgl.Run.
func Run(stack *state.Stack, cfg Config, log logrus.FieldLogger) error {
	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  cfg.Title,
		Bounds: pixel.R(0, 0, cfg.Size.X, cfg.Size.Y),
		VSync:  cfg.VSync,
	})
	if err != nil {
		return errs.Wrap(errs.Rendering, err, "create window")
	}
	defer win.Destroy()

	log.WithField("size", cfg.Size).Debug("Window opened")

	ctx := windowContext{win}
	var in input

	var (
		frames = 0
		second = time.Tick(time.Second)
	)

	for !win.Closed() {
		if err := stack.Update(ctx); err != nil {
			return err
		}
		if stack.Done() {
			log.Debug("State stack is empty")
			return nil
		}
		if err := stack.Draw(ctx); err != nil {
			return err
		}

		if cfg.ShowFPS {
			frames++
			select {
			case <-second:
				win.SetTitle(fmt.Sprintf("%s | FPS: %d", cfg.Title, frames))
				frames = 0
			default:
			}
		}

		in.dispatch(win, stack, ctx)
	}

	log.Debug("Window closed")
	return nil
}
