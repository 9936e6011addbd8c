package states

import (
	"time"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"

	"github.com/hanak0/ggsweep/game"
)

// annotation highlights a cell the director just acted on.
type annotation struct {
	cell   *game.Cell
	action game.Action
	shown  time.Time
	// Director move the annotation belongs to
	frame int
}

func (a annotation) color() pixel.RGBA {
	switch a.action {
	case game.Click:
		return pixel.RGB(1, 0, 0)
	case game.RightClick:
		return pixel.RGB(0, 0, 1)
	case game.MiddleClick:
		return pixel.RGB(0, 1, 0)
	default:
		return pixel.RGB(1, 1, 0)
	}
}

// drawAnnotations fades out annotations over AnnotationDuration. Those of the
// latest move stay at full strength.
func (s *GameState) drawAnnotations(imd *imdraw.IMDraw) {
	now := s.opts.Now()

	for i := 0; i < s.annotations.Len(); i++ {
		a := s.annotations.At(i)

		alpha := s.opts.AnnotationBaseAlpha
		if a.frame != s.actFrame {
			progress := 1 - float64(now.Sub(a.shown))/float64(s.opts.AnnotationDuration)
			alpha *= InOutCubic(clamp01(progress))
		}

		rect := s.cellRect(a.cell)
		imd.Color = a.color().Mul(pixel.Alpha(alpha))
		imd.Push(rect.Min, rect.Max)
		imd.Rectangle(0)
	}
}

func InOutCubic(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t * t
	}
	t -= 2
	return 0.5 * (t*t*t + 2)
}

func clamp01(t float64) float64 {
	switch {
	case t < 0:
		return 0
	case t > 1:
		return 1
	default:
		return t
	}
}
