package sim

import (
	"log/slog"

	"github.com/san-kum/sparks/internal/physics"
	"github.com/san-kum/sparks/internal/scenario"
)

// NewProgress logs the particle count once per interval of simulated time.
func NewProgress(logger *slog.Logger, interval float64) Observer {
	next := interval
	return ObserverFunc(func(w *physics.World, sprites []scenario.Sprite, t float64) {
		if interval <= 0 || t+1e-9 < next {
			return
		}
		logger.Info("progress", "t", t, "particles", w.Len(), "sprites", len(sprites))
		for next <= t+1e-9 {
			next += interval
		}
	})
}
