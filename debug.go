package curved

import (
	"log/slog"
	"time"
)

// drawStats holds timing and primitive counts for one panel rebuild.
// Only populated when debug mode is on.
type drawStats struct {
	rebuildTime time.Duration
	commands    int
	lines       int
	polyLines   int
	strips      int
	texts       int
}

func collectDrawStats(c *CommandCanvas, elapsed time.Duration) drawStats {
	return drawStats{
		rebuildTime: elapsed,
		commands:    c.Len(),
		lines:       c.CountByType(CommandLine),
		polyLines:   c.CountByType(CommandPolyLine),
		strips:      c.CountByType(CommandTriangleStrip),
		texts:       c.CountByType(CommandText),
	}
}

// log writes the stats at debug level.
func (s drawStats) log(panel string) {
	Logger().Debug("rebuild",
		slog.String("panel", panel),
		slog.Duration("time", s.rebuildTime),
		slog.Int("commands", s.commands),
		slog.Int("lines", s.lines),
		slog.Int("polylines", s.polyLines),
		slog.Int("strips", s.strips),
		slog.Int("texts", s.texts),
	)
}

// debugMaxKeyframes is the key count above which debug mode warns that a
// curve will be slow to hit-test.
const debugMaxKeyframes = 10000

// debugCheckCurves warns when a curve is large enough to make the linear
// keyframe search noticeable.
func debugCheckCurves(curves []CurveInfo) {
	for i, info := range curves {
		if info.Curve != nil && info.Curve.Len() > debugMaxKeyframes {
			Logger().Warn("curve has many keyframes",
				slog.Int("curve", i),
				slog.Int("keyframes", info.Curve.Len()),
				slog.Int("threshold", debugMaxKeyframes))
		}
	}
}
