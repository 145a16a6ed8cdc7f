package game

import (
	"log/slog"

	"github.com/pthm-cable/wormsoup/telemetry"
)

// logEvent is a bus subscriber that mirrors events to slog. World-level
// events log at Info, per-worm churn at Debug.
func logEvent(e telemetry.Event) {
	attrs := []any{
		"tick", e.Tick,
		"time", e.Time,
		"kind", e.Kind.String(),
		"colony", e.Colony,
	}
	if e.WormID != 0 {
		attrs = append(attrs, "worm", e.WormID)
	}

	switch e.Kind {
	case telemetry.KindEvent, telemetry.KindBoss:
		slog.Info(e.Text, attrs...)
	case telemetry.KindMutation:
		if e.Rare {
			slog.Info(e.Text, attrs...)
			return
		}
		slog.Debug(e.Text, attrs...)
	default:
		slog.Debug(e.Text, attrs...)
	}
}
