package log

import (
	"github.com/rs/zerolog"
)

// ZerologAdapter writes protocol events to a zerolog.Logger.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new ZerologAdapter that writes to the given logger.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Log writes the event to the zerolog logger at Debug level.
func (a *ZerologAdapter) Log(event Event) {
	ev := a.logger.Debug().
		Str("conn_id", event.ConnectionID).
		Str("direction", event.Direction.String()).
		Str("category", event.Category.String())

	if event.RemoteAddr != "" {
		ev = ev.Str("remote_addr", event.RemoteAddr)
	}

	switch {
	case event.Line != nil:
		ev = ev.Int("line_size", event.Line.Size).
			Bytes("line", event.Line.Data)
		if event.Line.Truncated {
			ev = ev.Bool("truncated", true)
		}
	case event.StateChange != nil:
		ev = ev.Str("old_state", event.StateChange.OldState).
			Str("new_state", event.StateChange.NewState)
		if event.StateChange.Reason != "" {
			ev = ev.Str("reason", event.StateChange.Reason)
		}
	case event.Error != nil:
		ev = ev.Str("error", event.Error.Message)
		if event.Error.Context != "" {
			ev = ev.Str("context", event.Error.Context)
		}
	}

	ev.Msg("protocol event")
}

// Compile-time interface satisfaction check.
var _ Logger = (*ZerologAdapter)(nil)
