package log

import (
	"time"
)

// MaxLineDataSize is the maximum line length to include in log events (4 KB).
// Longer lines are truncated in the event to bound memory usage.
const MaxLineDataSize = 4096

// Event represents a protocol log event captured on a bulb connection.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the connection (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// RemoteAddr is the peer address (IP:port).
	RemoteAddr string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Line        *LineEvent        `cbor:"6,keyasint,omitempty"` // Raw protocol line
	StateChange *StateChangeEvent `cbor:"7,keyasint,omitempty"` // Connection state
	Error       *ErrorEventData   `cbor:"8,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionNone is used for events without a direction (state changes).
	DirectionNone Direction = 0
	// DirectionIn indicates an incoming line.
	DirectionIn Direction = 1
	// DirectionOut indicates an outgoing line.
	DirectionOut Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionNone:
		return "NONE"
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryLine indicates a raw protocol line (request/reply/notification).
	CategoryLine Category = 0
	// CategoryState indicates a connection state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
	// CategoryDrop indicates discarded data: an unmatched reply id or a
	// notification dropped because the sink queue was full.
	CategoryDrop Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryLine:
		return "LINE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	case CategoryDrop:
		return "DROP"
	default:
		return "UNKNOWN"
	}
}

// LineEvent captures one protocol line as it crossed the socket.
type LineEvent struct {
	// Size is the full line size in bytes (without the CRLF terminator).
	Size int `cbor:"1,keyasint"`

	// Data is the line content (may be truncated for large lines).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// StateChangeEvent captures connection lifecycle transitions.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}

// NewLineEvent builds an Event for one protocol line, truncating the
// recorded data at MaxLineDataSize.
func NewLineEvent(connID string, dir Direction, line []byte) Event {
	data := line
	truncated := false
	if len(line) > MaxLineDataSize {
		data = line[:MaxLineDataSize]
		truncated = true
	}

	// Copy so the event does not alias the read buffer.
	recorded := make([]byte, len(data))
	copy(recorded, data)

	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    dir,
		Category:     CategoryLine,
		Line: &LineEvent{
			Size:      len(line),
			Data:      recorded,
			Truncated: truncated,
		},
	}
}

// NewStateEvent builds an Event for a connection state change.
func NewStateEvent(connID, oldState, newState, reason string) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    DirectionNone,
		Category:     CategoryState,
		StateChange: &StateChangeEvent{
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	}
}

// NewErrorEvent builds an Event for an error.
func NewErrorEvent(connID string, err error, context string) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    DirectionNone,
		Category:     CategoryError,
		Error: &ErrorEventData{
			Message: err.Error(),
			Context: context,
		},
	}
}

// NewDropEvent builds an Event for discarded inbound data.
func NewDropEvent(connID, context string) Event {
	return Event{
		Timestamp:    time.Now(),
		ConnectionID: connID,
		Direction:    DirectionIn,
		Category:     CategoryDrop,
		Error: &ErrorEventData{
			Message: "discarded",
			Context: context,
		},
	}
}
