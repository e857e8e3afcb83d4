package log

import (
	"bytes"
	"testing"
	"time"
)

func TestLineEventTruncation(t *testing.T) {
	line := bytes.Repeat([]byte("x"), MaxLineDataSize+100)
	event := NewLineEvent("conn-1", DirectionIn, line)

	if event.Line == nil {
		t.Fatal("expected line payload")
	}
	if event.Line.Size != len(line) {
		t.Errorf("Size = %d, want %d", event.Line.Size, len(line))
	}
	if len(event.Line.Data) != MaxLineDataSize {
		t.Errorf("Data length = %d, want %d", len(event.Line.Data), MaxLineDataSize)
	}
	if !event.Line.Truncated {
		t.Error("expected Truncated to be set")
	}
}

func TestLineEventCopiesData(t *testing.T) {
	line := []byte(`{"id":1,"result":["ok"]}`)
	event := NewLineEvent("conn-1", DirectionIn, line)

	line[0] = '?'
	if event.Line.Data[0] != '{' {
		t.Error("event data aliases the caller's buffer")
	}
}

func TestEventRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{
			name:  "line event",
			event: NewLineEvent("conn-1", DirectionOut, []byte(`{"id":1,"method":"toggle","params":[]}`)),
		},
		{
			name:  "state event",
			event: NewStateEvent("conn-1", "ACTIVE", "CLOSED", "read error"),
		},
		{
			name:  "drop event",
			event: NewDropEvent("conn-1", "unmatched reply id 7"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := EncodeEvent(tt.event)
			if err != nil {
				t.Fatalf("encode failed: %v", err)
			}

			decoded, err := DecodeEvent(data)
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}

			if decoded.ConnectionID != tt.event.ConnectionID {
				t.Errorf("ConnectionID = %q, want %q", decoded.ConnectionID, tt.event.ConnectionID)
			}
			if decoded.Direction != tt.event.Direction {
				t.Errorf("Direction = %v, want %v", decoded.Direction, tt.event.Direction)
			}
			if decoded.Category != tt.event.Category {
				t.Errorf("Category = %v, want %v", decoded.Category, tt.event.Category)
			}
			if !decoded.Timestamp.Truncate(time.Millisecond).Equal(tt.event.Timestamp.Truncate(time.Millisecond)) {
				t.Errorf("Timestamp = %v, want %v", decoded.Timestamp, tt.event.Timestamp)
			}
		})
	}
}

func TestEnumStrings(t *testing.T) {
	if DirectionIn.String() != "IN" || DirectionOut.String() != "OUT" || DirectionNone.String() != "NONE" {
		t.Error("unexpected direction names")
	}
	if CategoryLine.String() != "LINE" || CategoryDrop.String() != "DROP" {
		t.Error("unexpected category names")
	}
	if Direction(99).String() != "UNKNOWN" || Category(99).String() != "UNKNOWN" {
		t.Error("out-of-range values should stringify as UNKNOWN")
	}
}
