package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func TestFileLoggerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	logger.Log(NewLineEvent("conn-a", DirectionOut, []byte(`{"id":1,"method":"toggle","params":[]}`)))
	logger.Log(NewLineEvent("conn-a", DirectionIn, []byte(`{"id":1,"result":["ok"]}`)))
	logger.Log(NewStateEvent("conn-b", "ACTIVE", "CLOSED", "EOF"))

	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	events, err := ReadEventFile(path, nil)
	if err != nil {
		t.Fatalf("ReadEventFile failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}
	if events[1].Line == nil || string(events[1].Line.Data) != `{"id":1,"result":["ok"]}` {
		t.Errorf("unexpected second event: %+v", events[1])
	}
}

func TestFileLoggerCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	// Logging after close is a no-op, not a panic.
	logger.Log(NewStateEvent("conn-a", "", "CONNECTING", ""))
}

func TestReadEventFileFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(NewLineEvent("conn-a", DirectionOut, []byte("a")))
	logger.Log(NewLineEvent("conn-b", DirectionIn, []byte("b")))
	logger.Log(NewLineEvent("conn-a", DirectionIn, []byte("c")))
	logger.Close()

	in := DirectionIn
	events, err := ReadEventFile(path, &Filter{ConnectionID: "conn-a", Direction: &in})
	if err != nil {
		t.Fatalf("ReadEventFile failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if string(events[0].Line.Data) != "c" {
		t.Errorf("wrong event matched: %+v", events[0])
	}
}

func TestReadEventFileTruncatedTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.cbor")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(NewStateEvent("conn-a", "", "CONNECTING", ""))
	logger.Close()

	// Simulate a crashed writer: append half a record.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.Write([]byte{0xa5, 0x01})
	f.Close()

	events, err := ReadEventFile(path, nil)
	if err != nil {
		t.Fatalf("ReadEventFile failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
}

func TestAdaptersDoNotPanic(t *testing.T) {
	events := []Event{
		NewLineEvent("conn-a", DirectionOut, []byte("x")),
		NewStateEvent("conn-a", "ACTIVE", "CLOSED", "EOF"),
		NewDropEvent("conn-a", "sink full"),
	}

	slogAdapter := NewSlogAdapter(slog.New(slog.NewTextHandler(io.Discard, nil)))
	multi := NewMultiLogger(NoopLogger{}, slogAdapter)
	for _, e := range events {
		multi.Log(e)
	}
}
