package transport

import (
	"context"
	"errors"
	"net"
	"sync"
	"testing"
	"time"
)

// collectHandler records delivered lines and the terminal error.
type collectHandler struct {
	mu      sync.Mutex
	lines   [][]byte
	lineErr error
	closed  chan error
}

func newCollectHandler() *collectHandler {
	return &collectHandler{closed: make(chan error, 1)}
}

func (h *collectHandler) OnLine(line []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	cp := make([]byte, len(line))
	copy(cp, line)
	h.lines = append(h.lines, cp)
	return h.lineErr
}

func (h *collectHandler) OnClosed(err error) {
	h.closed <- err
}

func (h *collectHandler) collected() [][]byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([][]byte(nil), h.lines...)
}

func waitClosed(t *testing.T, h *collectHandler) error {
	t.Helper()
	select {
	case err := <-h.closed:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for OnClosed")
		return nil
	}
}

func pipeConn(t *testing.T) (*Conn, net.Conn, *collectHandler) {
	t.Helper()
	local, remote := net.Pipe()
	c := Attach(local, DefaultConfig())
	h := newCollectHandler()
	if err := c.Start(h); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	t.Cleanup(func() {
		c.Close()
		remote.Close()
	})
	return c, remote, h
}

func TestAttachStartDeliversLines(t *testing.T) {
	c, remote, h := pipeConn(t)

	if c.State() != StateActive {
		t.Fatalf("state = %v, want ACTIVE", c.State())
	}

	go remote.Write([]byte("{\"id\":1,\"result\":[\"ok\"]}\r\n{\"method\":\"props\",\"params\":{}}\r\n"))

	deadline := time.After(2 * time.Second)
	for {
		if len(h.collected()) == 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("collected %d lines, want 2", len(h.collected()))
		case <-time.After(5 * time.Millisecond):
		}
	}

	lines := h.collected()
	if string(lines[0]) != `{"id":1,"result":["ok"]}` {
		t.Errorf("first line = %q", lines[0])
	}
}

func TestSendWritesCRLFLine(t *testing.T) {
	c, remote, _ := pipeConn(t)

	got := make(chan []byte, 1)
	go func() {
		buf := make([]byte, 256)
		n, _ := remote.Read(buf)
		got <- buf[:n]
	}()

	if err := c.Send([]byte(`{"id":1,"method":"toggle","params":[]}`)); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	select {
	case data := <-got:
		want := "{\"id\":1,\"method\":\"toggle\",\"params\":[]}\r\n"
		if string(data) != want {
			t.Errorf("peer received %q, want %q", data, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("peer never received the line")
	}
}

func TestSendBeforeStart(t *testing.T) {
	local, remote := net.Pipe()
	defer local.Close()
	defer remote.Close()

	c := Attach(local, DefaultConfig())
	if err := c.Send([]byte("x")); !errors.Is(err, ErrNotStarted) {
		t.Errorf("Send before Start error = %v, want ErrNotStarted", err)
	}
}

func TestStartTwice(t *testing.T) {
	c, _, _ := pipeConn(t)
	if err := c.Start(newCollectHandler()); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Start error = %v, want ErrAlreadyStarted", err)
	}
}

func TestPeerCloseTriggersTeardown(t *testing.T) {
	c, remote, h := pipeConn(t)

	remote.Close()

	if err := waitClosed(t, h); err == nil {
		t.Error("OnClosed got nil error, want the read error")
	}
	if c.State() != StateClosed {
		t.Errorf("state = %v, want CLOSED", c.State())
	}

	select {
	case <-c.Done():
	default:
		t.Error("Done channel not closed after teardown")
	}

	if err := c.Send([]byte("x")); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("Send after close error = %v, want ErrConnectionClosed", err)
	}
}

func TestHandlerErrorClosesConnection(t *testing.T) {
	c, remote, h := pipeConn(t)

	protoErr := errors.New("malformed message")
	h.mu.Lock()
	h.lineErr = protoErr
	h.mu.Unlock()

	go remote.Write([]byte("garbage\r\n"))

	if err := waitClosed(t, h); !errors.Is(err, protoErr) {
		t.Errorf("OnClosed error = %v, want the handler's error", err)
	}
	if c.State() != StateClosed {
		t.Errorf("state = %v, want CLOSED", c.State())
	}
}

func TestLocalCloseReportsCloseCause(t *testing.T) {
	c, _, h := pipeConn(t)

	c.Close()

	if err := waitClosed(t, h); !errors.Is(err, ErrConnectionClosed) {
		t.Errorf("OnClosed error = %v, want ErrConnectionClosed", err)
	}
	// Close is idempotent.
	if err := c.Close(); err != nil {
		t.Errorf("second Close returned %v", err)
	}
}

func TestDial(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			accepted <- conn
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := Dial(ctx, ln.Addr().String(), DefaultConfig())
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer c.Close()

	if c.State() != StateConnecting {
		t.Errorf("state after Dial = %v, want CONNECTING", c.State())
	}
	if c.ID() == "" {
		t.Error("connection has no ID")
	}

	select {
	case conn := <-accepted:
		conn.Close()
	case <-time.After(2 * time.Second):
		t.Fatal("listener never accepted")
	}
}

func TestDialFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	// Port 1 on localhost should refuse immediately.
	if _, err := Dial(ctx, "127.0.0.1:1", DefaultConfig()); err == nil {
		t.Error("Dial to refused port succeeded")
	}
}

func TestConnStateString(t *testing.T) {
	if StateConnecting.String() != "CONNECTING" ||
		StateActive.String() != "ACTIVE" ||
		StateClosed.String() != "CLOSED" ||
		ConnState(42).String() != "UNKNOWN" {
		t.Error("unexpected state names")
	}
}
