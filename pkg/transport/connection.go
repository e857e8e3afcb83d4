package transport

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/yeelight-protocol/yeelight-go/pkg/log"
)

// Connection states.
type ConnState int32

const (
	// StateConnecting indicates the socket is open but the read loop has
	// not started yet.
	StateConnecting ConnState = iota

	// StateActive indicates the read loop is running.
	StateActive

	// StateClosed indicates the connection ended. This state is terminal.
	StateClosed
)

// String returns the connection state name.
func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "CONNECTING"
	case StateActive:
		return "ACTIVE"
	case StateClosed:
		return "CLOSED"
	default:
		return "UNKNOWN"
	}
}

// Connection errors.
var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrNotStarted       = errors.New("connection not started")
	ErrAlreadyStarted   = errors.New("connection already started")
)

// Config configures a bulb connection.
type Config struct {
	// MaxLineSize is the maximum protocol line size (default: 16KB).
	MaxLineSize int

	// Logger receives protocol events. Nil disables logging.
	Logger log.Logger
}

// DefaultConfig returns the default connection configuration.
func DefaultConfig() Config {
	return Config{
		MaxLineSize: DefaultMaxLineSize,
	}
}

// Handler receives inbound lines and the connection's terminal error.
type Handler interface {
	// OnLine is called from the read loop for each inbound line. A
	// non-nil return closes the connection with that error (used for
	// protocol decode failures, after which framing integrity is lost).
	OnLine(line []byte) error

	// OnClosed is called exactly once, after the last OnLine, with the
	// reason the connection ended.
	OnClosed(err error)
}

// Conn owns one TCP socket split into an independent read half and
// write half. The read half belongs to the goroutine started by Start;
// the write half is serialized inside the LineWriter. Neither half is
// ever touched by more than one goroutine at a time, which is what
// avoids locking the socket itself.
type Conn struct {
	id     string
	config Config

	conn   net.Conn
	reader *LineReader
	writer *LineWriter

	state    atomic.Int32
	started  atomic.Bool
	closeErr error
	closeMu  sync.Mutex
	done     chan struct{}
}

// Dial opens a TCP connection to the given address. The returned Conn
// is in StateConnecting; call Start to launch the read loop.
func Dial(ctx context.Context, address string, config Config) (*Conn, error) {
	dialer := &net.Dialer{}
	netConn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", address, err)
	}
	return Attach(netConn, config), nil
}

// Attach wraps an already-established socket (from discovery, or a
// socket accepted on a music-mode listener). The returned Conn is in
// StateConnecting; call Start to launch the read loop.
func Attach(netConn net.Conn, config Config) *Conn {
	if config.MaxLineSize <= 0 {
		config.MaxLineSize = DefaultMaxLineSize
	}

	c := &Conn{
		id:     uuid.NewString(),
		config: config,
		conn:   netConn,
		reader: NewLineReaderWithMaxSize(netConn, config.MaxLineSize),
		writer: NewLineWriterWithMaxSize(netConn, config.MaxLineSize),
		done:   make(chan struct{}),
	}
	c.state.Store(int32(StateConnecting))

	if config.Logger != nil {
		c.reader.SetLogger(config.Logger, c.id)
		c.writer.SetLogger(config.Logger, c.id)
		config.Logger.Log(log.NewStateEvent(c.id, "", StateConnecting.String(), ""))
	}

	return c
}

// ID returns the connection's unique identifier (used in log events).
func (c *Conn) ID() string {
	return c.id
}

// State returns the current connection state.
func (c *Conn) State() ConnState {
	return ConnState(c.state.Load())
}

// Done is closed when the connection reaches StateClosed.
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// LocalAddr returns the local network address.
func (c *Conn) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

// RemoteAddr returns the remote network address.
func (c *Conn) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// Start launches the background read loop delivering to handler. It
// must be called exactly once, before any Send; replies and
// notifications are processed from this moment even if the caller
// never sends anything.
func (c *Conn) Start(handler Handler) error {
	if !c.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	if !c.state.CompareAndSwap(int32(StateConnecting), int32(StateActive)) {
		return ErrConnectionClosed
	}
	c.logStateChange(StateConnecting, StateActive, "")

	go c.readLoop(handler)
	return nil
}

// Send writes one line to the socket. Lines from concurrent senders are
// transmitted whole, in the order the write lock is acquired.
func (c *Conn) Send(line []byte) error {
	switch c.State() {
	case StateConnecting:
		return ErrNotStarted
	case StateClosed:
		return ErrConnectionClosed
	}

	if err := c.writer.WriteLine(line); err != nil {
		// A failed write means the socket is broken; tear down so the
		// read loop drains pending replies instead of hanging callers.
		c.teardown(err, "write error")
		return err
	}
	return nil
}

// Close closes the connection. The read loop observes the closed socket
// and performs its normal teardown, so Handler.OnClosed still fires.
// Close is idempotent.
func (c *Conn) Close() error {
	c.teardown(ErrConnectionClosed, "closed by caller")
	return nil
}

// teardown transitions to StateClosed exactly once and closes the
// socket. cause is reported by CloseErr and, via the read loop, to
// Handler.OnClosed.
func (c *Conn) teardown(cause error, reason string) {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.State() == StateClosed {
		return
	}
	if cause == nil {
		cause = ErrConnectionClosed
	}

	old := c.State()
	c.closeErr = cause
	c.state.Store(int32(StateClosed))
	c.conn.Close()
	close(c.done)

	c.logStateChange(old, StateClosed, reason)
}

// CloseErr returns the terminal error once the connection is closed.
func (c *Conn) CloseErr() error {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()
	return c.closeErr
}

// readLoop reads lines until the connection ends. It never transmits;
// the read half is strictly inbound.
func (c *Conn) readLoop(handler Handler) {
	for {
		line, err := c.reader.ReadLine()
		if err != nil {
			if c.State() == StateClosed {
				// Local teardown already ran; report its cause.
				handler.OnClosed(c.CloseErr())
				return
			}
			c.logError(err, "read")
			c.teardown(err, "read error")
			handler.OnClosed(err)
			return
		}

		if err := handler.OnLine(line); err != nil {
			c.logError(err, "handle line")
			c.teardown(err, "protocol error")
			handler.OnClosed(err)
			return
		}
	}
}

func (c *Conn) logStateChange(oldState, newState ConnState, reason string) {
	if c.config.Logger != nil {
		c.config.Logger.Log(log.NewStateEvent(c.id, oldState.String(), newState.String(), reason))
	}
}

func (c *Conn) logError(err error, context string) {
	if c.config.Logger != nil {
		c.config.Logger.Log(log.NewErrorEvent(c.id, err, context))
	}
}
