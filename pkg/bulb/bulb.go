package bulb

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/yeelight-protocol/yeelight-go/pkg/interaction"
	"github.com/yeelight-protocol/yeelight-go/pkg/log"
	"github.com/yeelight-protocol/yeelight-go/pkg/transport"
	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

// DefaultPort is the TCP control port Yeelight devices listen on.
const DefaultPort = 55443

// DefaultNotificationBuffer is the capacity of the channel returned by
// Notifications. Notifications beyond it are dropped, never queued
// unboundedly.
const DefaultNotificationBuffer = 10

// DeviceError is a command rejection from the bulb, re-exported so
// callers rarely need the interaction package directly.
type DeviceError = interaction.DeviceError

// ErrConnectionClosed is returned for calls whose reply was lost to a
// closed connection.
var ErrConnectionClosed = interaction.ErrConnectionClosed

// Config configures a bulb connection.
type Config struct {
	// Logger receives protocol events. Nil disables logging.
	Logger log.Logger

	// MaxLineSize caps inbound and outbound protocol lines.
	MaxLineSize int

	// NotificationBuffer is the capacity of the Notifications channel.
	NotificationBuffer int
}

// DefaultConfig returns the default bulb configuration.
func DefaultConfig() Config {
	return Config{
		MaxLineSize:        transport.DefaultMaxLineSize,
		NotificationBuffer: DefaultNotificationBuffer,
	}
}

// Bulb is one light, reached over one persistent connection.
type Bulb struct {
	config Config
	conn   *transport.Conn
	client *interaction.Client
}

// Connect dials the bulb at host:port with the default configuration.
// Port 0 selects DefaultPort.
func Connect(ctx context.Context, host string, port uint16) (*Bulb, error) {
	return ConnectConfig(ctx, host, port, DefaultConfig())
}

// ConnectConfig dials the bulb at host:port. Port 0 selects DefaultPort.
func ConnectConfig(ctx context.Context, host string, port uint16, config Config) (*Bulb, error) {
	if port == 0 {
		port = DefaultPort
	}
	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))

	conn, err := transport.Dial(ctx, addr, transportConfig(config))
	if err != nil {
		return nil, err
	}
	return start(conn, config)
}

// Attach wraps an already-established socket, for example one accepted
// on a music-mode listener or opened by discovery.
func Attach(netConn net.Conn) (*Bulb, error) {
	return AttachConfig(netConn, DefaultConfig())
}

// AttachConfig wraps an already-established socket.
func AttachConfig(netConn net.Conn, config Config) (*Bulb, error) {
	return start(transport.Attach(netConn, transportConfig(config)), config)
}

func transportConfig(config Config) transport.Config {
	return transport.Config{
		MaxLineSize: config.MaxLineSize,
		Logger:      config.Logger,
	}
}

func start(conn *transport.Conn, config Config) (*Bulb, error) {
	client := interaction.NewClient(conn, conn.ID(), config.Logger)
	if err := conn.Start(client); err != nil {
		conn.Close()
		return nil, fmt.Errorf("start read loop: %w", err)
	}
	return &Bulb{config: config, conn: conn, client: client}, nil
}

// NoResponse switches the bulb to fire-and-forget: commands transmit
// without waiting for replies. Required in music mode, where the device
// stays silent. Returns the bulb for chaining.
func (b *Bulb) NoResponse() *Bulb {
	b.client.SetExpectReply(false)
	return b
}

// GetResponse switches the bulb back to waiting for replies.
func (b *Bulb) GetResponse() *Bulb {
	b.client.SetExpectReply(true)
	return b
}

// Notifications returns a channel of unsolicited state updates (the
// "props" messages the device pushes after changes). The channel is
// closed when the connection ends. Calling it again replaces the
// previous channel.
func (b *Bulb) Notifications() <-chan wire.Notification {
	buf := b.config.NotificationBuffer
	if buf <= 0 {
		buf = DefaultNotificationBuffer
	}
	return b.client.Notifications(buf)
}

// SetNotificationSink installs a caller-owned channel for state updates,
// replacing any previous sink. The channel is never closed by the bulb.
func (b *Bulb) SetNotificationSink(ch chan<- wire.Notification) {
	b.client.SetSink(ch)
}

// Done is closed when the connection reaches its terminal state.
func (b *Bulb) Done() <-chan struct{} {
	return b.conn.Done()
}

// RemoteAddr returns the device's network address.
func (b *Bulb) RemoteAddr() net.Addr {
	return b.conn.RemoteAddr()
}

// Close closes the connection. Pending calls fail with
// ErrConnectionClosed. Close is idempotent.
func (b *Bulb) Close() error {
	return b.conn.Close()
}
