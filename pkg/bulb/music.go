package bulb

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

// StartMusic puts the device into music mode and returns a second Bulb
// speaking over the reverse connection. In music mode the device
// silently accepts an unlimited command rate, so the returned bulb is
// permanently fire-and-forget.
//
// localHost must be an address of this machine reachable by the device;
// empty selects the primary connection's local address. The handshake
// binds an ephemeral listener, asks the device to connect back and
// waits for exactly one connection or ctx.
//
// Stop music mode with SetMusic(ctx, wire.MusicOff, "", 0) on the
// primary bulb, then Close the returned one.
func (b *Bulb) StartMusic(ctx context.Context, localHost string) (*Bulb, error) {
	if localHost == "" {
		host, _, err := net.SplitHostPort(b.conn.LocalAddr().String())
		if err != nil {
			return nil, fmt.Errorf("music mode: resolve local host: %w", err)
		}
		localHost = host
	}

	listener, err := net.Listen("tcp", net.JoinHostPort(localHost, "0"))
	if err != nil {
		return nil, fmt.Errorf("music mode: listen: %w", err)
	}
	defer listener.Close()

	_, portStr, err := net.SplitHostPort(listener.Addr().String())
	if err != nil {
		return nil, fmt.Errorf("music mode: listener address: %w", err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("music mode: listener port: %w", err)
	}

	if err := b.SetMusic(ctx, wire.MusicOn, localHost, uint16(port)); err != nil {
		return nil, err
	}

	netConn, err := acceptOne(ctx, listener)
	if err != nil {
		return nil, fmt.Errorf("music mode: waiting for device: %w", err)
	}

	music, err := AttachConfig(netConn, b.config)
	if err != nil {
		netConn.Close()
		return nil, err
	}
	return music.NoResponse(), nil
}

// acceptOne waits for a single inbound connection, honoring ctx.
func acceptOne(ctx context.Context, listener net.Listener) (net.Conn, error) {
	type result struct {
		conn net.Conn
		err  error
	}
	accepted := make(chan result, 1)
	go func() {
		conn, err := listener.Accept()
		accepted <- result{conn, err}
	}()

	select {
	case r := <-accepted:
		return r.conn, r.err
	case <-ctx.Done():
		// Unblocks the Accept. A connection that raced in anyway gets
		// closed by the drain.
		listener.Close()
		go func() {
			if r := <-accepted; r.conn != nil {
				r.conn.Close()
			}
		}()
		return nil, ctx.Err()
	}
}
