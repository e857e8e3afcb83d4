package interaction

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/yeelight-protocol/yeelight-go/pkg/log"
	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

// Sender transmits one encoded line. *transport.Conn satisfies it; tests
// substitute in-memory fakes.
type Sender interface {
	Send(line []byte) error
}

// Client multiplexes request/reply exchanges and notifications over one
// line-oriented connection. It is the connection's Handler: wire it with
// conn.Start(client) before the first Invoke.
//
// All methods are safe for concurrent use. Correlation ids are assigned
// under the write lock, so ids appear on the socket in increasing order.
type Client struct {
	sender Sender
	connID string
	logger log.Logger

	writeMu sync.Mutex
	nextID  uint64

	pending *pendingTable

	// noReply inverts the default so the zero value expects replies.
	noReply atomic.Bool

	sinkMu    sync.Mutex
	sink      chan<- wire.Notification
	ownedSink chan wire.Notification
	closed    bool
}

// NewClient creates a client transmitting through sender. connID tags
// log events and should match the underlying connection's id; logger may
// be nil.
func NewClient(sender Sender, connID string, logger log.Logger) *Client {
	return &Client{
		sender:  sender,
		connID:  connID,
		logger:  logger,
		pending: newPendingTable(),
	}
}

// SetExpectReply toggles whether Invoke waits for replies. With false,
// Invoke transmits and returns immediately with nil values; the device
// is expected to stay silent (music mode). The toggle applies to calls
// that start after it, not to waits already in flight.
func (c *Client) SetExpectReply(expect bool) {
	c.noReply.Store(!expect)
}

// ExpectReply reports whether Invoke currently waits for replies.
func (c *Client) ExpectReply() bool {
	return !c.noReply.Load()
}

// Invoke transmits method with params and, unless SetExpectReply(false)
// is in effect, blocks until the matching reply arrives, ctx ends, or
// the connection closes. A device-rejected call returns a *DeviceError;
// transport failures are surfaced even in fire-and-forget mode.
func (c *Client) Invoke(ctx context.Context, method string, params []wire.Param) ([]string, error) {
	return c.invoke(ctx, method, params, c.ExpectReply())
}

func (c *Client) invoke(ctx context.Context, method string, params []wire.Param, expectReply bool) ([]string, error) {
	c.writeMu.Lock()
	id := c.nextID + 1
	c.nextID = id

	line, err := wire.EncodeRequest(&wire.Request{ID: id, Method: method, Params: params})
	if err != nil {
		c.writeMu.Unlock()
		return nil, err
	}

	// Register before transmitting so a reply racing back on the read
	// loop always finds its entry.
	var ch <-chan outcome
	if expectReply {
		var ok bool
		ch, ok = c.pending.register(id)
		if !ok {
			c.writeMu.Unlock()
			return nil, ErrClientClosed
		}
	}

	err = c.sender.Send(line)
	c.writeMu.Unlock()

	if err != nil {
		if expectReply {
			c.pending.remove(id)
		}
		return nil, fmt.Errorf("send %s: %w", method, err)
	}
	if !expectReply {
		return nil, nil
	}

	select {
	case out := <-ch:
		return out.values, out.err
	case <-ctx.Done():
		// The reply, if it still comes, is logged as a drop and discarded.
		c.pending.remove(id)
		return nil, ctx.Err()
	}
}

// OnLine decodes one inbound line and routes it: replies complete their
// pending entry, notifications go to the sink. A decode failure is
// returned to the read loop, which closes the connection; after a
// malformed line the framing cannot be trusted.
func (c *Client) OnLine(line []byte) error {
	msg, err := wire.DecodeMessage(line)
	if err != nil {
		return err
	}

	switch m := msg.(type) {
	case *wire.Result:
		if !c.pending.resolve(m.ID, outcome{values: m.Values}) {
			c.logDrop(fmt.Sprintf("unmatched reply id %d", m.ID))
		}

	case *wire.ErrorReply:
		devErr := &DeviceError{Code: m.Code, Message: m.Message}
		if !c.pending.resolve(m.ID, outcome{err: devErr}) {
			c.logDrop(fmt.Sprintf("unmatched error reply id %d", m.ID))
		}

	case *wire.Notification:
		c.deliverNotification(*m)
	}
	return nil
}

// OnClosed completes every pending entry with ErrConnectionClosed so no
// waiter hangs, then closes the notification channel if the client owns
// one. Called exactly once by the read loop.
func (c *Client) OnClosed(err error) {
	cause := ErrConnectionClosed
	if err != nil {
		cause = fmt.Errorf("%w: %v", ErrConnectionClosed, err)
	}
	c.pending.drain(cause)

	c.sinkMu.Lock()
	c.closed = true
	if c.ownedSink != nil {
		close(c.ownedSink)
		c.ownedSink = nil
	}
	c.sink = nil
	c.sinkMu.Unlock()
}

// Notifications creates a channel of capacity buf, installs it as the
// sink and returns it. The channel is closed when the connection ends.
// Replaces any previously installed sink.
func (c *Client) Notifications(buf int) <-chan wire.Notification {
	ch := make(chan wire.Notification, buf)
	c.sinkMu.Lock()
	defer c.sinkMu.Unlock()

	if c.closed {
		close(ch)
		return ch
	}
	c.ownedSink = ch
	c.sink = ch
	return ch
}

// SetSink installs a caller-owned notification channel, replacing any
// previous sink. The caller keeps ownership: the channel is never closed
// by the client. A nil ch discards notifications.
func (c *Client) SetSink(ch chan<- wire.Notification) {
	c.sinkMu.Lock()
	defer c.sinkMu.Unlock()
	c.ownedSink = nil
	c.sink = ch
}

// PendingCount reports the number of invocations waiting for a reply.
func (c *Client) PendingCount() int {
	return c.pending.size()
}

// deliverNotification sends on the sink without blocking. The read loop
// must keep consuming lines, so a full or absent sink drops the
// notification rather than stall reply dispatch.
func (c *Client) deliverNotification(n wire.Notification) {
	c.sinkMu.Lock()
	sink := c.sink
	c.sinkMu.Unlock()

	if sink == nil {
		c.logDrop(fmt.Sprintf("notification %s without sink", n.Method))
		return
	}
	select {
	case sink <- n:
	default:
		c.logDrop(fmt.Sprintf("notification %s on full sink", n.Method))
	}
}

func (c *Client) logDrop(context string) {
	if c.logger != nil {
		c.logger.Log(log.NewDropEvent(c.connID, context))
	}
}
