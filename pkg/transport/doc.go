// Package transport owns the TCP socket underneath a bulb connection.
//
// A Conn wraps exactly one net.Conn split into an independent read half
// and write half: a single background goroutine (started by Start) owns
// all reads for the connection's lifetime, while writes are serialized
// through Send. Inbound CRLF-terminated lines are delivered to a
// Handler one at a time; the first read error, oversize line, or
// Handler rejection closes the connection permanently. There is no
// reconnect: a Conn that reaches StateClosed stays closed.
//
// Framing is line-based (LineReader/LineWriter) rather than
// length-prefixed; the device protocol delimits every message with
// CRLF and never embeds newlines in a message.
package transport
