// Package log provides protocol event logging for bulb connections.
//
// The library emits structured events for every line sent or received,
// every connection state change, and every error or dropped notification.
// Applications choose where events go by implementing Logger or by using
// one of the provided implementations:
//
//   - NoopLogger: discard everything (the default)
//   - SlogAdapter: forward events to a log/slog logger
//   - ZerologAdapter: forward events to a zerolog logger
//   - FileLogger: append events to a compact CBOR event file
//   - MultiLogger: fan out to several of the above
//
// Event files written by FileLogger can be read back with ReadEventFile,
// optionally filtered by connection, direction, or time range.
package log
