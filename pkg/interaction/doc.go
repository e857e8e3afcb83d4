// Package interaction multiplexes request/reply traffic and
// notifications over one bulb connection.
//
// A Client owns the outbound half of the exchange: it assigns strictly
// increasing correlation ids, registers a pending-reply entry before
// transmitting (so a reply can never race its own registration), and
// parks the caller on a one-shot completion channel. The connection's
// read loop feeds inbound lines back through the Client's Handler
// methods, which resolve pending entries by id or forward notifications
// to the currently installed sink.
//
// The pending table is the only structure touched by both sides
// concurrently; every lookup, insertion, and removal happens under one
// mutex, and an entry resolves exactly once. When the connection tears
// down, every remaining entry is resolved with ErrConnectionClosed so
// no caller blocks forever.
package interaction
