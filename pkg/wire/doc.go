// Package wire implements the line-delimited JSON encoding spoken by
// Yeelight devices over TCP.
//
// Outbound requests are single CRLF-terminated lines of the form
//
//	{"id":1,"method":"set_power","params":["on","smooth",500,0]}
//
// with heterogeneous positional params: numbers are rendered bare,
// strings quoted, and color-flow expressions as one quoted comma-joined
// string (see FlowExpression).
//
// Inbound lines are classified by field shape into exactly one of three
// messages: Result (correlated success reply), ErrorReply (correlated
// device error), or Notification (unsolicited property-change push
// without an id). The three shapes may interleave arbitrarily on the
// stream.
//
// The package also defines the protocol's enumerated vocabulary
// (property names, effects, scene classes, mode codes) with symmetric
// String/Parse tables so that encode and decode cannot drift apart.
package wire
