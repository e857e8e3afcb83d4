package wire

// Request is an outbound command line. The ID is the correlation id
// assigned by the connection; it is never reused for the lifetime of
// the connection.
type Request struct {
	ID     uint64  `json:"id"`
	Method string  `json:"method"`
	Params []Param `json:"params"`
}

// Message is a decoded inbound line: exactly one of Result, ErrorReply
// or Notification.
type Message interface {
	message()
}

// Result is a correlated success reply carrying an ordered list of
// string values (for get_prop, the values follow the requested property
// order; for commands, usually ["ok"]).
type Result struct {
	ID     uint64
	Values []string
}

// ErrorReply is a correlated device-reported error.
type ErrorReply struct {
	ID      uint64
	Code    int32
	Message string
}

// Notification is an unsolicited property-change push. It carries no
// correlation id and must never be matched against pending replies.
// Params maps changed property names to their new values.
type Notification struct {
	Method string
	Params map[string]string
}

func (*Result) message()       {}
func (*ErrorReply) message()   {}
func (*Notification) message() {}
