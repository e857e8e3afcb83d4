package interaction

import (
	"errors"
	"fmt"
)

// ErrConnectionClosed is the outcome of a pending reply whose
// connection tore down before the reply arrived. It is deliberately a
// different kind from DeviceError: "the device rejected it" and "we
// never found out" must be distinguishable to callers.
var ErrConnectionClosed = errors.New("connection closed before reply")

// ErrClientClosed indicates an invocation on a client whose connection
// already ended.
var ErrClientClosed = errors.New("client is closed")

// DeviceError is a well-formed error reply from the device. It is local
// to the one request it answers; the connection stays usable.
type DeviceError struct {
	Code    int32
	Message string
}

// Error implements the error interface.
func (e *DeviceError) Error() string {
	return fmt.Sprintf("bulb response error: %s (code %d)", e.Message, e.Code)
}
