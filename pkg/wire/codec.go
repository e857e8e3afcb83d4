package wire

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedMessage indicates an inbound line that is not valid JSON
// or matches none of the three message shapes. Once a stream produces
// one, its framing can no longer be trusted.
var ErrMalformedMessage = errors.New("malformed message")

// EncodeRequest renders a request as one line of JSON, without the
// CRLF terminator. Framing is the transport's job.
// The function is pure; caller-supplied params are not validated here.
func EncodeRequest(req *Request) ([]byte, error) {
	if req.Params == nil {
		req.Params = []Param{}
	}
	data, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request %q: %w", req.Method, err)
	}
	return data, nil
}

// envelope is the superset of fields across the three inbound shapes.
// Classification is by field presence, not by any explicit tag.
type envelope struct {
	ID     *uint64           `json:"id"`
	Result []json.RawMessage `json:"result"`
	Error  *errDetails       `json:"error"`
	Method *string           `json:"method"`
	Params json.RawMessage   `json:"params"`
}

type errDetails struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

// DecodeMessage parses one inbound line (without its CRLF terminator)
// and classifies it as Result, ErrorReply or Notification. The three
// shapes may appear interleaved on the stream in any order.
func DecodeMessage(line []byte) (Message, error) {
	var env envelope
	if err := json.Unmarshal(line, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}

	switch {
	case env.ID != nil && env.Error != nil:
		return &ErrorReply{
			ID:      *env.ID,
			Code:    env.Error.Code,
			Message: env.Error.Message,
		}, nil

	case env.ID != nil && env.Result != nil:
		values := make([]string, len(env.Result))
		for i, raw := range env.Result {
			values[i] = rawToString(raw)
		}
		return &Result{ID: *env.ID, Values: values}, nil

	case env.ID == nil && env.Method != nil && env.Params != nil:
		var props map[string]json.RawMessage
		if err := json.Unmarshal(env.Params, &props); err != nil {
			return nil, fmt.Errorf("%w: notification params: %v", ErrMalformedMessage, err)
		}
		params := make(map[string]string, len(props))
		for k, raw := range props {
			params[k] = rawToString(raw)
		}
		return &Notification{Method: *env.Method, Params: params}, nil
	}

	return nil, fmt.Errorf("%w: unrecognized shape: %s", ErrMalformedMessage, line)
}

// rawToString renders a JSON scalar as its string value. Strings are
// unquoted; numbers and booleans keep their literal text. Devices mix
// the two freely in results and notifications.
func rawToString(raw json.RawMessage) string {
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	return string(raw)
}
