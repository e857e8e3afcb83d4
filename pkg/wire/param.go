package wire

import (
	"encoding/json"
	"time"
)

// Param is a single positional request parameter. Params keep the
// heterogeneous JSON rendering the device expects: numbers bare,
// strings quoted.
type Param struct {
	v any
}

// String builds a quoted string parameter.
func String(s string) Param {
	return Param{v: s}
}

// Int builds a bare signed number parameter.
func Int(n int64) Param {
	return Param{v: n}
}

// Uint builds a bare unsigned number parameter.
func Uint(n uint64) Param {
	return Param{v: n}
}

// DurationMillis builds a bare number parameter holding the duration's
// millisecond count. Durations on the wire are always milliseconds.
func DurationMillis(d time.Duration) Param {
	return Param{v: d.Milliseconds()}
}

// MarshalJSON renders the parameter in its wire form.
func (p Param) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.v)
}
