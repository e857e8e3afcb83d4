package wire

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlowMode is the state-change kind within a color flow tuple. The wire
// encoding is the small integer code, not a name.
type FlowMode uint8

const (
	FlowColor FlowMode = 1
	FlowCT    FlowMode = 2
	FlowSleep FlowMode = 7
)

// String returns the flow mode name.
func (m FlowMode) String() string {
	switch m {
	case FlowColor:
		return "color"
	case FlowCT:
		return "ct"
	case FlowSleep:
		return "sleep"
	default:
		return "unknown"
	}
}

// ParseFlowMode parses a flow mode by name or by numeric code.
func ParseFlowMode(s string) (FlowMode, error) {
	switch strings.ToLower(s) {
	case "color", "1":
		return FlowColor, nil
	case "ct", "2":
		return FlowCT, nil
	case "sleep", "7":
		return FlowSleep, nil
	}
	return 0, fmt.Errorf("unknown flow mode %q (valid: color/1 ct/2 sleep/7)", s)
}

// FlowTuple is one step of a color flow: a duration, a change kind, a
// target value (RGB color for color mode, kelvin for ct mode, ignored
// by sleep) and a brightness percentage (1..100, or -1 to keep the
// previous value; ignored by sleep).
type FlowTuple struct {
	Duration   time.Duration
	Mode       FlowMode
	Value      uint32
	Brightness int8
}

// RGBTuple builds a color-change tuple.
func RGBTuple(d time.Duration, rgb uint32, brightness int8) FlowTuple {
	return FlowTuple{Duration: d, Mode: FlowColor, Value: rgb, Brightness: brightness}
}

// CTTuple builds a color-temperature-change tuple.
func CTTuple(d time.Duration, kelvin uint32, brightness int8) FlowTuple {
	return FlowTuple{Duration: d, Mode: FlowCT, Value: kelvin, Brightness: brightness}
}

// SleepTuple builds a tuple that holds the current state for d.
func SleepTuple(d time.Duration) FlowTuple {
	return FlowTuple{Duration: d, Mode: FlowSleep, Value: 0, Brightness: -1}
}

// encode renders the tuple as "duration,mode,value,brightness" with the
// duration in milliseconds.
func (t FlowTuple) encode() string {
	return fmt.Sprintf("%d,%d,%d,%d", t.Duration.Milliseconds(), t.Mode, t.Value, t.Brightness)
}

// FlowExpression is an ordered series of flow tuples. On the wire the
// whole expression is a single quoted string of comma-joined tuples,
// the device protocol's own sub-encoding inside one JSON parameter.
type FlowExpression []FlowTuple

// Encode renders the expression's unquoted sub-encoding.
func (e FlowExpression) Encode() string {
	parts := make([]string, len(e))
	for i, t := range e {
		parts[i] = t.encode()
	}
	return strings.Join(parts, ",")
}

// Param renders the expression as one quoted string parameter.
func (e FlowExpression) Param() Param {
	return String(e.Encode())
}

// ParseFlowExpression parses a comma-joined tuple list. The mode field
// accepts both numeric codes and names, matching what users type on a
// command line.
func ParseFlowExpression(s string) (FlowExpression, error) {
	fields := strings.Split(s, ",")
	if len(fields) == 0 || len(fields)%4 != 0 {
		return nil, fmt.Errorf("flow expression needs groups of 4 fields (duration,mode,value,brightness), got %d fields", len(fields))
	}

	expr := make(FlowExpression, 0, len(fields)/4)
	for i := 0; i < len(fields); i += 4 {
		ms, err := strconv.ParseUint(strings.TrimSpace(fields[i]), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("flow tuple %d: bad duration: %w", i/4, err)
		}
		mode, err := ParseFlowMode(strings.TrimSpace(fields[i+1]))
		if err != nil {
			return nil, fmt.Errorf("flow tuple %d: %w", i/4, err)
		}
		value, err := strconv.ParseUint(strings.TrimSpace(fields[i+2]), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("flow tuple %d: bad value: %w", i/4, err)
		}
		brightness, err := strconv.ParseInt(strings.TrimSpace(fields[i+3]), 10, 8)
		if err != nil {
			return nil, fmt.Errorf("flow tuple %d: bad brightness: %w", i/4, err)
		}
		expr = append(expr, FlowTuple{
			Duration:   time.Duration(ms) * time.Millisecond,
			Mode:       mode,
			Value:      uint32(value),
			Brightness: int8(brightness),
		})
	}
	return expr, nil
}
