// Package presets is a catalog of ready-made light moods: static scenes
// and color flows applied with one call.
package presets

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/yeelight-protocol/yeelight-go/pkg/bulb"
	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

// Preset is one named mood.
type Preset struct {
	// Name identifies the preset (kebab-case, as typed on a command line).
	Name string

	value value
}

// Apply puts the bulb into the preset's scene or flow.
func (p Preset) Apply(ctx context.Context, b *bulb.Bulb) error {
	return p.value.apply(ctx, b)
}

type value interface {
	apply(ctx context.Context, b *bulb.Bulb) error
}

// rgbScene sets a fixed color through set_scene, switching the light on
// if needed.
type rgbScene struct {
	rgb    uint32
	bright uint8
}

func (s rgbScene) apply(ctx context.Context, b *bulb.Bulb) error {
	return b.SetScene(ctx, wire.SceneColor, wire.Uint(uint64(s.rgb)), wire.Uint(uint64(s.bright)), wire.Uint(0))
}

type hsvScene struct {
	hue    uint16
	sat    uint8
	bright uint8
}

func (s hsvScene) apply(ctx context.Context, b *bulb.Bulb) error {
	return b.SetScene(ctx, wire.SceneHSV, wire.Uint(uint64(s.hue)), wire.Uint(uint64(s.sat)), wire.Uint(uint64(s.bright)))
}

type ctScene struct {
	kelvin uint16
	bright uint8
}

func (s ctScene) apply(ctx context.Context, b *bulb.Bulb) error {
	return b.SetScene(ctx, wire.SceneCT, wire.Uint(uint64(s.kelvin)), wire.Uint(uint64(s.bright)), wire.Uint(0))
}

type flow struct {
	expr   wire.FlowExpression
	count  uint8
	action wire.FlowAction
}

func (f flow) apply(ctx context.Context, b *bulb.Bulb) error {
	return b.StartColorFlow(ctx, f.count, f.action, f.expr)
}

const (
	red   = 0xFF0000
	green = 0x00FF00
	blue  = 0x0000FF
)

var catalog = map[string]value{
	"candle":        candle(),
	"reading":       ctScene{3500, 100},
	"night-reading": ctScene{4000, 40},
	"cosy-home":     ctScene{2700, 80},
	"romantic":      romantic(),
	"birthday":      birthday(),
	"date-night":    hsvScene{24, 100, 50},
	"teatime":       ctScene{3000, 50},
	"pc-mode":       ctScene{2700, 30},
	"concentration": ctScene{5000, 100},
	"movie":         hsvScene{240, 60, 50},
	"night":         hsvScene{36, 100, 1},
	"notify":        notify(300*time.Millisecond, 6),
	"notify2":       notify(200*time.Millisecond, 4),

	"red":   rgbScene{red, 100},
	"green": rgbScene{green, 100},
	"blue":  rgbScene{blue, 100},

	"pulse-red":   pulse(red, 100, 250*time.Millisecond),
	"pulse-green": pulse(green, 100, 250*time.Millisecond),
	"pulse-blue":  pulse(blue, 100, 250*time.Millisecond),

	"police":  police(100),
	"police2": police2(100),
	"disco":   disco(120),
	"temp":    temp(2600, 5000, 100),
}

// Lookup finds a preset by name.
func Lookup(name string) (Preset, bool) {
	v, ok := catalog[name]
	if !ok {
		return Preset{}, false
	}
	return Preset{Name: name, value: v}, true
}

// Apply looks up and applies a preset in one step.
func Apply(ctx context.Context, b *bulb.Bulb, name string) error {
	p, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("unknown preset %q", name)
	}
	return p.Apply(ctx, b)
}

// Names lists all preset names, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func candle() value {
	const ct = 2700
	return flow{
		expr: wire.FlowExpression{
			wire.CTTuple(800*time.Millisecond, ct, 50),
			wire.CTTuple(800*time.Millisecond, ct, 30),
			wire.CTTuple(1200*time.Millisecond, ct, 80),
			wire.CTTuple(800*time.Millisecond, ct, 60),
			wire.CTTuple(1200*time.Millisecond, ct, 90),
			wire.CTTuple(2400*time.Millisecond, ct, 50),
			wire.CTTuple(1200*time.Millisecond, ct, 80),
			wire.CTTuple(800*time.Millisecond, ct, 60),
			wire.CTTuple(400*time.Millisecond, ct, 70),
		},
		count:  0,
		action: wire.FlowStay,
	}
}

func romantic() value {
	return flow{
		expr: wire.FlowExpression{
			wire.RGBTuple(4*time.Second, 0x59156D, 1),
			wire.RGBTuple(4*time.Second, 0x66142A, 1),
		},
		count:  0,
		action: wire.FlowStay,
	}
}

func birthday() value {
	return flow{
		expr: wire.FlowExpression{
			wire.RGBTuple(1996*time.Millisecond, 0xDC5019, 80),
			wire.RGBTuple(1996*time.Millisecond, 0xDC781E, 80),
			wire.RGBTuple(1996*time.Millisecond, 0xAA3214, 80),
		},
		count:  0,
		action: wire.FlowStay,
	}
}

// notify blinks cold white and recovers the previous state.
func notify(d time.Duration, blinks uint8) value {
	const ct = 5000
	expr := make(wire.FlowExpression, 0, blinks)
	for i := uint8(0); i < blinks; i += 2 {
		expr = append(expr,
			wire.CTTuple(d, ct, 100),
			wire.CTTuple(d, ct, 1),
		)
	}
	return flow{expr: expr, count: blinks, action: wire.FlowRecover}
}

func pulse(rgb uint32, bright int8, d time.Duration) value {
	return flow{
		expr: wire.FlowExpression{
			wire.RGBTuple(d, rgb, bright),
			wire.RGBTuple(d, rgb, 1),
		},
		count:  2,
		action: wire.FlowRecover,
	}
}

func police(bright int8) value {
	d := 300 * time.Millisecond
	return flow{
		expr: wire.FlowExpression{
			wire.RGBTuple(d, red, bright),
			wire.RGBTuple(d, blue, bright),
		},
		count:  0,
		action: wire.FlowStay,
	}
}

func police2(bright int8) value {
	d := 300 * time.Millisecond
	return flow{
		expr: wire.FlowExpression{
			wire.RGBTuple(d, red, bright),
			wire.RGBTuple(d, red, 1),
			wire.RGBTuple(d, red, bright),
			wire.SleepTuple(d),
			wire.RGBTuple(d, blue, bright),
			wire.RGBTuple(d, blue, 1),
			wire.RGBTuple(d, blue, bright),
			wire.SleepTuple(d),
		},
		count:  0,
		action: wire.FlowStay,
	}
}

func disco(bpm int) value {
	d := time.Duration(1000/bpm) * time.Millisecond
	return flow{
		expr: wire.FlowExpression{
			wire.RGBTuple(d, 0xFF0000, 100),
			wire.RGBTuple(d, 0xFF0000, 1),
			wire.RGBTuple(d, 0x80FF00, 100),
			wire.RGBTuple(d, 0x80FF00, 1),
			wire.RGBTuple(d, 0x00FFFF, 100),
			wire.RGBTuple(d, 0x00FFFF, 1),
			wire.RGBTuple(d, 0x8000FF, 100),
			wire.RGBTuple(d, 0x8000FF, 1),
		},
		count:  0,
		action: wire.FlowStay,
	}
}

// temp slowly sweeps between two color temperatures.
func temp(a, b uint32, bright int8) value {
	d := 40 * time.Second
	return flow{
		expr: wire.FlowExpression{
			wire.CTTuple(d, a, bright),
			wire.CTTuple(d, b, bright),
		},
		count:  0,
		action: wire.FlowStay,
	}
}
