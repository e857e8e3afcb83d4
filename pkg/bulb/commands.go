package bulb

import (
	"context"
	"fmt"
	"time"

	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

// defaultTransition is the smooth-change duration used by the On/Off
// shorthands.
const defaultTransition = 500 * time.Millisecond

// call transmits a command and discards its "ok" result. Most of the
// catalog flows through here; only get_prop and cron_get keep values.
func (b *Bulb) call(ctx context.Context, method string, params ...wire.Param) error {
	_, err := b.client.Invoke(ctx, method, params)
	return err
}

// GetProp reads the given properties. Values come back as strings, one
// per requested property, in request order; properties the device does
// not support come back empty.
func (b *Bulb) GetProp(ctx context.Context, props ...wire.Property) ([]string, error) {
	return b.client.Invoke(ctx, "get_prop", wire.Properties(props).Params())
}

// SetPower switches the main light on or off. mode selects the state
// the light enters when switched on (wire.ModeNormal keeps the previous
// one).
func (b *Bulb) SetPower(ctx context.Context, power wire.Power, effect wire.Effect, duration time.Duration, mode wire.PowerMode) error {
	return b.call(ctx, "set_power", power.Param(), effect.Param(), wire.DurationMillis(duration), mode.Param())
}

// BgSetPower switches the background light on or off.
func (b *Bulb) BgSetPower(ctx context.Context, power wire.Power, effect wire.Effect, duration time.Duration, mode wire.PowerMode) error {
	return b.call(ctx, "bg_set_power", power.Param(), effect.Param(), wire.DurationMillis(duration), mode.Param())
}

// On switches the main light on with a smooth transition.
func (b *Bulb) On(ctx context.Context) error {
	return b.SetPower(ctx, wire.PowerOn, wire.EffectSmooth, defaultTransition, wire.ModeNormal)
}

// Off switches the main light off with a smooth transition.
func (b *Bulb) Off(ctx context.Context) error {
	return b.SetPower(ctx, wire.PowerOff, wire.EffectSmooth, defaultTransition, wire.ModeNormal)
}

// Toggle flips the main light's power state.
func (b *Bulb) Toggle(ctx context.Context) error {
	return b.call(ctx, "toggle")
}

// BgToggle flips the background light's power state.
func (b *Bulb) BgToggle(ctx context.Context) error {
	return b.call(ctx, "bg_toggle")
}

// DevToggle flips main and background light together.
func (b *Bulb) DevToggle(ctx context.Context) error {
	return b.call(ctx, "dev_toggle")
}

// SetCtAbx changes the color temperature (1700..6500 kelvin).
func (b *Bulb) SetCtAbx(ctx context.Context, kelvin uint16, effect wire.Effect, duration time.Duration) error {
	return b.call(ctx, "set_ct_abx", wire.Uint(uint64(kelvin)), effect.Param(), wire.DurationMillis(duration))
}

// BgSetCtAbx changes the background light's color temperature.
func (b *Bulb) BgSetCtAbx(ctx context.Context, kelvin uint16, effect wire.Effect, duration time.Duration) error {
	return b.call(ctx, "bg_set_ct_abx", wire.Uint(uint64(kelvin)), effect.Param(), wire.DurationMillis(duration))
}

// SetRGB changes the color (0xRRGGBB).
func (b *Bulb) SetRGB(ctx context.Context, rgb uint32, effect wire.Effect, duration time.Duration) error {
	return b.call(ctx, "set_rgb", wire.Uint(uint64(rgb)), effect.Param(), wire.DurationMillis(duration))
}

// BgSetRGB changes the background light's color.
func (b *Bulb) BgSetRGB(ctx context.Context, rgb uint32, effect wire.Effect, duration time.Duration) error {
	return b.call(ctx, "bg_set_rgb", wire.Uint(uint64(rgb)), effect.Param(), wire.DurationMillis(duration))
}

// SetHSV changes the color by hue (0..359) and saturation (0..100).
func (b *Bulb) SetHSV(ctx context.Context, hue uint16, sat uint8, effect wire.Effect, duration time.Duration) error {
	return b.call(ctx, "set_hsv", wire.Uint(uint64(hue)), wire.Uint(uint64(sat)), effect.Param(), wire.DurationMillis(duration))
}

// BgSetHSV changes the background light's hue and saturation.
func (b *Bulb) BgSetHSV(ctx context.Context, hue uint16, sat uint8, effect wire.Effect, duration time.Duration) error {
	return b.call(ctx, "bg_set_hsv", wire.Uint(uint64(hue)), wire.Uint(uint64(sat)), effect.Param(), wire.DurationMillis(duration))
}

// SetBright changes the brightness (1..100).
func (b *Bulb) SetBright(ctx context.Context, brightness uint8, effect wire.Effect, duration time.Duration) error {
	return b.call(ctx, "set_bright", wire.Uint(uint64(brightness)), effect.Param(), wire.DurationMillis(duration))
}

// BgSetBright changes the background light's brightness.
func (b *Bulb) BgSetBright(ctx context.Context, brightness uint8, effect wire.Effect, duration time.Duration) error {
	return b.call(ctx, "bg_set_bright", wire.Uint(uint64(brightness)), effect.Param(), wire.DurationMillis(duration))
}

// SetScene puts the light into a scene regardless of its power state.
// The meaning of args depends on class: color takes rgb and brightness,
// hsv takes hue, sat and brightness, ct takes kelvin and brightness, cf
// takes the start_cf parameter triple, auto_delay_off takes brightness
// and minutes.
func (b *Bulb) SetScene(ctx context.Context, class wire.SceneClass, args ...wire.Param) error {
	return b.call(ctx, "set_scene", append([]wire.Param{class.Param()}, args...)...)
}

// BgSetScene puts the background light into a scene.
func (b *Bulb) BgSetScene(ctx context.Context, class wire.SceneClass, args ...wire.Param) error {
	return b.call(ctx, "bg_set_scene", append([]wire.Param{class.Param()}, args...)...)
}

// SetDefault saves the current state as the light's power-on default.
func (b *Bulb) SetDefault(ctx context.Context) error {
	return b.call(ctx, "set_default")
}

// BgSetDefault saves the background light's current state as default.
func (b *Bulb) BgSetDefault(ctx context.Context) error {
	return b.call(ctx, "bg_set_default")
}

// StartColorFlow starts a color flow. count is the number of tuples to
// run before action applies; 0 loops forever.
func (b *Bulb) StartColorFlow(ctx context.Context, count uint8, action wire.FlowAction, expr wire.FlowExpression) error {
	return b.call(ctx, "start_cf", wire.Uint(uint64(count)), action.Param(), expr.Param())
}

// BgStartColorFlow starts a color flow on the background light.
func (b *Bulb) BgStartColorFlow(ctx context.Context, count uint8, action wire.FlowAction, expr wire.FlowExpression) error {
	return b.call(ctx, "bg_start_cf", wire.Uint(uint64(count)), action.Param(), expr.Param())
}

// StopColorFlow stops a running color flow.
func (b *Bulb) StopColorFlow(ctx context.Context) error {
	return b.call(ctx, "stop_cf")
}

// BgStopColorFlow stops a color flow on the background light.
func (b *Bulb) BgStopColorFlow(ctx context.Context) error {
	return b.call(ctx, "bg_stop_cf")
}

// SetAdjust nudges a property one step without an absolute target. For
// wire.AdjustColor the action must be wire.AdjustCircle.
func (b *Bulb) SetAdjust(ctx context.Context, action wire.AdjustAction, prop wire.AdjustProp) error {
	return b.call(ctx, "set_adjust", action.Param(), prop.Param())
}

// BgSetAdjust nudges a background light property one step.
func (b *Bulb) BgSetAdjust(ctx context.Context, action wire.AdjustAction, prop wire.AdjustProp) error {
	return b.call(ctx, "bg_set_adjust", action.Param(), prop.Param())
}

// AdjustBright changes brightness by a relative percentage (-100..100).
func (b *Bulb) AdjustBright(ctx context.Context, percentage int8, duration time.Duration) error {
	return b.call(ctx, "adjust_bright", wire.Int(int64(percentage)), wire.DurationMillis(duration))
}

// BgAdjustBright changes the background light's brightness relatively.
func (b *Bulb) BgAdjustBright(ctx context.Context, percentage int8, duration time.Duration) error {
	return b.call(ctx, "bg_adjust_bright", wire.Int(int64(percentage)), wire.DurationMillis(duration))
}

// AdjustCt changes color temperature by a relative percentage.
func (b *Bulb) AdjustCt(ctx context.Context, percentage int8, duration time.Duration) error {
	return b.call(ctx, "adjust_ct", wire.Int(int64(percentage)), wire.DurationMillis(duration))
}

// BgAdjustCt changes the background light's color temperature relatively.
func (b *Bulb) BgAdjustCt(ctx context.Context, percentage int8, duration time.Duration) error {
	return b.call(ctx, "bg_adjust_ct", wire.Int(int64(percentage)), wire.DurationMillis(duration))
}

// AdjustColor rotates the color by a relative percentage.
func (b *Bulb) AdjustColor(ctx context.Context, percentage int8, duration time.Duration) error {
	return b.call(ctx, "adjust_color", wire.Int(int64(percentage)), wire.DurationMillis(duration))
}

// BgAdjustColor rotates the background light's color relatively.
func (b *Bulb) BgAdjustColor(ctx context.Context, percentage int8, duration time.Duration) error {
	return b.call(ctx, "bg_adjust_color", wire.Int(int64(percentage)), wire.DurationMillis(duration))
}

// SetName stores a name on the device.
func (b *Bulb) SetName(ctx context.Context, name string) error {
	return b.call(ctx, "set_name", wire.String(name))
}

// CronAdd schedules a timer job. For wire.CronPowerOff the light turns
// off after the given delay. The device keeps minute resolution, so
// the delay is rounded to the nearest minute. Negative delays are
// rejected.
func (b *Bulb) CronAdd(ctx context.Context, t wire.CronType, after time.Duration) error {
	if after < 0 {
		return fmt.Errorf("timer delay %v is negative", after)
	}
	minutes := uint64(after.Round(time.Minute) / time.Minute)
	return b.call(ctx, "cron_add", t.Param(), wire.Uint(minutes))
}

// CronGet reads the remaining values of a timer job.
func (b *Bulb) CronGet(ctx context.Context, t wire.CronType) ([]string, error) {
	return b.client.Invoke(ctx, "cron_get", []wire.Param{t.Param()})
}

// CronDel cancels a timer job.
func (b *Bulb) CronDel(ctx context.Context, t wire.CronType) error {
	return b.call(ctx, "cron_del", t.Param())
}

// SetMusic starts or stops music mode. With wire.MusicOn the device
// connects back to host:port; StartMusic handles the whole handshake.
func (b *Bulb) SetMusic(ctx context.Context, action wire.MusicAction, host string, port uint16) error {
	if action == wire.MusicOff {
		return b.call(ctx, "set_music", action.Param())
	}
	return b.call(ctx, "set_music", action.Param(), wire.String(host), wire.Uint(uint64(port)))
}
