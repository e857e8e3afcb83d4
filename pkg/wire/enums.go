package wire

import (
	"fmt"
	"strings"
)

// Property identifies a readable device property (get_prop, notifications).
type Property uint8

const (
	PropertyPower Property = iota
	PropertyBright
	PropertyCT
	PropertyRGB
	PropertyHue
	PropertySat
	PropertyColorMode
	PropertyFlowing
	PropertyDelayOff
	PropertyFlowParams
	PropertyMusicOn
	PropertyName
	PropertyBgPower
	PropertyBgFlowing
	PropertyBgFlowParams
	PropertyBgCT
	PropertyBgColorMode
	PropertyBgBright
	PropertyBgRGB
	PropertyBgHue
	PropertyBgSat
	PropertyNightLightBright
	PropertyActiveMode
)

// propertyNames is the stable wire encoding table for Property.
// Keep this table in sync with ParseProperty.
var propertyNames = [...]string{
	PropertyPower:            "power",
	PropertyBright:           "bright",
	PropertyCT:               "ct",
	PropertyRGB:              "rgb",
	PropertyHue:              "hue",
	PropertySat:              "sat",
	PropertyColorMode:        "color_mode",
	PropertyFlowing:          "flowing",
	PropertyDelayOff:         "delayoff",
	PropertyFlowParams:       "flow_params",
	PropertyMusicOn:          "music_on",
	PropertyName:             "name",
	PropertyBgPower:          "bg_power",
	PropertyBgFlowing:        "bg_flowing",
	PropertyBgFlowParams:     "bg_flow_params",
	PropertyBgCT:             "bg_ct",
	PropertyBgColorMode:      "bg_lmode",
	PropertyBgBright:         "bg_bright",
	PropertyBgRGB:            "bg_rgb",
	PropertyBgHue:            "bg_hue",
	PropertyBgSat:            "bg_sat",
	PropertyNightLightBright: "nl_br",
	PropertyActiveMode:       "active_mode",
}

// String returns the property's wire name.
func (p Property) String() string {
	if int(p) < len(propertyNames) {
		return propertyNames[p]
	}
	return "unknown"
}

// Param renders the property as a quoted string parameter.
func (p Property) Param() Param {
	return String(p.String())
}

// ParseProperty parses a wire property name (case-insensitive).
func ParseProperty(s string) (Property, error) {
	name := strings.ToLower(s)
	for i, n := range propertyNames {
		if n == name {
			return Property(i), nil
		}
	}
	return 0, fmt.Errorf("unknown property %q (valid: %s)", s, strings.Join(propertyNames[:], " "))
}

// PropertyNames lists all wire property names, in table order.
func PropertyNames() []string {
	names := make([]string, len(propertyNames))
	copy(names, propertyNames[:])
	return names
}

// Properties is an ordered property list for get_prop. Each property
// becomes its own quoted positional parameter; result values follow
// the same order.
type Properties []Property

// Params renders the list as positional parameters.
func (ps Properties) Params() []Param {
	params := make([]Param, len(ps))
	for i, p := range ps {
		params[i] = p.Param()
	}
	return params
}

// Power is the bulb power state.
type Power uint8

const (
	PowerOn Power = iota
	PowerOff
)

// String returns the power state's wire name.
func (p Power) String() string {
	if p == PowerOff {
		return "off"
	}
	return "on"
}

// Param renders the power state as a quoted string parameter.
func (p Power) Param() Param {
	return String(p.String())
}

// ParsePower parses "on" or "off" (case-insensitive).
func ParsePower(s string) (Power, error) {
	switch strings.ToLower(s) {
	case "on":
		return PowerOn, nil
	case "off":
		return PowerOff, nil
	}
	return 0, fmt.Errorf("unknown power state %q (valid: on off)", s)
}

// Effect specifies how a change is applied: directly (sudden, the
// duration parameter is ignored) or gradually over the given duration.
type Effect uint8

const (
	EffectSmooth Effect = iota
	EffectSudden
)

// String returns the effect's wire name.
func (e Effect) String() string {
	if e == EffectSudden {
		return "sudden"
	}
	return "smooth"
}

// Param renders the effect as a quoted string parameter.
func (e Effect) Param() Param {
	return String(e.String())
}

// ParseEffect parses "smooth" or "sudden" (case-insensitive).
func ParseEffect(s string) (Effect, error) {
	switch strings.ToLower(s) {
	case "smooth":
		return EffectSmooth, nil
	case "sudden":
		return EffectSudden, nil
	}
	return 0, fmt.Errorf("unknown effect %q (valid: smooth sudden)", s)
}

// AdjustProp is the property targeted by set_adjust and the adjust_*
// commands. When the property is color, the action must be circle.
type AdjustProp uint8

const (
	AdjustBright AdjustProp = iota
	AdjustCT
	AdjustColor
)

// String returns the adjust property's wire name.
func (p AdjustProp) String() string {
	switch p {
	case AdjustCT:
		return "ct"
	case AdjustColor:
		return "color"
	default:
		return "bright"
	}
}

// Param renders the adjust property as a quoted string parameter.
func (p AdjustProp) Param() Param {
	return String(p.String())
}

// ParseAdjustProp parses "bright", "ct" or "color" (case-insensitive).
func ParseAdjustProp(s string) (AdjustProp, error) {
	switch strings.ToLower(s) {
	case "bright":
		return AdjustBright, nil
	case "ct":
		return AdjustCT, nil
	case "color":
		return AdjustColor, nil
	}
	return 0, fmt.Errorf("unknown adjust property %q (valid: bright ct color)", s)
}

// AdjustAction is the direction of a set_adjust change.
type AdjustAction uint8

const (
	AdjustIncrease AdjustAction = iota
	AdjustDecrease
	AdjustCircle
)

// String returns the adjust action's wire name.
func (a AdjustAction) String() string {
	switch a {
	case AdjustDecrease:
		return "decrease"
	case AdjustCircle:
		return "circle"
	default:
		return "increase"
	}
}

// Param renders the adjust action as a quoted string parameter.
func (a AdjustAction) Param() Param {
	return String(a.String())
}

// ParseAdjustAction parses "increase", "decrease" or "circle" (case-insensitive).
func ParseAdjustAction(s string) (AdjustAction, error) {
	switch strings.ToLower(s) {
	case "increase":
		return AdjustIncrease, nil
	case "decrease":
		return AdjustDecrease, nil
	case "circle":
		return AdjustCircle, nil
	}
	return 0, fmt.Errorf("unknown adjust action %q (valid: increase decrease circle)", s)
}

// SceneClass selects the set_scene variant.
type SceneClass uint8

const (
	SceneColor SceneClass = iota
	SceneHSV
	SceneCT
	SceneCF
	SceneAutoDelayOff
)

// String returns the scene class's wire name.
func (c SceneClass) String() string {
	switch c {
	case SceneHSV:
		return "hsv"
	case SceneCT:
		return "ct"
	case SceneCF:
		return "cf"
	case SceneAutoDelayOff:
		return "auto_delay_off"
	default:
		return "color"
	}
}

// Param renders the scene class as a quoted string parameter.
func (c SceneClass) Param() Param {
	return String(c.String())
}

// ParseSceneClass parses a scene class wire name (case-insensitive).
func ParseSceneClass(s string) (SceneClass, error) {
	switch strings.ToLower(s) {
	case "color":
		return SceneColor, nil
	case "hsv":
		return SceneHSV, nil
	case "ct":
		return SceneCT, nil
	case "cf":
		return SceneCF, nil
	case "auto_delay_off":
		return SceneAutoDelayOff, nil
	}
	return 0, fmt.Errorf("unknown scene class %q (valid: color hsv ct cf auto_delay_off)", s)
}

// PowerMode is the mode a light enters when switched on. It is encoded
// as a bare number on the wire.
type PowerMode uint8

const (
	ModeNormal     PowerMode = 0
	ModeCT         PowerMode = 1
	ModeRGB        PowerMode = 2
	ModeHSV        PowerMode = 3
	ModeCF         PowerMode = 4
	ModeNightLight PowerMode = 5
)

// String returns the mode name.
func (m PowerMode) String() string {
	switch m {
	case ModeCT:
		return "ct"
	case ModeRGB:
		return "rgb"
	case ModeHSV:
		return "hsv"
	case ModeCF:
		return "cf"
	case ModeNightLight:
		return "nightlight"
	default:
		return "normal"
	}
}

// Param renders the mode as a bare number parameter.
func (m PowerMode) Param() Param {
	return Uint(uint64(m))
}

// ParsePowerMode parses a mode name (case-insensitive).
func ParsePowerMode(s string) (PowerMode, error) {
	switch strings.ToLower(s) {
	case "normal":
		return ModeNormal, nil
	case "ct":
		return ModeCT, nil
	case "rgb":
		return ModeRGB, nil
	case "hsv":
		return ModeHSV, nil
	case "cf":
		return ModeCF, nil
	case "nightlight":
		return ModeNightLight, nil
	}
	return 0, fmt.Errorf("unknown power mode %q (valid: normal ct rgb hsv cf nightlight)", s)
}

// CronType identifies a timer job kind. The device protocol currently
// defines only the power-off timer.
type CronType uint8

const (
	CronPowerOff CronType = 0
)

// Param renders the cron type as a bare number parameter.
func (c CronType) Param() Param {
	return Uint(uint64(c))
}

// FlowAction is what the light does after a color flow ends.
type FlowAction uint8

const (
	// FlowRecover restores the state from before the flow.
	FlowRecover FlowAction = 0
	// FlowStay keeps the state of the flow's last tuple.
	FlowStay FlowAction = 1
	// FlowOff turns the light off.
	FlowOff FlowAction = 2
)

// String returns the flow action name.
func (a FlowAction) String() string {
	switch a {
	case FlowStay:
		return "stay"
	case FlowOff:
		return "off"
	default:
		return "recover"
	}
}

// Param renders the flow action as a bare number parameter.
func (a FlowAction) Param() Param {
	return Uint(uint64(a))
}

// ParseFlowAction parses a flow action name (case-insensitive).
func ParseFlowAction(s string) (FlowAction, error) {
	switch strings.ToLower(s) {
	case "recover":
		return FlowRecover, nil
	case "stay":
		return FlowStay, nil
	case "off":
		return FlowOff, nil
	}
	return 0, fmt.Errorf("unknown flow action %q (valid: recover stay off)", s)
}

// MusicAction starts or stops music mode.
type MusicAction uint8

const (
	MusicOff MusicAction = 0
	MusicOn  MusicAction = 1
)

// Param renders the music action as a bare number parameter.
func (a MusicAction) Param() Param {
	return Uint(uint64(a))
}
