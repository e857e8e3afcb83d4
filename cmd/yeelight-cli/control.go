package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeelight-protocol/yeelight-go/pkg/bulb"
	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

var (
	flagEffect   string
	flagDuration uint64
	flagMode     string
	flagBg       bool
	flagDev      bool
)

func addTransitionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagEffect, "effect", "e", "smooth", "transition effect (smooth, sudden)")
	cmd.Flags().Uint64VarP(&flagDuration, "duration", "d", 500, "transition duration in ms")
}

func addBgFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagBg, "bg", false, "act on the background light")
}

func transition() (wire.Effect, time.Duration, error) {
	effect, err := wire.ParseEffect(flagEffect)
	if err != nil {
		return 0, 0, err
	}
	return effect, time.Duration(flagDuration) * time.Millisecond, nil
}

var getCmd = &cobra.Command{
	Use:   "get <property>...",
	Short: "Read properties",
	Long:  "Read properties. Valid names: " + joinNames(wire.PropertyNames()),
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		props := make([]wire.Property, len(args))
		for i, arg := range args {
			p, err := wire.ParseProperty(arg)
			if err != nil {
				return err
			}
			props[i] = p
		}

		ctx, cancel := commandContext(true)
		defer cancel()
		b, err := connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		values, err := b.GetProp(ctx, props...)
		if err != nil {
			return err
		}
		for i, v := range values {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", props[i], v)
		}
		return nil
	},
}

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn the light on",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPower(wire.PowerOn)
	},
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn the light off",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPower(wire.PowerOff)
	},
}

func runPower(power wire.Power) error {
	effect, duration, err := transition()
	if err != nil {
		return err
	}
	mode, err := wire.ParsePowerMode(flagMode)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(true)
	defer cancel()
	b, err := connect(ctx)
	if err != nil {
		return err
	}
	defer b.Close()

	if flagBg {
		return b.BgSetPower(ctx, power, effect, duration, mode)
	}
	return b.SetPower(ctx, power, effect, duration, mode)
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Flip the light's power state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(true)
		defer cancel()
		b, err := connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		switch {
		case flagBg:
			return b.BgToggle(ctx)
		case flagDev:
			return b.DevToggle(ctx)
		default:
			return b.Toggle(ctx)
		}
	},
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a value on the light",
}

var setPowerCmd = &cobra.Command{
	Use:   "power <on|off> [mode]",
	Short: "Set the power state",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 2 {
			flagMode = args[1]
		}
		power, err := wire.ParsePower(args[0])
		if err != nil {
			return err
		}
		return runPower(power)
	},
}

var setCtCmd = &cobra.Command{
	Use:   "ct <kelvin>",
	Short: "Set the color temperature (1700..6500)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kelvin, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return fmt.Errorf("color temperature %q: %w", args[0], err)
		}
		return runTransitionCommand(func(ctx context.Context, b *bulb.Bulb, e wire.Effect, d time.Duration) error {
			if flagBg {
				return b.BgSetCtAbx(ctx, uint16(kelvin), e, d)
			}
			return b.SetCtAbx(ctx, uint16(kelvin), e, d)
		})
	},
}

var setRGBCmd = &cobra.Command{
	Use:   "rgb <value>",
	Short: "Set the color (decimal or 0xRRGGBB)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rgb, err := strconv.ParseUint(args[0], 0, 32)
		if err != nil {
			return fmt.Errorf("rgb value %q: %w", args[0], err)
		}
		return runTransitionCommand(func(ctx context.Context, b *bulb.Bulb, e wire.Effect, d time.Duration) error {
			if flagBg {
				return b.BgSetRGB(ctx, uint32(rgb), e, d)
			}
			return b.SetRGB(ctx, uint32(rgb), e, d)
		})
	},
}

var setHSVCmd = &cobra.Command{
	Use:   "hsv <hue> [sat]",
	Short: "Set hue (0..359) and saturation (0..100, default 100)",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hue, err := strconv.ParseUint(args[0], 10, 16)
		if err != nil {
			return fmt.Errorf("hue %q: %w", args[0], err)
		}
		sat := uint64(100)
		if len(args) == 2 {
			sat, err = strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return fmt.Errorf("saturation %q: %w", args[1], err)
			}
		}
		return runTransitionCommand(func(ctx context.Context, b *bulb.Bulb, e wire.Effect, d time.Duration) error {
			if flagBg {
				return b.BgSetHSV(ctx, uint16(hue), uint8(sat), e, d)
			}
			return b.SetHSV(ctx, uint16(hue), uint8(sat), e, d)
		})
	},
}

var setBrightCmd = &cobra.Command{
	Use:   "bright <value>",
	Short: "Set the brightness (1..100)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		brightness, err := strconv.ParseUint(args[0], 10, 8)
		if err != nil {
			return fmt.Errorf("brightness %q: %w", args[0], err)
		}
		return runTransitionCommand(func(ctx context.Context, b *bulb.Bulb, e wire.Effect, d time.Duration) error {
			if flagBg {
				return b.BgSetBright(ctx, uint8(brightness), e, d)
			}
			return b.SetBright(ctx, uint8(brightness), e, d)
		})
	},
}

var setNameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Store a name on the device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransitionCommand(func(ctx context.Context, b *bulb.Bulb, _ wire.Effect, _ time.Duration) error {
			return b.SetName(ctx, args[0])
		})
	},
}

var setSceneCmd = &cobra.Command{
	Use:   "scene <class> <val1> [val2] [val3]",
	Short: "Set a scene (class: color, hsv, ct, cf, auto_delay_off)",
	Args:  cobra.RangeArgs(2, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		class, err := wire.ParseSceneClass(args[0])
		if err != nil {
			return err
		}
		vals := []uint64{0, 100, 100}
		for i, arg := range args[1:] {
			v, err := strconv.ParseUint(arg, 0, 64)
			if err != nil {
				return fmt.Errorf("scene value %q: %w", arg, err)
			}
			vals[i] = v
		}
		return runTransitionCommand(func(ctx context.Context, b *bulb.Bulb, _ wire.Effect, _ time.Duration) error {
			params := []wire.Param{wire.Uint(vals[0]), wire.Uint(vals[1]), wire.Uint(vals[2])}
			if flagBg {
				return b.BgSetScene(ctx, class, params...)
			}
			return b.SetScene(ctx, class, params...)
		})
	},
}

var setDefaultCmd = &cobra.Command{
	Use:   "default",
	Short: "Save the current state as the power-on default",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTransitionCommand(func(ctx context.Context, b *bulb.Bulb, _ wire.Effect, _ time.Duration) error {
			if flagBg {
				return b.BgSetDefault(ctx)
			}
			return b.SetDefault(ctx)
		})
	},
}

var adjustCmd = &cobra.Command{
	Use:   "adjust <bright|ct|color> <increase|decrease|circle>",
	Short: "Nudge a property one step",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prop, err := wire.ParseAdjustProp(args[0])
		if err != nil {
			return err
		}
		action, err := wire.ParseAdjustAction(args[1])
		if err != nil {
			return err
		}
		return runTransitionCommand(func(ctx context.Context, b *bulb.Bulb, _ wire.Effect, _ time.Duration) error {
			if flagBg {
				return b.BgSetAdjust(ctx, action, prop)
			}
			return b.SetAdjust(ctx, action, prop)
		})
	},
}

var adjustPercentCmd = &cobra.Command{
	Use:   "adjust-percent <bright|ct|color> <percent>",
	Short: "Change a property by a relative percentage (-100..100)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		prop, err := wire.ParseAdjustProp(args[0])
		if err != nil {
			return err
		}
		percent, err := strconv.ParseInt(args[1], 10, 8)
		if err != nil {
			return fmt.Errorf("percent %q: %w", args[1], err)
		}
		return runTransitionCommand(func(ctx context.Context, b *bulb.Bulb, _ wire.Effect, d time.Duration) error {
			p := int8(percent)
			switch prop {
			case wire.AdjustCT:
				if flagBg {
					return b.BgAdjustCt(ctx, p, d)
				}
				return b.AdjustCt(ctx, p, d)
			case wire.AdjustColor:
				if flagBg {
					return b.BgAdjustColor(ctx, p, d)
				}
				return b.AdjustColor(ctx, p, d)
			default:
				if flagBg {
					return b.BgAdjustBright(ctx, p, d)
				}
				return b.AdjustBright(ctx, p, d)
			}
		})
	},
}

func init() {
	addBgFlag(onCmd)
	addBgFlag(offCmd)
	for _, cmd := range []*cobra.Command{onCmd, offCmd} {
		addTransitionFlags(cmd)
		cmd.Flags().StringVarP(&flagMode, "mode", "m", "normal", "mode entered when switched on (normal, ct, rgb, hsv, cf, nightlight)")
	}

	toggleCmd.Flags().BoolVar(&flagBg, "bg", false, "toggle the background light")
	toggleCmd.Flags().BoolVar(&flagDev, "dev", false, "toggle main and background light together")
	toggleCmd.MarkFlagsMutuallyExclusive("bg", "dev")

	setCmd.PersistentFlags().StringVarP(&flagEffect, "effect", "e", "smooth", "transition effect (smooth, sudden)")
	setCmd.PersistentFlags().Uint64VarP(&flagDuration, "duration", "d", 500, "transition duration in ms")
	flagMode = "normal"
	for _, cmd := range []*cobra.Command{
		setPowerCmd, setCtCmd, setRGBCmd, setHSVCmd,
		setBrightCmd, setNameCmd, setSceneCmd, setDefaultCmd,
	} {
		addBgFlag(cmd)
		setCmd.AddCommand(cmd)
	}

	addBgFlag(adjustCmd)
	addBgFlag(adjustPercentCmd)
	addTransitionFlags(adjustPercentCmd)

	rootCmd.AddCommand(getCmd, onCmd, offCmd, toggleCmd, setCmd, adjustCmd, adjustPercentCmd)
}
