package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/yeelight-protocol/yeelight-go/pkg/bulb"
	"github.com/yeelight-protocol/yeelight-go/pkg/presets"
	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Drive one light from an interactive shell",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dialCtx, cancel := commandContext(true)
		b, err := connect(dialCtx)
		cancel()
		if err != nil {
			return err
		}
		defer b.Close()

		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "yeelight> ",
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
			AutoComplete:    shellCompleter(),
		})
		if err != nil {
			return err
		}
		defer rl.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "Connected to %s. Type help for commands, exit to leave.\n", b.RemoteAddr())
		for {
			line, err := rl.Readline()
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}

			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if fields[0] == "exit" || fields[0] == "quit" {
				return nil
			}

			if err := runShellCommand(cmd, b, fields); err != nil {
				if errors.Is(err, bulb.ErrConnectionClosed) {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "error:", err)
			}
		}
	},
}

func shellCompleter() readline.AutoCompleter {
	propItems := make([]readline.PrefixCompleterInterface, 0, len(wire.PropertyNames()))
	for _, name := range wire.PropertyNames() {
		propItems = append(propItems, readline.PcItem(name))
	}
	presetItems := make([]readline.PrefixCompleterInterface, 0, len(presets.Names()))
	for _, name := range presets.Names() {
		presetItems = append(presetItems, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("get", propItems...),
		readline.PcItem("on"),
		readline.PcItem("off"),
		readline.PcItem("toggle"),
		readline.PcItem("bright"),
		readline.PcItem("ct"),
		readline.PcItem("rgb"),
		readline.PcItem("hsv"),
		readline.PcItem("name"),
		readline.PcItem("preset", presetItems...),
		readline.PcItem("flow"),
		readline.PcItem("flow-stop"),
		readline.PcItem("adjust",
			readline.PcItem("bright"), readline.PcItem("ct"), readline.PcItem("color")),
		readline.PcItem("timer"),
		readline.PcItem("timer-clear"),
		readline.PcItem("timer-get"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

func runShellCommand(cmd *cobra.Command, b *bulb.Bulb, fields []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), cli.timeout)
	defer cancel()

	verb, args := fields[0], fields[1:]
	switch verb {
	case "help":
		fmt.Fprint(cmd.OutOrStdout(), shellHelp)
		return nil

	case "get":
		props := make([]wire.Property, len(args))
		for i, arg := range args {
			p, err := wire.ParseProperty(arg)
			if err != nil {
				return err
			}
			props[i] = p
		}
		values, err := b.GetProp(ctx, props...)
		if err != nil {
			return err
		}
		for i, v := range values {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", props[i], v)
		}
		return nil

	case "on":
		return b.On(ctx)
	case "off":
		return b.Off(ctx)
	case "toggle":
		return b.Toggle(ctx)

	case "bright":
		v, err := shellUint(args, 0, 8)
		if err != nil {
			return err
		}
		return b.SetBright(ctx, uint8(v), wire.EffectSmooth, 500*time.Millisecond)

	case "ct":
		v, err := shellUint(args, 0, 16)
		if err != nil {
			return err
		}
		return b.SetCtAbx(ctx, uint16(v), wire.EffectSmooth, 500*time.Millisecond)

	case "rgb":
		v, err := shellUint(args, 0, 32)
		if err != nil {
			return err
		}
		return b.SetRGB(ctx, uint32(v), wire.EffectSmooth, 500*time.Millisecond)

	case "hsv":
		hue, err := shellUint(args, 0, 16)
		if err != nil {
			return err
		}
		sat := uint64(100)
		if len(args) > 1 {
			if sat, err = shellUint(args, 1, 8); err != nil {
				return err
			}
		}
		return b.SetHSV(ctx, uint16(hue), uint8(sat), wire.EffectSmooth, 500*time.Millisecond)

	case "name":
		if len(args) != 1 {
			return fmt.Errorf("usage: name <name>")
		}
		return b.SetName(ctx, args[0])

	case "preset":
		if len(args) != 1 {
			return fmt.Errorf("usage: preset <name>")
		}
		return presets.Apply(ctx, b, args[0])

	case "flow":
		if len(args) == 0 {
			return fmt.Errorf("usage: flow <expression> [count]")
		}
		expr, err := wire.ParseFlowExpression(args[0])
		if err != nil {
			return err
		}
		count := uint64(0)
		if len(args) > 1 {
			if count, err = shellUint(args, 1, 8); err != nil {
				return err
			}
		}
		return b.StartColorFlow(ctx, uint8(count), wire.FlowRecover, expr)

	case "flow-stop":
		return b.StopColorFlow(ctx)

	case "adjust":
		if len(args) != 2 {
			return fmt.Errorf("usage: adjust <bright|ct|color> <increase|decrease|circle>")
		}
		prop, err := wire.ParseAdjustProp(args[0])
		if err != nil {
			return err
		}
		action, err := wire.ParseAdjustAction(args[1])
		if err != nil {
			return err
		}
		return b.SetAdjust(ctx, action, prop)

	case "timer":
		minutes, err := shellUint(args, 0, 64)
		if err != nil {
			return err
		}
		return b.CronAdd(ctx, wire.CronPowerOff, time.Duration(minutes)*time.Minute)

	case "timer-clear":
		return b.CronDel(ctx, wire.CronPowerOff)

	case "timer-get":
		values, err := b.CronGet(ctx, wire.CronPowerOff)
		if err != nil {
			return err
		}
		printResult(cmd, values)
		return nil
	}

	return fmt.Errorf("unknown command %q (try help)", verb)
}

func shellUint(args []string, i int, bits int) (uint64, error) {
	if i >= len(args) {
		return 0, fmt.Errorf("missing argument")
	}
	v, err := strconv.ParseUint(args[i], 0, bits)
	if err != nil {
		return 0, fmt.Errorf("argument %q: %w", args[i], err)
	}
	return v, nil
}

const shellHelp = `Commands:
  get <property>...          read properties
  on | off | toggle          switch the light
  bright <1-100>             set brightness
  ct <1700-6500>             set color temperature
  rgb <value>                set color (decimal or 0x hex)
  hsv <hue> [sat]            set hue and saturation
  name <name>                store a name on the device
  preset <name>              apply a mood preset
  flow <expression> [count]  start a color flow
  flow-stop                  stop the color flow
  adjust <prop> <action>     nudge bright/ct/color
  timer <minutes>            schedule power-off
  timer-clear | timer-get    manage the power-off timer
  exit                       leave the shell
`

func init() {
	rootCmd.AddCommand(interactiveCmd)
}
