package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

var flagFlowAction string

var flowCmd = &cobra.Command{
	Use:   "flow <expression> [count]",
	Short: "Start a color flow",
	Long: `Start a color flow. The expression is groups of four comma-separated
fields: duration-ms, mode (color/1, ct/2, sleep/7), value, brightness.
count is the number of steps to run before the end action applies;
0 (the default) loops forever.

Example: flow 500,color,16711680,100,500,color,255,100`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, err := wire.ParseFlowExpression(args[0])
		if err != nil {
			return err
		}
		count := uint64(0)
		if len(args) == 2 {
			count, err = strconv.ParseUint(args[1], 10, 8)
			if err != nil {
				return fmt.Errorf("count %q: %w", args[1], err)
			}
		}
		action, err := wire.ParseFlowAction(flagFlowAction)
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
			return b.BgStartColorFlow(ctx, uint8(count), action, expr)
		}
		return b.StartColorFlow(ctx, uint8(count), action, expr)
	},
}

var flowStopCmd = &cobra.Command{
	Use:   "flow-stop",
	Short: "Stop a running color flow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(true)
		defer cancel()
		b, err := connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		if flagBg {
			return b.BgStopColorFlow(ctx)
		}
		return b.StopColorFlow(ctx)
	},
}

func init() {
	flowCmd.Flags().StringVar(&flagFlowAction, "action", "recover", "state after the flow ends (recover, stay, off)")
	addBgFlag(flowCmd)
	addBgFlag(flowStopCmd)
	rootCmd.AddCommand(flowCmd, flowStopCmd)
}
