package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

var timerCmd = &cobra.Command{
	Use:   "timer",
	Short: "Manage the power-off timer",
}

var timerAddCmd = &cobra.Command{
	Use:   "add <minutes>",
	Short: "Turn the light off after the given number of minutes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("minutes %q: %w", args[0], err)
		}

		ctx, cancel := commandContext(true)
		defer cancel()
		b, err := connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		return b.CronAdd(ctx, wire.CronPowerOff, time.Duration(minutes)*time.Minute)
	},
}

var timerClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Cancel the power-off timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(true)
		defer cancel()
		b, err := connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		return b.CronDel(ctx, wire.CronPowerOff)
	},
}

var timerGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the remaining minutes on the power-off timer",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(true)
		defer cancel()
		b, err := connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		values, err := b.CronGet(ctx, wire.CronPowerOff)
		if err != nil {
			return err
		}
		printResult(cmd, values)
		return nil
	},
}

func init() {
	timerCmd.AddCommand(timerAddCmd, timerClearCmd, timerGetCmd)
	rootCmd.AddCommand(timerCmd)
}
