package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

var musicCmd = &cobra.Command{
	Use:   "music",
	Short: "Control music mode",
}

var musicConnectCmd = &cobra.Command{
	Use:   "connect <host> <port>",
	Short: "Point the device at an existing music-mode server",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return fmt.Errorf("port %q: %w", args[1], err)
		}

		ctx, cancel := commandContext(true)
		defer cancel()
		b, err := connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		return b.SetMusic(ctx, wire.MusicOn, args[0], uint16(port))
	},
}

var musicStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Leave music mode",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(true)
		defer cancel()
		b, err := connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		return b.SetMusic(ctx, wire.MusicOff, "", 0)
	},
}

func init() {
	musicCmd.AddCommand(musicConnectCmd, musicStopCmd)
	rootCmd.AddCommand(musicCmd)
}
