package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeelight-protocol/yeelight-go/pkg/presets"
)

var presetCmd = &cobra.Command{
	Use:   "preset <name>",
	Short: "Apply a ready-made light mood",
	Long:  "Apply a ready-made light mood. Available presets: " + joinNames(presets.Names()),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, ok := presets.Lookup(args[0])
		if !ok {
			return fmt.Errorf("unknown preset %q (available: %s)", args[0], joinNames(presets.Names()))
		}

		ctx, cancel := commandContext(true)
		defer cancel()
		b, err := connect(ctx)
		if err != nil {
			return err
		}
		defer b.Close()

		return p.Apply(ctx, b)
	},
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available presets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range presets.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
	},
}

func init() {
	presetCmd.AddCommand(presetListCmd)
	rootCmd.AddCommand(presetCmd)
}
