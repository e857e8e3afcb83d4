package main

import (
	"context"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/yeelight-protocol/yeelight-go/pkg/discovery"
)

var flagScanDuration uint64

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan the local network for lights",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanFor := time.Duration(flagScanDuration) * time.Millisecond

		spinner, _ := pterm.DefaultSpinner.Start("Scanning for lights...")
		found, err := scan(scanFor)
		if err != nil {
			spinner.Fail(err.Error())
			return err
		}
		spinner.Success(pterm.Sprintf("Found %d light(s)", len(found)))

		if len(found) == 0 {
			return nil
		}

		data := pterm.TableData{{"ID", "Address", "Model", "Power", "Name"}}
		for _, b := range found {
			data = append(data, []string{
				pterm.Sprintf("0x%016x", b.ID),
				b.Addr,
				b.Model(),
				b.Properties["power"],
				b.Properties["name"],
			})
		}
		return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	},
}

func scan(d time.Duration) ([]discovery.DiscoveredBulb, error) {
	return discovery.FindTimeout(context.Background(), d)
}

func init() {
	discoverCmd.Flags().Uint64Var(&flagScanDuration, "duration", 5000, "scan duration in ms")
	rootCmd.AddCommand(discoverCmd)
}
