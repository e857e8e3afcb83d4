package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
)

var listenCmd = &cobra.Command{
	Use:   "listen",
	Short: "Print state notifications as the device reports them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		dialCtx, cancel := context.WithTimeout(ctx, cli.timeout)
		b, err := connect(dialCtx)
		cancel()
		if err != nil {
			return err
		}
		defer b.Close()

		notifs := b.Notifications()
		for {
			select {
			case <-ctx.Done():
				return nil
			case n, ok := <-notifs:
				if !ok {
					return fmt.Errorf("connection closed")
				}
				keys := make([]string, 0, len(n.Params))
				for k := range n.Params {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				for _, k := range keys {
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", k, n.Params[k])
				}
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listenCmd)
}
