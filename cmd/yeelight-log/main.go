// Command yeelight-log inspects protocol event logs written with the
// --log-file flag of yeelight-cli (or any log.FileLogger).
//
// Usage:
//
//	yeelight-log <command> [flags] <file>
//
// Commands:
//
//	view     Print events in human-readable form
//	stats    Summarize the log file
//	filter   Filter events into a new log file
//
// Examples:
//
//	# View all events
//	yeelight-log view session.ylog
//
//	# View only inbound lines
//	yeelight-log view --direction in --category line session.ylog
//
//	# Keep one connection's events
//	yeelight-log filter --conn-id 7f3a... -o one.ylog session.ylog
package main

import (
	"flag"
	"fmt"
	"os"
)

const usage = `yeelight-log - protocol event log inspector

Usage:
  yeelight-log <command> [flags] <file>

Commands:
  view     Print events in human-readable form
  stats    Summarize the log file
  filter   Filter events into a new log file

Use "yeelight-log <command> -help" for details on a command.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var err error
	switch cmd, args := os.Args[1], os.Args[2:]; cmd {
	case "view":
		err = runView(args)
	case "stats":
		err = runStats(args)
	case "filter":
		err = runFilter(args)
	case "-h", "-help", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// fileArg returns the single positional argument of a subcommand.
func fileArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("expected exactly one log file argument")
	}
	return fs.Arg(0), nil
}
