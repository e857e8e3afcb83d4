package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yeelight-protocol/yeelight-go/pkg/bulb"
	"github.com/yeelight-protocol/yeelight-go/pkg/log"
)

var (
	flagAddress  string
	flagPort     uint16
	flagTimeout  uint64
	flagLogLevel string
	flagLogFile  string
	flagConfig   string

	// cli is the resolved runtime state shared by all subcommands.
	cli struct {
		address    string
		port       uint16
		timeout    time.Duration
		logger     zerolog.Logger
		protocol   log.Logger
		fileLogger *log.FileLogger
	}
)

var rootCmd = &cobra.Command{
	Use:           "yeelight-cli",
	Short:         "Control your Yeelight smart lights",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if cli.fileLogger != nil {
			cli.fileLogger.Close()
		}
	},
}

// Execute runs the root command, printing the failure once.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagAddress, "address", "a", "", "bulb address (env YEELIGHT_ADDR)")
	pf.Uint16VarP(&flagPort, "port", "p", 0, "bulb control port (env YEELIGHT_PORT, default 55443)")
	pf.Uint64VarP(&flagTimeout, "timeout", "t", 0, "command timeout in ms (env YEELIGHT_TIMEOUT, default 5000)")
	pf.StringVar(&flagLogLevel, "log-level", "warn", "console log level (debug, info, warn, error)")
	pf.StringVar(&flagLogFile, "log-file", "", "write binary protocol event log to this file")
	pf.StringVar(&flagConfig, "config", "", "YAML config file (address, port, timeout)")
}

// setup resolves flags, environment and config file into cli, in that
// precedence order, and builds the loggers.
func setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}

	cli.address = flagAddress
	if cli.address == "" {
		cli.address = os.Getenv("YEELIGHT_ADDR")
	}
	if cli.address == "" {
		cli.address = cfg.Address
	}

	cli.port = flagPort
	if cli.port == 0 {
		if env := os.Getenv("YEELIGHT_PORT"); env != "" {
			p, err := strconv.ParseUint(env, 10, 16)
			if err != nil {
				return fmt.Errorf("YEELIGHT_PORT %q: %w", env, err)
			}
			cli.port = uint16(p)
		}
	}
	if cli.port == 0 {
		cli.port = cfg.Port
	}
	if cli.port == 0 {
		cli.port = bulb.DefaultPort
	}

	timeoutMillis := flagTimeout
	if timeoutMillis == 0 {
		if env := os.Getenv("YEELIGHT_TIMEOUT"); env != "" {
			t, err := strconv.ParseUint(env, 10, 64)
			if err != nil {
				return fmt.Errorf("YEELIGHT_TIMEOUT %q: %w", env, err)
			}
			timeoutMillis = t
		}
	}
	if timeoutMillis == 0 {
		timeoutMillis = cfg.Timeout
	}
	if timeoutMillis == 0 {
		timeoutMillis = 5000
	}
	cli.timeout = time.Duration(timeoutMillis) * time.Millisecond

	level, err := zerolog.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("log level %q: %w", flagLogLevel, err)
	}
	cli.logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		Level(level).
		With().Timestamp().Logger()

	protocol := []log.Logger{log.NewZerologAdapter(cli.logger)}
	if flagLogFile != "" {
		fl, err := log.NewFileLogger(flagLogFile)
		if err != nil {
			return fmt.Errorf("open event log: %w", err)
		}
		cli.fileLogger = fl
		protocol = append(protocol, fl)
	}
	cli.protocol = log.NewMultiLogger(protocol...)

	return nil
}

// commandContext returns the context commands run under: the configured
// timeout, or none for streaming commands like listen.
func commandContext(withTimeout bool) (context.Context, context.CancelFunc) {
	if !withTimeout {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), cli.timeout)
}

// connect opens the control connection to the configured bulb.
func connect(ctx context.Context) (*bulb.Bulb, error) {
	if cli.address == "" {
		return nil, fmt.Errorf("no bulb address (use --address, YEELIGHT_ADDR or a config file)")
	}
	config := bulb.DefaultConfig()
	config.Logger = cli.protocol
	return bulb.ConnectConfig(ctx, cli.address, cli.port, config)
}

// printResult writes non-"ok" result values, one per line.
func printResult(cmd *cobra.Command, values []string) {
	for _, v := range values {
		if v != "ok" {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
	}
}
