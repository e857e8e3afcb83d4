package main

import (
	"context"
	"strings"
	"time"

	"github.com/yeelight-protocol/yeelight-go/pkg/bulb"
	"github.com/yeelight-protocol/yeelight-go/pkg/wire"
)

// runTransitionCommand connects, runs fn with the parsed transition
// flags and tears the connection down.
func runTransitionCommand(fn func(ctx context.Context, b *bulb.Bulb, effect wire.Effect, duration time.Duration) error) error {
	effect, duration, err := transition()
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

	return fn(ctx, b, effect, duration)
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}
