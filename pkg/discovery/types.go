package discovery

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/yeelight-protocol/yeelight-go/pkg/bulb"
)

// DiscoveredBulb is one device seen during a scan.
type DiscoveredBulb struct {
	// ID is the device's unique identifier (the hex "id" header).
	ID uint64

	// Addr is the control endpoint as host:port.
	Addr string

	// Properties holds the remaining response headers (model, fw_ver,
	// support, power, bright and friends), keys lowercased.
	Properties map[string]string
}

// Model returns the device's model name, if reported.
func (d DiscoveredBulb) Model() string {
	return d.Properties["model"]
}

// Supports reports whether the device lists method in its "support"
// header.
func (d DiscoveredBulb) Supports(method string) bool {
	for _, m := range strings.Fields(d.Properties["support"]) {
		if m == method {
			return true
		}
	}
	return false
}

// Connect opens a control connection to the device.
func (d DiscoveredBulb) Connect(ctx context.Context) (*bulb.Bulb, error) {
	return d.ConnectConfig(ctx, bulb.DefaultConfig())
}

// ConnectConfig opens a control connection with the given configuration.
func (d DiscoveredBulb) ConnectConfig(ctx context.Context, config bulb.Config) (*bulb.Bulb, error) {
	host, portStr, err := net.SplitHostPort(d.Addr)
	if err != nil {
		return nil, fmt.Errorf("device address %q: %w", d.Addr, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("device port %q: %w", portStr, err)
	}
	return bulb.ConnectConfig(ctx, host, uint16(port), config)
}
