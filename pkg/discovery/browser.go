package discovery

import (
	"context"
	"fmt"
	"net"
	"sort"
	"time"
)

const (
	// multicastAddr is the group devices listen on for search probes.
	multicastAddr = "239.255.255.250:1982"

	// searchMessage is the probe devices answer. The quoted MAN value
	// and the wifi_bulb search target are fixed by the protocol.
	searchMessage = "M-SEARCH * HTTP/1.1\r\n" +
		"HOST: " + multicastAddr + "\r\n" +
		"MAN: \"ssdp:discover\"\r\n" +
		"ST: wifi_bulb\r\n"

	maxDatagramSize = 2048
)

// Find multicasts a search probe and streams responses as they arrive.
// The channel is closed when ctx ends. Responses are not deduplicated;
// a device may answer a probe more than once.
func Find(ctx context.Context) (<-chan DiscoveredBulb, error) {
	group, err := net.ResolveUDPAddr("udp4", multicastAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve multicast group: %w", err)
	}

	conn, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4zero})
	if err != nil {
		return nil, fmt.Errorf("bind discovery socket: %w", err)
	}

	if _, err := conn.WriteToUDP([]byte(searchMessage), group); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send search probe: %w", err)
	}

	results := make(chan DiscoveredBulb)

	// Closing the socket is what unblocks the read loop.
	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	go func() {
		defer close(results)
		buf := make([]byte, maxDatagramSize)
		for {
			n, _, err := conn.ReadFromUDP(buf)
			if err != nil {
				return
			}
			found, err := parseResponse(buf[:n])
			if err != nil {
				// Unrelated SSDP traffic shares the group; skip it.
				continue
			}
			select {
			case results <- found:
			case <-ctx.Done():
				return
			}
		}
	}()

	return results, nil
}

// FindTimeout scans for the given duration and returns the devices seen,
// deduplicated by id and sorted by id for stable output.
func FindTimeout(ctx context.Context, timeout time.Duration) ([]DiscoveredBulb, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results, err := Find(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[uint64]DiscoveredBulb)
	for found := range results {
		if _, dup := seen[found.ID]; !dup {
			seen[found.ID] = found
		}
	}

	bulbs := make([]DiscoveredBulb, 0, len(seen))
	for _, b := range seen {
		bulbs = append(bulbs, b)
	}
	sort.Slice(bulbs, func(i, j int) bool { return bulbs[i].ID < bulbs[j].ID })
	return bulbs, nil
}
