package discovery

import (
	"fmt"
	"strconv"
	"strings"
)

const statusLine = "HTTP/1.1 200 OK"

// parseResponse decodes one discovery response datagram. The format is
// an HTTP-like status line followed by CRLF-separated headers; the id
// header is 0x-prefixed hex and Location is a yeelight:// URL naming
// the control endpoint.
func parseResponse(data []byte) (DiscoveredBulb, error) {
	lines := strings.Split(string(data), "\r\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != statusLine {
		return DiscoveredBulb{}, fmt.Errorf("not a discovery response")
	}

	props := make(map[string]string)
	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}

	idHex, ok := props["id"]
	if !ok {
		return DiscoveredBulb{}, fmt.Errorf("response has no id header")
	}
	id, err := strconv.ParseUint(strings.TrimPrefix(idHex, "0x"), 16, 64)
	if err != nil {
		return DiscoveredBulb{}, fmt.Errorf("device id %q: %w", idHex, err)
	}
	delete(props, "id")

	location, ok := props["location"]
	if !ok {
		return DiscoveredBulb{}, fmt.Errorf("response has no Location header")
	}
	addr, ok := strings.CutPrefix(location, "yeelight://")
	if !ok {
		return DiscoveredBulb{}, fmt.Errorf("location %q is not a yeelight:// URL", location)
	}
	delete(props, "location")

	return DiscoveredBulb{ID: id, Addr: addr, Properties: props}, nil
}
