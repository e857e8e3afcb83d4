// Command yeelight-cli controls Yeelight smart lights from the shell.
//
// Usage:
//
//	yeelight-cli --address 192.168.1.70 on
//	yeelight-cli --address 192.168.1.70 set rgb 0xFF0000
//	yeelight-cli discover
//	yeelight-cli --address 192.168.1.70 interactive
//
// The address, port and timeout can also come from the YEELIGHT_ADDR,
// YEELIGHT_PORT and YEELIGHT_TIMEOUT environment variables or a YAML
// config file (--config).
package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Exit(1)
	}
}
