// Package bulb is the high-level client for Yeelight smart lights. A
// Bulb owns one persistent TCP connection and exposes the device's
// command catalog as methods; replies and state notifications arriving
// on the same socket are demultiplexed underneath.
//
//	b, err := bulb.Connect(ctx, "192.168.1.70", 0)
//	if err != nil {
//		return err
//	}
//	defer b.Close()
//	if err := b.On(ctx); err != nil {
//		return err
//	}
//
// A Bulb is safe for concurrent use. In-flight calls share the
// connection and are correlated by request id, so overlapping commands
// from multiple goroutines each receive their own reply.
package bulb
