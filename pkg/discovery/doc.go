// Package discovery finds Yeelight devices on the local network.
//
// Devices answer an SSDP-style M-SEARCH probe multicast to
// 239.255.255.250:1982 with an HTTP-like response carrying their id,
// control endpoint and current state. Find streams responses as they
// arrive; FindTimeout collects for a fixed window and deduplicates.
package discovery
