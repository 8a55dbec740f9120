// FILE: logsink/src/internal/netinfo/netinfo.go
package netinfo

import "net"

// probeAddr is never actually contacted: dialing UDP sends no packets, it
// only asks the OS which local address would route toward it.
const probeAddr = "8.8.8.8:80"

// LocalIP returns a best-effort locally reachable IP address for display in
// startup diagnostics and the status page. Any failure falls back to the
// loopback address; detection is informational and never fatal.
func LocalIP() string {
	conn, err := net.Dial("udp", probeAddr)
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "127.0.0.1"
}
