package probe

import (
	"net"
	"strconv"
	"time"
)

// ReachTimeout bounds the service reachability connect.
const ReachTimeout = 700 * time.Millisecond

// Reachable reports whether something accepts TCP connections on
// 127.0.0.1:port within timeout.
func Reachable(port uint16, timeout time.Duration) bool {
	if timeout <= 0 {
		timeout = ReachTimeout
	}
	conn, err := net.DialTimeout("tcp", loopback(port), timeout)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// PortAvailable reports whether 127.0.0.1:port can be bound right now.
// The listener is released immediately.
func PortAvailable(port uint16) bool {
	ln, err := net.Listen("tcp", loopback(port))
	if err != nil {
		return false
	}
	_ = ln.Close()
	return true
}

func loopback(port uint16) string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port)))
}
