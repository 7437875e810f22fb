package probe

import (
	"net"
	"testing"
)

// TestReachableAndPortAvailable checks both TCP probes against a live listener.
func TestReachableAndPortAvailable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	port := uint16(ln.Addr().(*net.TCPAddr).Port)

	if !Reachable(port, 0) {
		t.Fatal("expected listener to be reachable")
	}
	if PortAvailable(port) {
		t.Fatal("expected bound port to be unavailable")
	}

	_ = ln.Close()
	if Reachable(port, 0) {
		t.Fatal("expected closed port to be unreachable")
	}
	if !PortAvailable(port) {
		t.Fatal("expected released port to be available")
	}
}
