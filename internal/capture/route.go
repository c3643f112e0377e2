package capture

import (
	"bufio"
	"fmt"
	"net"
	"strings"
)

// InterfaceFor returns the capture device the routing table sends traffic
// for target through. target may be a unicast, broadcast or multicast
// address; loopback targets map to the loopback device.
func InterfaceFor(target string) (string, error) {
	ip := net.ParseIP(target)
	if ip == nil {
		return "", fmt.Errorf("invalid IP address: %s", target)
	}
	if ip.IsLoopback() {
		return LoopbackInterface()
	}
	name, err := routeLookup(ip)
	if err != nil {
		return "", fmt.Errorf("route to %s: %w", target, err)
	}
	return name, nil
}

// parseIPRoute reads the device from `ip route get` output, e.g.
// "10.0.0.50 via 192.168.1.1 dev eth0 src 192.168.1.100 uid 1000".
func parseIPRoute(out string) (string, error) {
	fields := strings.Fields(out)
	for i, f := range fields {
		if f == "dev" && i+1 < len(fields) {
			return fields[i+1], nil
		}
	}
	return "", fmt.Errorf("no dev in route output")
}

// parseRouteGet reads the "interface:" line of BSD `route -n get` output.
func parseRouteGet(out string) (string, error) {
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if !strings.HasPrefix(line, "interface:") {
			continue
		}
		if name := strings.TrimSpace(strings.TrimPrefix(line, "interface:")); name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("no interface in route output")
}
