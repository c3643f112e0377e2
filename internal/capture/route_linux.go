//go:build linux

package capture

import (
	"fmt"
	"net"
	"os/exec"
)

func routeLookup(ip net.IP) (string, error) {
	out, err := exec.Command("ip", "route", "get", ip.String()).Output()
	if err != nil {
		return "", fmt.Errorf("ip route get: %w", err)
	}
	return parseIPRoute(string(out))
}
