//go:build darwin

package capture

import (
	"fmt"
	"net"
	"os/exec"
)

func routeLookup(ip net.IP) (string, error) {
	out, err := exec.Command("route", "-n", "get", ip.String()).Output()
	if err != nil {
		return "", fmt.Errorf("route get: %w", err)
	}
	return parseRouteGet(string(out))
}
