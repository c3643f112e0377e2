//go:build !linux && !darwin && !windows

package capture

import (
	"errors"
	"net"
)

func routeLookup(ip net.IP) (string, error) {
	return "", errors.New("route lookup not supported on this platform")
}
