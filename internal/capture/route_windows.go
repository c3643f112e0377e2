//go:build windows

package capture

import (
	"fmt"
	"net"
	"os/exec"
	"strconv"
	"strings"

	"github.com/google/gopacket/pcap"
)

// routeLookup asks Find-NetRoute for the interface index and maps it to
// the NPF device with the same address.
func routeLookup(ip net.IP) (string, error) {
	ps := fmt.Sprintf(`(Find-NetRoute -RemoteIPAddress '%s' | Select-Object -First 1).InterfaceIndex`, ip)
	out, err := exec.Command("powershell", "-NoProfile", "-Command", ps).Output()
	if err != nil {
		return "", fmt.Errorf("Find-NetRoute: %w", err)
	}
	index, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return "", fmt.Errorf("invalid interface index %q", strings.TrimSpace(string(out)))
	}
	iface, err := net.InterfaceByIndex(index)
	if err != nil {
		return "", err
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return "", err
	}

	devices, err := pcap.FindAllDevs()
	if err != nil {
		return "", fmt.Errorf("find network devices: %w", err)
	}
	for _, d := range devices {
		if strings.Contains(strings.ToLower(d.Description), strings.ToLower(iface.Name)) {
			return d.Name, nil
		}
		for _, a := range addrs {
			ipNet, ok := a.(*net.IPNet)
			if !ok {
				continue
			}
			for _, da := range d.Addresses {
				if da.IP.Equal(ipNet.IP) {
					return d.Name, nil
				}
			}
		}
	}
	return "", fmt.Errorf("no capture device for interface %s", iface.Name)
}
