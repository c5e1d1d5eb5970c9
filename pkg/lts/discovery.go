package lts

import (
	"fmt"
	"strings"
)

// Discover queries the backend for connected LTS-family stages and
// returns their serial numbers in the order the backend reports them.
// It forces a fresh device enumeration first; serial numbers of other
// product families are filtered out.
func Discover(backend Backend) ([]string, error) {
	if err := backend.BuildDeviceList(); err != nil {
		return nil, fmt.Errorf("build device list: %w", err)
	}

	all, err := backend.DeviceList()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}

	var serials []string
	for _, serial := range all {
		if strings.HasPrefix(serial, SerialPrefix) {
			serials = append(serials, serial)
		}
	}
	return serials, nil
}
