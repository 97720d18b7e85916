package facts

import (
	"regexp"
	"strings"
)

// header of an `ip addr show` / `ip link` entry: "3: tun0: <FLAGS> ..."
// The name may carry an "@parent" suffix on some kernels.
var ifaceHeadRe = regexp.MustCompile(`^(\d+):\s+([^:@\s]+)(?:@\S+)?:\s*(?:<([^>]*)>)?`)

var virtualNameRe = regexp.MustCompile(`^(?:tun|tap|utun|gre|gretap|wg)\d*$`)

// IsVirtualInterface reports whether name follows the virtual tunnel
// interface naming convention (tun0, tap1, gre1, wg0, ...).
func IsVirtualInterface(name string) bool {
	return virtualNameRe.MatchString(name)
}

// ParseInterfaces runs a line state machine over an interface listing. A
// header line naming a virtual interface opens a context; inet/inet6 lines
// are attributed to the open context; address lines with no open context are
// ignored.
func ParseInterfaces(listing string) []InterfaceFact {
	ifaces := []InterfaceFact{}
	var open *InterfaceFact

	for _, line := range strings.Split(listing, "\n") {
		if m := ifaceHeadRe.FindStringSubmatch(line); m != nil {
			open = nil
			name := m[2]
			if !IsVirtualInterface(name) {
				continue
			}
			ifaces = append(ifaces, InterfaceFact{
				Name: name,
				Up:   hasUpFlag(m[3]),
				IPv4: []string{},
				IPv6: []string{},
			})
			open = &ifaces[len(ifaces)-1]
			continue
		}

		if open == nil {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		switch fields[0] {
		case "inet":
			open.IPv4 = append(open.IPv4, fields[1])
		case "inet6":
			open.IPv6 = append(open.IPv6, fields[1])
		}
	}
	return ifaces
}

func hasUpFlag(flags string) bool {
	for _, f := range strings.Split(flags, ",") {
		if f == "UP" {
			return true
		}
	}
	return false
}
