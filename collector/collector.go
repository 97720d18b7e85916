// Package collector issues the read-only external queries behind one poll
// cycle: the host process table, NAT table dumps, interface listings and a
// system log tail. A failed query degrades to empty/unknown for that fact
// category; nothing here aborts a poll cycle.
package collector

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/igor04091968/tun-status/facts"
	"github.com/igor04091968/tun-status/logger"

	"github.com/shirou/gopsutil/v4/process"
	"github.com/vishvananda/netlink"
)

// LiveInstance is one observed tunnel process, keyed to match a declared
// tunnel by role+section id.
type LiveInstance struct {
	Key         string `json:"key"`
	Running     bool   `json:"running"`
	PID         int32  `json:"pid"`
	CommandLine string `json:"commandLine"`
}

// NatDump carries the raw v4 and v6 NAT table text for the extractor.
type NatDump struct {
	V4 string
	V6 string
}

type Collector struct {
	runner Runner
}

const defaultExecTimeout = 5 * time.Second

func New() *Collector {
	return &Collector{runner: execRunner{timeout: defaultExecTimeout}}
}

// NewWithRunner builds a collector over a custom runner; used by tests.
func NewWithRunner(r Runner) *Collector {
	return &Collector{runner: r}
}

// instance key from the supervisor's config-file convention, e.g.
// "udp2raw -c --conf-file /var/etc/udp2raw-client-cfg1.conf".
var instanceKeyRe = regexp.MustCompile(`(?:^|[/_-])(?:udp2raw|udpspeeder)[-_](client|server)[-_.]([A-Za-z0-9]+)\.conf`)

// ListInstances scans the host process table for instances of the given
// service binary.
func (c *Collector) ListInstances(ctx context.Context, serviceName string) ([]LiveInstance, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	instances := []LiveInstance{}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || !strings.Contains(name, serviceName) {
			continue
		}
		cmdline, err := p.CmdlineWithContext(ctx)
		if err != nil {
			cmdline = name
		}
		instances = append(instances, LiveInstance{
			Key:         ParseInstanceKey(cmdline),
			Running:     isRunning(ctx, p),
			PID:         p.Pid,
			CommandLine: cmdline,
		})
	}
	return instances, nil
}

// ParseInstanceKey derives the composite role+section key from a process
// command line. An empty key means the instance cannot be matched to a
// declared tunnel; it still counts toward the active-instances tally.
func ParseInstanceKey(cmdline string) string {
	m := instanceKeyRe.FindStringSubmatch(cmdline)
	if m == nil {
		return ""
	}
	return m[1] + "+" + m[2]
}

func isRunning(ctx context.Context, p *process.Process) bool {
	statuses, err := p.StatusWithContext(ctx)
	if err != nil {
		// Cannot read the status, but the process exists.
		return true
	}
	for _, s := range statuses {
		if s == process.Zombie {
			return false
		}
	}
	return true
}

// NatTable dumps the v4 and v6 NAT tables. A non-zero exit with empty
// output means "no rules", a legitimate result; only an execution failure is
// reported, and then only for the family that failed.
func (c *Collector) NatTable(ctx context.Context) (NatDump, error) {
	var dump NatDump
	var firstErr error

	v4, err := c.natDump(ctx, "iptables")
	if err != nil {
		firstErr = err
	} else {
		dump.V4 = v4
	}

	v6, err := c.natDump(ctx, "ip6tables")
	if err != nil {
		if firstErr == nil {
			firstErr = err
		}
	} else {
		dump.V6 = v6
	}

	return dump, firstErr
}

func (c *Collector) natDump(ctx context.Context, bin string) (string, error) {
	out, code, err := c.runner.Run(ctx, bin, "-t", "nat", "-S")
	if err != nil {
		return "", fmt.Errorf("%s nat dump: %w", bin, err)
	}
	if code != 0 && out == "" {
		return "", nil
	}
	return out, nil
}

// Interfaces returns virtual tunnel interface facts. It prefers a direct
// netlink query and falls back to parsing `ip addr show` text when netlink
// is unavailable (stripped capabilities, exotic kernels).
func (c *Collector) Interfaces(ctx context.Context) ([]facts.InterfaceFact, error) {
	ifaces, err := c.interfacesNetlink()
	if err == nil {
		return ifaces, nil
	}
	logger.Debug("netlink interface query failed, falling back to ip: ", err)

	out, code, err := c.runner.Run(ctx, "ip", "addr", "show")
	if err != nil {
		return nil, fmt.Errorf("ip addr show: %w", err)
	}
	if code != 0 {
		return nil, fmt.Errorf("ip addr show: exit code %d", code)
	}
	return facts.ParseInterfaces(out), nil
}

func (c *Collector) interfacesNetlink() ([]facts.InterfaceFact, error) {
	links, err := netlink.LinkList()
	if err != nil {
		return nil, err
	}

	ifaces := []facts.InterfaceFact{}
	for _, link := range links {
		attrs := link.Attrs()
		if !facts.IsVirtualInterface(attrs.Name) {
			continue
		}
		fact := facts.InterfaceFact{
			Name: attrs.Name,
			Up:   attrs.Flags&net.FlagUp != 0,
			IPv4: []string{},
			IPv6: []string{},
		}
		if addrs, err := netlink.AddrList(link, netlink.FAMILY_V4); err == nil {
			for _, a := range addrs {
				fact.IPv4 = append(fact.IPv4, a.IPNet.String())
			}
		}
		if addrs, err := netlink.AddrList(link, netlink.FAMILY_V6); err == nil {
			for _, a := range addrs {
				fact.IPv6 = append(fact.IPv6, a.IPNet.String())
			}
		}
		ifaces = append(ifaces, fact)
	}
	return ifaces, nil
}

// LogTail returns the last lines of the system log filtered by service tag.
// It tries busybox logread first, then journalctl.
func (c *Collector) LogTail(ctx context.Context, tag string, lines int) (string, error) {
	out, code, err := c.runner.Run(ctx, "logread", "-e", tag)
	if err == nil && code == 0 {
		return tailLines(out, lines), nil
	}

	out, code, err = c.runner.Run(ctx, "journalctl", "-t", tag, "-n", strconv.Itoa(lines), "--no-pager")
	if err != nil {
		return "", fmt.Errorf("log tail: %w", err)
	}
	if code != 0 && out == "" {
		return "", nil
	}
	return out, nil
}

func tailLines(blob string, n int) string {
	lines := strings.Split(strings.TrimRight(blob, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
