package facts

import (
	"regexp"
	"strings"
)

// DefaultMarkers are the substrings that identify a NAT rule as belonging to
// one of the wrapped tunnel tools.
var DefaultMarkers = []string{"udp2raw", "udpspeeder"}

// chain declaration in iptables-save format (":name - [0:0]") or
// iptables -S format ("-N name").
var chainDeclRe = regexp.MustCompile(`^(?::|-N\s+)(\S+)`)

// private-subnet fallback for tool versions that do not tag their rules.
var privateSubnetRe = regexp.MustCompile(`\b(?:10\.\d{1,3}\.|192\.168\.|172\.(?:1[6-9]|2\d|3[01])\.)`)

// ParseNatRules extracts tunnel-relevant NAT rules from a rule dump.
//
// Dedicated named chains (a chain declaration whose name starts with a tool
// marker) are authoritative: when any are present only those are reported.
// Otherwise each line is matched generically by marker-or-private-subnet
// plus a MASQUERADE/DNAT token. Tool versions differ in how explicitly they
// tag their own rules, so the fallback matters.
func ParseNatRules(dump string, family Family, markers ...string) []NatRuleFact {
	if len(markers) == 0 {
		markers = DefaultMarkers
	}

	lines := splitLines(dump)
	rules := []NatRuleFact{}

	for _, line := range lines {
		if chain, ok := namedChain(line, markers); ok {
			rules = append(rules, NatRuleFact{
				Family: family,
				Kind:   RuleNamedChain,
				Chain:  chain,
				Line:   line,
			})
		}
	}
	if len(rules) > 0 {
		return rules
	}

	for _, line := range lines {
		if !hasTunnelMarker(line, markers) {
			continue
		}
		switch {
		case strings.Contains(line, string(RuleMasquerade)):
			rules = append(rules, NatRuleFact{Family: family, Kind: RuleMasquerade, Line: line})
		case strings.Contains(line, string(RuleDNAT)):
			rules = append(rules, NatRuleFact{Family: family, Kind: RuleDNAT, Line: line})
		}
	}
	return rules
}

func namedChain(line string, markers []string) (string, bool) {
	m := chainDeclRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return "", false
	}
	name := m[1]
	lower := strings.ToLower(name)
	for _, marker := range markers {
		if strings.HasPrefix(lower, strings.ToLower(marker)) {
			return name, true
		}
	}
	return "", false
}

func hasTunnelMarker(line string, markers []string) bool {
	lower := strings.ToLower(line)
	for _, marker := range markers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return privateSubnetRe.MatchString(line)
}

func splitLines(blob string) []string {
	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(blob, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
