// Package facts turns raw CLI text blocks (NAT table dumps, interface
// listings, log buffers) into typed facts. Everything here is pure: no I/O,
// no state, and absence of matches is an empty list, never an error.
package facts

type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
)

type Family string

const (
	FamilyV4 Family = "v4"
	FamilyV6 Family = "v6"
)

type RuleKind string

const (
	RuleNamedChain RuleKind = "named-chain"
	RuleMasquerade RuleKind = "MASQUERADE"
	RuleDNAT       RuleKind = "DNAT"
)

// NatRuleFact describes one firewall/NAT rule relevant to a tunnel,
// extracted from raw rule-dump text.
type NatRuleFact struct {
	Family Family   `json:"family"`
	Kind   RuleKind `json:"kind"`
	Chain  string   `json:"chain,omitempty"`
	Line   string   `json:"line"`
}

// InterfaceFact describes one virtual tunnel interface and its addresses.
type InterfaceFact struct {
	Name string   `json:"name"`
	Up   bool     `json:"up"`
	IPv4 []string `json:"ipv4"`
	IPv6 []string `json:"ipv6"`
}
