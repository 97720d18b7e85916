package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNatRulesNamedChain(t *testing.T) {
	rules := ParseNatRules(":udp2rawAbC1_Chain - [0:0]", FamilyV4)

	require.Len(t, rules, 1)
	assert.Equal(t, RuleNamedChain, rules[0].Kind)
	assert.Equal(t, "udp2rawAbC1_Chain", rules[0].Chain)
	assert.Equal(t, FamilyV4, rules[0].Family)
}

func TestParseNatRulesNamedChainDashN(t *testing.T) {
	rules := ParseNatRules("-N udp2raw_cfg1\n-A udp2raw_cfg1 -j MASQUERADE", FamilyV4)

	require.Len(t, rules, 1)
	assert.Equal(t, RuleNamedChain, rules[0].Kind)
	assert.Equal(t, "udp2raw_cfg1", rules[0].Chain)
}

func TestParseNatRulesNamedChainShortCircuits(t *testing.T) {
	dump := ":udp2raw_a - [0:0]\n" +
		"-A POSTROUTING -s 10.0.0.0/24 -j MASQUERADE\n" +
		"-A PREROUTING -p udp -j DNAT --to-destination 192.168.1.5"

	rules := ParseNatRules(dump, FamilyV4)

	// Dedicated chains are authoritative; generic matches are not reported
	// alongside them.
	require.Len(t, rules, 1)
	assert.Equal(t, RuleNamedChain, rules[0].Kind)
}

func TestParseNatRulesGenericFallback(t *testing.T) {
	dump := "-A POSTROUTING -s 10.123.0.0/24 -j MASQUERADE\n" +
		"-A PREROUTING -p udp --dport 4096 -j DNAT --to-destination 192.168.200.2\n" +
		"-A POSTROUTING -o eth0 -j RETURN"

	rules := ParseNatRules(dump, FamilyV4)

	require.Len(t, rules, 2)
	assert.Equal(t, RuleMasquerade, rules[0].Kind)
	assert.Equal(t, RuleDNAT, rules[1].Kind)
}

func TestParseNatRulesMarkerRequired(t *testing.T) {
	// MASQUERADE without a tunnel marker or private subnet is not ours.
	rules := ParseNatRules("-A POSTROUTING -s 203.0.113.0/24 -j MASQUERADE", FamilyV4)
	assert.Empty(t, rules)
}

func TestParseNatRulesCustomMarker(t *testing.T) {
	rules := ParseNatRules("-A POSTROUTING -m comment --comment wstunnel -s 203.0.113.0/24 -j MASQUERADE", FamilyV4, "wstunnel")
	require.Len(t, rules, 1)
	assert.Equal(t, RuleMasquerade, rules[0].Kind)
}

func TestParseNatRulesEmptyInput(t *testing.T) {
	assert.Empty(t, ParseNatRules("", FamilyV4))
	assert.Empty(t, ParseNatRules("no relevant content here", FamilyV6))
}

func TestParseNatRulesIdempotent(t *testing.T) {
	dump := ":udp2raw_x - [0:0]\n-A udp2raw_x -j MASQUERADE"

	first := ParseNatRules(dump, FamilyV4)
	second := ParseNatRules(dump, FamilyV4)

	assert.Equal(t, first, second)
}
