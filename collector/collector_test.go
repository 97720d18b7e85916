package collector

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	// keyed by binary name
	out  map[string]string
	code map[string]int
	err  map[string]error
}

func (f fakeRunner) Run(ctx context.Context, path string, args ...string) (string, int, error) {
	if err, ok := f.err[path]; ok {
		return "", -1, err
	}
	return f.out[path], f.code[path], nil
}

func TestParseInstanceKey(t *testing.T) {
	tests := []struct {
		cmdline string
		want    string
	}{
		{"udp2raw -c --conf-file /var/etc/udp2raw-client-cfg1.conf", "client+cfg1"},
		{"/usr/bin/udp2raw -s --conf-file /var/etc/udp2raw-server-abc9.conf", "server+abc9"},
		{"udpspeeder --conf-file /tmp/udpspeeder-client.x2.conf", "client+x2"},
		{"udp2raw -c -l 127.0.0.1:3333", ""},
		{"sshd: root@pts/0", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseInstanceKey(tt.cmdline), "cmdline: %q", tt.cmdline)
	}
}

func TestNatTable(t *testing.T) {
	c := NewWithRunner(fakeRunner{
		out: map[string]string{
			"iptables":  "-N udp2raw_cfg1\n-A udp2raw_cfg1 -j MASQUERADE\n",
			"ip6tables": "",
		},
		code: map[string]int{"iptables": 0, "ip6tables": 0},
	})

	dump, err := c.NatTable(context.Background())

	require.NoError(t, err)
	assert.Contains(t, dump.V4, "udp2raw_cfg1")
	assert.Empty(t, dump.V6)
}

func TestNatTableNonZeroEmptyIsNoData(t *testing.T) {
	// Some iptables builds exit non-zero when the nat table has no
	// entries; that is "no rules", not a failure.
	c := NewWithRunner(fakeRunner{
		out:  map[string]string{"iptables": "", "ip6tables": ""},
		code: map[string]int{"iptables": 3, "ip6tables": 3},
	})

	dump, err := c.NatTable(context.Background())

	require.NoError(t, err)
	assert.Empty(t, dump.V4)
	assert.Empty(t, dump.V6)
}

func TestNatTablePartialFailure(t *testing.T) {
	c := NewWithRunner(fakeRunner{
		out:  map[string]string{"iptables": "-N udp2raw_x\n"},
		code: map[string]int{"iptables": 0},
		err:  map[string]error{"ip6tables": errors.New("command timed out")},
	})

	dump, err := c.NatTable(context.Background())

	// The v4 half still comes through; the error reports the v6 failure.
	require.Error(t, err)
	assert.Contains(t, dump.V4, "udp2raw_x")
	assert.Empty(t, dump.V6)
}

func TestLogTailFallsBackToJournalctl(t *testing.T) {
	c := NewWithRunner(fakeRunner{
		out:  map[string]string{"journalctl": "May 10 12:00:00 host udp2raw[1]: hello\n"},
		code: map[string]int{"journalctl": 0},
		err:  map[string]error{"logread": errors.New("executable file not found")},
	})

	out, err := c.LogTail(context.Background(), "udp2raw", 50)

	require.NoError(t, err)
	assert.Contains(t, out, "hello")
}

func TestLogTailTruncatesToRequestedLines(t *testing.T) {
	var blob strings.Builder
	for i := 0; i < 10; i++ {
		blob.WriteString("line\n")
	}
	c := NewWithRunner(fakeRunner{
		out:  map[string]string{"logread": blob.String()},
		code: map[string]int{"logread": 0},
	})

	out, err := c.LogTail(context.Background(), "udp2raw", 4)

	require.NoError(t, err)
	assert.Len(t, strings.Split(out, "\n"), 4)
}

func TestLogTailBothSourcesFail(t *testing.T) {
	c := NewWithRunner(fakeRunner{
		err: map[string]error{
			"logread":    errors.New("not found"),
			"journalctl": errors.New("not found"),
		},
	})

	_, err := c.LogTail(context.Background(), "udp2raw", 50)

	assert.Error(t, err)
}
