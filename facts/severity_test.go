package facts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifySeverity(t *testing.T) {
	tests := []struct {
		line string
		want Severity
	}{
		{"connection FAILED to peer", SeverityError},
		{"fatal: cannot bind raw socket", SeverityError},
		{"permission denied", SeverityError},
		{"warning: key exchange is slow", SeverityWarn},
		{"will retry in 5s", SeverityWarn},
		{"handshake complete", SeverityInfo},
		{"", SeverityInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifySeverity(tt.line), "line: %q", tt.line)
	}
}
