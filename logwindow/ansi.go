package logwindow

import (
	"regexp"
	"strings"
)

var (
	csiRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
	oscRe = regexp.MustCompile(`\x1b\][^\x07]*\x07`)
)

// StripControlCodes removes ANSI CSI sequences, BEL-terminated OSC sequences
// and any stray ESC bytes, in that order. Timestamp parsing downstream
// assumes clean text.
func StripControlCodes(s string) string {
	s = csiRe.ReplaceAllString(s, "")
	s = oscRe.ReplaceAllString(s, "")
	return strings.ReplaceAll(s, "\x1b", "")
}
