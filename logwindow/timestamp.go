package logwindow

import (
	"regexp"
	"time"
)

// syslog-style prefix, with or without a year: "Jan  2 15:04:05 2006".
var syslogTimeRe = regexp.MustCompile(`^([A-Z][a-z]{2}) {1,2}(\d{1,2}) (\d{2}:\d{2}:\d{2})( \d{4})?`)

// facility.level token as emitted by busybox logread: "daemon.info",
// "kern.warn", ...
var facilityRe = regexp.MustCompile(`\b[a-z0-9]+\.(trace|debug|info|notice|warn|warning|err|error|crit|alert|emerg)\b`)

var levelRanks = map[string]int{
	"trace":   0,
	"debug":   1,
	"info":    2,
	"notice":  2,
	"warn":    3,
	"warning": 3,
	"err":     4,
	"error":   4,
	"crit":    4,
	"alert":   4,
	"emerg":   4,
}

// ParseTimestamp extracts a leading syslog-style timestamp from a cleaned
// log line. Lines without a year get the reference time's year.
func ParseTimestamp(line string, ref time.Time) (time.Time, bool) {
	m := syslogTimeRe.FindStringSubmatch(line)
	if m == nil {
		return time.Time{}, false
	}
	stamp := m[1] + " " + m[2] + " " + m[3]
	if m[4] != "" {
		t, err := time.ParseInLocation("Jan 2 15:04:05 2006", stamp+m[4], ref.Location())
		if err != nil {
			return time.Time{}, false
		}
		return t, true
	}
	t, err := time.ParseInLocation("Jan 2 15:04:05", stamp, ref.Location())
	if err != nil {
		return time.Time{}, false
	}
	return t.AddDate(ref.Year(), 0, 0), true
}

// DetectLevel finds a facility level token in a line. Absence of a token is
// not an error; such lines are never filtered by level.
func DetectLevel(line string) (string, bool) {
	m := facilityRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// LevelRank maps a level token through the fixed ordinal table
// trace<debug<info<warn/warning<err/error. Unknown tokens rank as info.
func LevelRank(level string) int {
	if r, ok := levelRanks[level]; ok {
		return r
	}
	return levelRanks["info"]
}
