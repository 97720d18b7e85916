package facts

import "strings"

var errorKeywords = []string{"error", "err:", "fail", "fatal", "panic", "denied", "refused"}

var warnKeywords = []string{"warn", "deprecat", "retry", "timeout"}

// ClassifySeverity infers a severity for a log line by keyword. This is a
// total function: every line gets exactly one severity, info by default.
func ClassifySeverity(line string) Severity {
	lower := strings.ToLower(line)
	for _, kw := range errorKeywords {
		if strings.Contains(lower, kw) {
			return SeverityError
		}
	}
	for _, kw := range warnKeywords {
		if strings.Contains(lower, kw) {
			return SeverityWarn
		}
	}
	return SeverityInfo
}
