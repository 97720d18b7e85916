// Package logwindow maintains a bounded, orderable view over a raw log
// buffer: control codes stripped, timestamps parsed, a level threshold and a
// "since cutoff" filter applied, size capped, most-recent-first for display.
package logwindow

import (
	"fmt"
	"strings"
	"time"

	"github.com/igor04091968/tun-status/facts"
	"github.com/igor04091968/tun-status/util"
)

// Line is one processed log line.
type Line struct {
	Raw      string         `json:"-"`
	Text     string         `json:"text"`
	Time     time.Time      `json:"time"`
	HasTime  bool           `json:"hasTime"`
	Severity facts.Severity `json:"severity"`
	Marker   bool           `json:"marker,omitempty"`
}

// Window is an immutable display-ordered view over a log source.
type Window struct {
	Lines   []Line     `json:"lines"` // most-recent-first
	Cutoff  *time.Time `json:"cutoff,omitempty"`
	MaxSize int        `json:"maxSize"`
}

// Update rebuilds a window from a raw log blob.
//
// Filtering happens in chronological order: level threshold, then cutoff,
// then the size bound keeps the last maxSize lines, and only then is the
// sequence reversed for most-recent-first display. Truncating after the
// reversal would retain the wrong end of the buffer.
func Update(raw string, cutoff *time.Time, minLevel string, maxSize int) Window {
	minRank := LevelRank(minLevel)
	now := time.Now()

	var lines []Line
	scanner := util.NewNewLineScanner(strings.NewReader(raw))
	for scanner.Scan() {
		text := strings.TrimRight(StripControlCodes(scanner.Text()), " \t")
		if text == "" {
			continue
		}

		if level, ok := DetectLevel(text); ok && LevelRank(level) < minRank {
			continue
		}

		t, hasTime := ParseTimestamp(text, now)
		if cutoff != nil {
			// Fail-open only applies outside cutoff mode; during
			// cutoff filtering untimestamped lines are dropped.
			if !hasTime || !t.After(*cutoff) {
				continue
			}
		}

		lines = append(lines, Line{
			Raw:      scanner.Text(),
			Text:     text,
			Time:     t,
			HasTime:  hasTime,
			Severity: facts.ClassifySeverity(text),
		})
	}

	if maxSize < 0 {
		maxSize = 0
	}
	if len(lines) > maxSize {
		lines = lines[len(lines)-maxSize:]
	}

	// The marker is exempt from the size bound; truncating first would
	// evict it whenever the post-cutoff window is already full.
	if cutoff != nil && maxSize > 0 {
		marker := Line{
			Text:     fmt.Sprintf("--- logs cleared at %s ---", cutoff.Format("2006-01-02 15:04:05")),
			Time:     *cutoff,
			HasTime:  true,
			Severity: facts.SeverityInfo,
			Marker:   true,
		}
		lines = append([]Line{marker}, lines...)
	}

	for i, j := 0, len(lines)-1; i < j; i, j = i+1, j-1 {
		lines[i], lines[j] = lines[j], lines[i]
	}

	return Window{Lines: lines, Cutoff: cutoff, MaxSize: maxSize}
}
