package util

import (
	"bufio"
	"io"
)

// NewNewLineScanner returns a scanner that yields one line per Scan call.
func NewNewLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)
	return scanner
}
