package common

import (
	"errors"
	"fmt"
)

// NewError builds an error from a format string, or a plain error when no
// arguments are given.
func NewError(format string, a ...interface{}) error {
	if len(a) == 0 {
		return errors.New(format)
	}
	return fmt.Errorf(format, a...)
}
