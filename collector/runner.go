package collector

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// Runner executes a fixed, non-mutating external command and captures its
// output. Tests substitute canned output through this interface.
type Runner interface {
	Run(ctx context.Context, path string, args ...string) (stdout string, exitCode int, err error)
}

type execRunner struct {
	timeout time.Duration
}

func (r execRunner) Run(ctx context.Context, path string, args ...string) (string, int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return stdout.String(), exitErr.ExitCode(), nil
		}
		return "", -1, err
	}
	return stdout.String(), 0, nil
}
