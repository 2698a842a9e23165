package services

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes an external command and returns its standard output
type Runner interface {
	Run(name string, args ...string) (string, error)
}

// ExecRunner runs commands as child processes
type ExecRunner struct{}

func (ExecRunner) Run(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		errMsg := stderr.String()
		if errMsg != "" {
			return stdout.String(), fmt.Errorf("%s error: %s", name, strings.TrimSpace(errMsg))
		}
		return stdout.String(), fmt.Errorf("%s execution failed: %w", name, err)
	}

	return strings.TrimSpace(stdout.String()), nil
}
