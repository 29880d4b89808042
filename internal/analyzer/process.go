package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Process runs an external command per request: the JSON encoded Request is
// written to stdin and a JSON Result is read from stdout.
type Process struct {
	Command []string
	Dir     string
	Env     []string
}

// NewProcess splits a command line on whitespace.
func NewProcess(command string) (*Process, error) {
	args := strings.Fields(command)
	if len(args) == 0 {
		return nil, errors.New("analyzer command is empty")
	}
	return &Process{Command: args}, nil
}

func (p *Process) Analyze(ctx context.Context, req Request) (*Result, error) {
	in, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...)
	cmd.Dir = p.Dir
	if len(p.Env) > 0 {
		cmd.Env = append(cmd.Environ(), p.Env...)
	}
	cmd.Stdin = bytes.NewReader(in)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", p.Command[0], err, msg)
		}
		return nil, fmt.Errorf("%s: %w", p.Command[0], err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", p.Command[0], ErrNoResult)
	}
	var res Result
	if err := json.Unmarshal(stdout.Bytes(), &res); err != nil {
		return nil, fmt.Errorf("%s: decode result: %w", p.Command[0], err)
	}
	return &res, nil
}
