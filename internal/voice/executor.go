package voice

import (
	"bytes"
	"context"
	"log"
	"os/exec"
	"strings"
	"time"
)

// DefaultCommandTimeout bounds a host command; the process has no other
// cancellation path once spawned.
const DefaultCommandTimeout = 10 * time.Second

// ExecResult is the structured outcome of one command attempt. A denied
// or unrecognized command fails without spawning anything.
type ExecResult struct {
	Success bool   `json:"success"`
	Result  string `json:"result"`
	Error   string `json:"error,omitempty"`
}

// runShell is swapped out by tests to keep host processes out of the
// test run.
var runShell = func(ctx context.Context, shell string) (stdout, stderr string, err error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", shell)
	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

// Executor runs recognized command phrases on the host, gated by the
// caller's privilege flag.
type Executor struct {
	Timeout time.Duration
}

func NewExecutor(timeout time.Duration) *Executor {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &Executor{Timeout: timeout}
}

// Execute matches the input against the command table and dispatches
// the mapped shell action. Any non-empty stderr counts as failure even
// if the process exited cleanly.
func (e *Executor) Execute(ctx context.Context, command string, isCreator bool) ExecResult {
	cmd, ok := Lookup(command)
	if !ok {
		return ExecResult{Success: false, Error: "Command not recognized or not authorized"}
	}

	if cmd.RequiresCreator && !isCreator {
		return ExecResult{Success: false, Error: "This command requires Creator-level access"}
	}

	ctx, cancel := context.WithTimeout(ctx, e.Timeout)
	defer cancel()

	stdout, stderr, err := runShell(ctx, cmd.Shell)
	if err != nil {
		log.Printf("Executor.Execute(): %q failed: %v", cmd.Phrase, err)
		return ExecResult{Success: false, Error: "Command execution failed"}
	}
	if stderr != "" {
		return ExecResult{Success: false, Error: stderr}
	}
	return ExecResult{Success: true, Result: strings.TrimSpace(stdout)}
}
