package rustc

import (
	"bytes"
	"context"
	"os/exec"
	"time"

	"github.com/alnah/go-md2slides/internal/process"
)

// Executor runs one external command in dir and returns what it wrote to
// stdout and stderr, interleaved. A non-nil error comes with whatever output
// was captured before the failure.
type Executor interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// waitDelay bounds how long Run waits for output pipes after the process
// group was killed.
const waitDelay = 2 * time.Second

// CommandExecutor runs commands with os/exec. Canceling ctx kills the
// command's whole process group, so cargo cannot leave a running binary
// behind.
type CommandExecutor struct{}

// Run implements Executor.
func (CommandExecutor) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- name and args are fixed cargo invocations
	cmd.Dir = dir
	process.SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = waitDelay

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}
