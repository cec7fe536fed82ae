package rustc

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"sync"
	"time"

	"github.com/alnah/go-md2slides/internal/hints"
)

const cargoCommand = "cargo"

// cargoFlags are shared by every per-block invocation.
var cargoFlags = []string{"--quiet", "--color=always", "--frozen"}

// runner drives cargo for one build. Invocations share the target directory
// and are serialized.
type runner struct {
	exec    Executor
	dir     string
	timeout time.Duration
	logger  *slog.Logger

	mu   sync.Mutex
	deps sync.Once
}

// compileDeps builds the crate dependencies once, without a timeout: a cold
// registry can take minutes. Failures only show up in the block outputs.
func (r *runner) compileDeps(ctx context.Context) {
	r.deps.Do(func() {
		r.logger.Info("compiling cargo dependencies")
		out, err := r.exec.Run(ctx, r.dir, cargoCommand, "build")
		if err != nil && ctx.Err() == nil {
			r.logger.Warn("compiling cargo dependencies failed", "error", err, "output", string(out))
		}
	})
}

// outcome classifies one cargo invocation.
type outcome int

const (
	succeeded outcome = iota
	// failed covers compile errors, panics and timeouts: the output is the
	// block's result.
	failed
	// unstarted means cargo never ran; the output is an error message that
	// must not outlive the build.
	unstarted
)

// run compiles binary bin and, unless norun is set, runs it when compilation
// succeeded and printed nothing. Process failures and timeouts are part of
// the output; the error is non-nil only when ctx itself ends.
func (r *runner) run(ctx context.Context, bin string, norun bool) ([]byte, outcome, error) {
	r.compileDeps(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if norun {
		return r.invoke(ctx, "check", bin)
	}
	out, res, err := r.invoke(ctx, "rustc", bin)
	if err != nil || res != succeeded || len(out) > 0 {
		return out, res, err
	}
	return r.invoke(ctx, "run", bin)
}

func (r *runner) invoke(ctx context.Context, sub, bin string) ([]byte, outcome, error) {
	args := append([]string{sub}, cargoFlags...)
	args = append(args, "--bin", bin)

	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	out, err := r.exec.Run(cctx, r.dir, cargoCommand, args...)
	r.logger.Debug("cargo", "command", sub, "bin", bin, "duration", time.Since(start))
	if err == nil {
		return out, succeeded, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, failed, ctxErr
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(cctx.Err(), context.DeadlineExceeded):
		r.logger.Warn("cargo timed out", "command", sub, "bin", bin, "timeout", r.timeout)
		return out, failed, nil
	case errors.As(err, &exitErr):
		// Compile errors and panics exit non-zero; the output says it all.
		return out, failed, nil
	case errors.Is(err, exec.ErrNotFound):
		r.logger.Warn("cargo not found", "bin", bin)
		out = append(out, fmt.Sprintf("error: %v%s", err, hints.ForCargoMissing())...)
	default:
		r.logger.Warn("cargo failed to start", "command", sub, "error", err)
		out = append(out, fmt.Sprintf("error: %v", err)...)
	}
	return out, unstarted, nil
}
