package optimizer

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// Result reports how long a command took.
type Result struct {
	Wall   time.Duration
	User   time.Duration
	System time.Duration
}

func (r Result) String() string {
	return fmt.Sprintf("real %.3fs user %.3fs sys %.3fs", r.Wall.Seconds(), r.User.Seconds(), r.System.Seconds())
}

// Runner executes commands. The launcher depends on this interface so tests
// can stand in for the real binaries.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands as child processes, streaming their output.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run resolves cmd.Path through PATH and waits for the process to exit.
// A non-zero exit status is returned as *exec.ExitError.
func (r ExecRunner) Run(ctx context.Context, cmd Command) (Result, error) {
	path, err := exec.LookPath(cmd.Path)
	if err != nil {
		return Result{}, err
	}

	// #nosec G204 -- the binary and its arguments come from the operator's own flags
	c := exec.CommandContext(ctx, path, cmd.Args...)
	c.Dir = cmd.Dir
	c.Stdout = r.Stdout
	c.Stderr = r.Stderr

	start := time.Now()
	err = c.Run()
	res := Result{Wall: time.Since(start)}
	if c.ProcessState != nil {
		res.User = c.ProcessState.UserTime()
		res.System = c.ProcessState.SystemTime()
	}
	return res, err
}
