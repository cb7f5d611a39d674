package compute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/armon/circbuf"
)

// Runner launches shell command strings. Commands may contain pipes and
// redirection.
type Runner interface {
	// Output runs command and returns its standard output. A non-zero exit
	// status is reported as an *ExitError, along with whatever was written
	// to stdout.
	Output(ctx context.Context, command string) (string, error)
	// Call runs command with the runner's stdout/stderr attached and waits
	// for it to finish. It returns the exit status; err is only non-nil
	// when the command could not be run at all.
	Call(ctx context.Context, command string) (int, error)
}

// ExitError reports a command which ran and exited with a non-zero status.
type ExitError struct {
	Command  string
	ExitCode int
	// Tail of the command's stderr.
	Stderr string
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command %q exited with status %d", e.Command, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// defaultStderrTail is the number of stderr bytes kept for error messages.
const defaultStderrTail = 4096

// ShellRunner runs commands with "<Shell> -c <command>".
type ShellRunner struct {
	// Defaults to /bin/sh.
	Shell string
	// Where Call sends the command's output. Default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer
	// Max bytes of stderr kept for error messages.
	StderrTail int64
}

// NewShellRunner returns a ShellRunner using the given shell.
func NewShellRunner(shell string) *ShellRunner {
	return &ShellRunner{Shell: shell}
}

func (r *ShellRunner) command(ctx context.Context, command string) (*exec.Cmd, *circbuf.Buffer, error) {
	shell := r.Shell
	if shell == "" {
		shell = "/bin/sh"
	}
	size := r.StderrTail
	if size <= 0 {
		size = defaultStderrTail
	}
	tail, err := circbuf.NewBuffer(size)
	if err != nil {
		return nil, nil, err
	}
	return exec.CommandContext(ctx, shell, "-c", command), tail, nil
}

// Output runs command and captures its stdout.
func (r *ShellRunner) Output(ctx context.Context, command string) (string, error) {
	cmd, tail, err := r.command(ctx, command)
	if err != nil {
		return "", err
	}
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = tail

	err = cmd.Run()
	return stdout.String(), r.wrap(command, tail, err)
}

// Call runs command, streaming its output, and returns its exit status.
func (r *ShellRunner) Call(ctx context.Context, command string) (int, error) {
	cmd, tail, err := r.command(ctx, command)
	if err != nil {
		return -1, err
	}
	cmd.Stdout = r.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	cmd.Stderr = io.MultiWriter(stderr, tail)

	err = r.wrap(command, tail, cmd.Run())
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode, nil
	}
	if err != nil {
		return -1, err
	}
	return 0, nil
}

func (r *ShellRunner) wrap(command string, tail *circbuf.Buffer, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		return &ExitError{
			Command:  command,
			ExitCode: exitErr.ExitCode(),
			Stderr:   tail.String(),
		}
	}
	return fmt.Errorf("running %q: %v", command, err)
}
