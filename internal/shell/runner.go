package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/tabby/internal/logging"
)

// Result is the outcome of one run.
type Result struct {
	ID       string
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Output returns stdout, or stderr when stdout is empty.
func (r Result) Output() string {
	if len(r.Stdout) > 0 {
		return string(r.Stdout)
	}
	return string(r.Stderr)
}

// Lines returns Output split into lines without terminators.
func (r Result) Lines() []string {
	out := strings.ReplaceAll(r.Output(), "\r\n", "\n")
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return []string{""}
	}
	return strings.Split(out, "\n")
}

// Runner runs commands through a shell program.
type Runner struct {
	// Program is the shell, e.g. "sh".
	Program string
	// Flag makes Program read a command line from its next argument, e.g. "-c".
	Flag string
	// Dir is the working directory; empty means the editor's.
	Dir string

	logger *logging.Logger
}

// NewRunner creates a runner for program and flag.
func NewRunner(program, flag string, logger *logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NullLogger
	}
	return &Runner{
		Program: program,
		Flag:    flag,
		logger:  logger.WithComponent("shell"),
	}
}

// RunLine runs line as a single shell command line.
func (r *Runner) RunLine(ctx context.Context, line string) (Result, error) {
	if strings.TrimSpace(line) == "" {
		return Result{}, ErrEmptyCommand
	}
	return r.run(ctx, r.Flag, line)
}

// RunFile runs the script at path with args. A missing script is an
// error rather than a shell failure.
func (r *Runner) RunFile(ctx context.Context, path string, args []string) (Result, error) {
	if path == "" {
		return Result{}, ErrEmptyCommand
	}
	if _, err := os.Stat(path); err != nil {
		return Result{}, err
	}
	argv := append([]string{path}, args...)
	if runtime.GOOS == "windows" {
		// cmd needs /C to run a batch file and exit.
		argv = append([]string{r.Flag}, argv...)
	}
	return r.run(ctx, argv...)
}

func (r *Runner) run(ctx context.Context, args ...string) (Result, error) {
	if r.Program == "" {
		return Result{}, ErrNoShell
	}

	res := Result{ID: uuid.New().String()}
	log := r.logger.WithField("run", res.ID)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Program, args...)
	cmd.Dir = r.Dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debug("start %s %q", r.Program, args)
	start := time.Now()
	err := cmd.Run()
	res.Duration = time.Since(start)
	res.Stdout = stdout.Bytes()
	res.Stderr = stderr.Bytes()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		log.Warn("run failed: %v", err)
		return res, fmt.Errorf("run %s: %w", r.Program, err)
	}

	log.WithFields(map[string]any{
		"exit":     res.ExitCode,
		"duration": res.Duration.Round(time.Millisecond),
	}).Debug("finished")
	return res, nil
}
