// Package probe runs external tools and network checks on behalf of the
// launcher and normalizes their outcome into trimmed output or a
// CommandError.
package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"time"

	"retreivr-launcher/internal/domain"
)

// genericFailure is reported when a failing process wrote nothing to stderr.
const genericFailure = "command failed"

// dockerSearchDirs are conventional engine install locations that GUI
// sessions often lack on PATH.
var dockerSearchDirs = []string{
	"/opt/homebrew/bin",
	"/usr/local/bin",
	"/Applications/Docker.app/Contents/Resources/bin",
}

// Command describes one external process invocation.
type Command struct {
	Name    string
	Args    []string
	Dir     string
	Timeout time.Duration
}

// String renders the command line for logs and errors.
func (c Command) String() string {
	parts := append([]string{c.Name}, c.Args...)
	return strings.Join(parts, " ")
}

// Runner executes external commands.
type Runner interface {
	// Output runs cmd and returns its trimmed stdout on a zero exit status.
	Output(ctx context.Context, cmd Command) (string, error)
}

// CommandError captures a failed external command.
type CommandError struct {
	Command  string   `json:"command"`
	Args     []string `json:"args"`
	ExitCode int      `json:"exitCode"`
	Message  string   `json:"message"`
	Err      error    `json:"-"`
}

// Error returns the process's own stderr, or a generic message.
func (e *CommandError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

// Is makes every CommandError match domain.ErrCommandFailed.
func (e *CommandError) Is(target error) bool {
	return target == domain.ErrCommandFailed
}

// Unwrap exposes the underlying exec error.
func (e *CommandError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ExecRunner executes commands via os/exec.
type ExecRunner struct {
	logger  *slog.Logger
	getenv  func(string) string
	dirHint func(string) bool
}

// NewExecRunner builds a runner using the real process environment.
func NewExecRunner(logger *slog.Logger) *ExecRunner {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExecRunner{
		logger:  logger,
		getenv:  os.Getenv,
		dirHint: dirExists,
	}
}

// Output runs one command and captures stdout, stderr, and exit code.
func (r *ExecRunner) Output(ctx context.Context, cmd Command) (string, error) {
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	program := cmd.Name
	var env []string
	if isDocker(cmd.Name) {
		searchPath := augmentPath(r.getenv("PATH"), dockerSearchDirs, r.dirHint)
		program = resolveProgram(cmd.Name, searchPath)
		env = append(os.Environ(), "PATH="+searchPath)
	}

	proc := exec.CommandContext(ctx, program, cmd.Args...)
	proc.Dir = cmd.Dir
	if env != nil {
		proc.Env = env
	}
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	proc.Stdout = &stdout
	proc.Stderr = &stderr

	started := time.Now()
	err := proc.Run()
	r.logger.Debug("external command finished",
		"command", cmd.String(),
		"dir", cmd.Dir,
		"duration", time.Since(started),
		"error", err)
	if err == nil {
		return strings.TrimSpace(stdout.String()), nil
	}

	cmdErr := &CommandError{
		Command:  cmd.Name,
		Args:     cmd.Args,
		ExitCode: -1,
		Err:      err,
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		cmdErr.Message = fmt.Sprintf("%s timed out after %s", cmd.String(), cmd.Timeout)
	case cmdErr.ExitCode == -1 && exitErr == nil:
		cmdErr.Message = err.Error()
	default:
		cmdErr.Message = strings.TrimSpace(stderr.String())
		if cmdErr.Message == "" {
			cmdErr.Message = genericFailure
		}
	}
	return "", cmdErr
}

// Succeeds reports whether cmd exits zero.
func Succeeds(ctx context.Context, runner Runner, cmd Command) bool {
	_, err := runner.Output(ctx, cmd)
	return err == nil
}

// isDocker matches the engine binary by base name.
func isDocker(name string) bool {
	base := filepath.Base(name)
	if goruntime.GOOS == "windows" {
		base = strings.TrimSuffix(strings.ToLower(base), ".exe")
	}
	return base == "docker"
}

// augmentPath appends existing candidate directories missing from current.
func augmentPath(current string, candidates []string, exists func(string) bool) string {
	entries := make([]string, 0, len(candidates)+8)
	seen := make(map[string]bool)
	for _, entry := range filepath.SplitList(current) {
		if entry == "" {
			continue
		}
		entries = append(entries, entry)
		seen[entry] = true
	}

	for _, candidate := range candidates {
		if seen[candidate] || !exists(candidate) {
			continue
		}
		entries = append(entries, candidate)
		seen[candidate] = true
	}
	return strings.Join(entries, string(os.PathListSeparator))
}

// resolveProgram finds name on searchPath, falling back to name itself so
// exec reports the lookup failure.
func resolveProgram(name, searchPath string) string {
	if strings.ContainsRune(name, filepath.Separator) || strings.Contains(name, "/") {
		return name
	}
	for _, dir := range filepath.SplitList(searchPath) {
		if found, err := exec.LookPath(filepath.Join(dir, name)); err == nil {
			return found
		}
	}
	return name
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
