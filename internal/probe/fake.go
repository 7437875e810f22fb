package probe

import (
	"context"
	"strings"
	"sync"

	"retreivr-launcher/internal/domain"
)

// Response is a scripted outcome for FakeRunner.
type Response struct {
	Output string
	Failed bool
	Stderr string
	// LaunchErr simulates a command that could not be started.
	LaunchErr error
}

// FakeRunner answers commands from a script keyed by command line and
// records every invocation. Unscripted commands fail.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string][]Response
	calls     []Command
}

// NewFakeRunner creates an empty scripted runner for tests.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string][]Response)}
}

// On queues a response for the command line "name arg1 arg2...". The last
// queued response repeats once the queue is drained.
func (f *FakeRunner) On(line string, resp Response) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[line] = append(f.responses[line], resp)
	return f
}

// OK queues a successful response.
func (f *FakeRunner) OK(line, output string) *FakeRunner {
	return f.On(line, Response{Output: output})
}

// Fail queues a failing response with the given stderr.
func (f *FakeRunner) Fail(line, stderr string) *FakeRunner {
	return f.On(line, Response{Failed: true, Stderr: stderr})
}

// Output implements Runner.
func (f *FakeRunner) Output(_ context.Context, cmd Command) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, cmd)
	line := cmd.String()
	queue := f.responses[line]
	if len(queue) == 0 {
		return "", &CommandError{Command: cmd.Name, Args: cmd.Args, ExitCode: -1, Message: "unscripted command: " + line}
	}

	resp := queue[0]
	if len(queue) > 1 {
		f.responses[line] = queue[1:]
	}
	if resp.LaunchErr != nil {
		return "", &CommandError{Command: cmd.Name, Args: cmd.Args, ExitCode: -1, Message: resp.LaunchErr.Error(), Err: resp.LaunchErr}
	}
	if resp.Failed {
		message := resp.Stderr
		if message == "" {
			message = genericFailure
		}
		return "", &CommandError{Command: cmd.Name, Args: cmd.Args, ExitCode: 1, Message: message, Err: domain.ErrCommandFailed}
	}
	return strings.TrimSpace(resp.Output), nil
}

// Calls returns every recorded command.
func (f *FakeRunner) Calls() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Command(nil), f.calls...)
}

// Called reports whether the command line was invoked.
func (f *FakeRunner) Called(line string) bool {
	for _, call := range f.Calls() {
		if call.String() == line {
			return true
		}
	}
	return false
}
