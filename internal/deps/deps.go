package deps

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"ytdl/internal/services"
)

// DefaultVersionTimeout bounds a single version probe.
const DefaultVersionTimeout = 5 * time.Second

// Requirement names an external executable. With VersionArgs set it must
// also run with those arguments and exit zero.
type Requirement struct {
	Name        string
	Command     string
	Optional    bool
	VersionArgs []string
}

// Status is the outcome of checking one Requirement.
type Status struct {
	Name      string
	Command   string
	Optional  bool
	Available bool
	Path      string
	Version   string
	Detail    string
}

// CheckBinaries checks each requirement in order. Nothing is cached, so
// repeated calls observe the current PATH. A zero timeout uses
// DefaultVersionTimeout.
func CheckBinaries(ctx context.Context, requirements []Requirement, timeout time.Duration) []Status {
	if timeout <= 0 {
		timeout = DefaultVersionTimeout
	}
	results := make([]Status, len(requirements))
	for i, req := range requirements {
		results[i] = check(ctx, req, timeout)
	}
	return results
}

func check(ctx context.Context, req Requirement, timeout time.Duration) Status {
	status := Status{Name: req.Name, Command: strings.TrimSpace(req.Command), Optional: req.Optional}
	path, problem := lookup(status.Command)
	if problem != "" {
		status.Detail = problem
		return status
	}
	status.Path = path
	if len(req.VersionArgs) > 0 {
		output, err := probeVersion(ctx, path, req.VersionArgs, timeout)
		if err != nil {
			status.Detail = err.Error()
			return status
		}
		status.Version = ParseVersion(output)
	}
	status.Available = true
	return status
}

// Resolve returns the absolute path of command, searching PATH for bare
// names. Failure wraps services.ErrMissingDependency and names the tool.
func Resolve(name, command string) (string, error) {
	path, problem := lookup(strings.TrimSpace(command))
	if problem != "" {
		return "", services.Wrap(services.ErrMissingDependency, "", name, problem, nil)
	}
	return path, nil
}

func lookup(command string) (string, string) {
	if command == "" {
		return "", "command not configured"
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return "", fmt.Sprintf("binary %q not found", command)
	}
	return path, ""
}

func probeVersion(ctx context.Context, path string, args []string, timeout time.Duration) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(probeCtx, path, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	invocation := path + " " + strings.Join(args, " ")
	if err := cmd.Run(); err != nil {
		if errors.Is(probeCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%s timed out after %s", invocation, timeout)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("%s failed: %s", invocation, msg)
	}
	if strings.TrimSpace(stdout.String()) == "" {
		return stderr.String(), nil
	}
	return stdout.String(), nil
}
