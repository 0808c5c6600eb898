// Package kubectl persists context and namespace choices by running
// kubectl's own config subcommands.
package kubectl

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"k8s.io/cli-runtime/pkg/genericiooptions"

	"github.com/renato0307/kubectl-copi/internal/logging"
)

// DefaultBinary is the kubectl executable looked up in PATH
const DefaultBinary = "kubectl"

// ExitError reports a kubectl invocation that ran but exited nonzero
type ExitError struct {
	Args []string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("kubectl %s exited with status %d", strings.Join(e.Args, " "), e.Code)
}

// Executor runs kubectl as a child process with the caller's standard
// streams attached, so kubectl's own messages reach the user untouched
type Executor struct {
	binary     string
	kubeconfig string
	context    string
	streams    genericiooptions.IOStreams
}

// NewExecutor creates a new kubectl executor. kubeconfig and contextName
// are forwarded only when set, mirroring what the user passed to us.
func NewExecutor(binary, kubeconfig, contextName string, streams genericiooptions.IOStreams) *Executor {
	if binary == "" {
		binary = DefaultBinary
	}
	return &Executor{
		binary:     binary,
		kubeconfig: kubeconfig,
		context:    contextName,
		streams:    streams,
	}
}

// UseContext runs `kubectl config use-context <name>`
func (e *Executor) UseContext(ctx context.Context, name string) error {
	return e.Run(ctx, UseContextArgs(name)...)
}

// SetNamespace runs `kubectl config set-context --current --namespace <name>`.
// With a --context override the named context is modified instead of the
// current one, since that is the context the namespaces were listed from.
func (e *Executor) SetNamespace(ctx context.Context, name string) error {
	return e.Run(ctx, SetNamespaceArgs(e.context, name)...)
}

// UseContextArgs builds the kubectl arguments that switch the current context
func UseContextArgs(name string) []string {
	return []string{"config", "use-context", name}
}

// SetNamespaceArgs builds the kubectl arguments that change the namespace of
// contextName, or of the current context when contextName is empty
func SetNamespaceArgs(contextName, namespace string) []string {
	if contextName != "" {
		return []string{"config", "set-context", contextName, "--namespace", namespace}
	}
	return []string{"config", "set-context", "--current", "--namespace", namespace}
}

// Run executes kubectl with args and waits for it to finish
func (e *Executor) Run(ctx context.Context, args ...string) error {
	fullArgs := append([]string{}, args...)
	if e.kubeconfig != "" {
		fullArgs = append(fullArgs, "--kubeconfig", e.kubeconfig)
	}

	cmd := exec.CommandContext(ctx, e.binary, fullArgs...)
	cmd.Stdin = e.streams.In
	cmd.Stdout = e.streams.Out
	cmd.Stderr = e.streams.ErrOut

	log := logging.Get().With("binary", e.binary, "args", fullArgs)
	log.Info("running kubectl")

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			log.Error("kubectl failed", "code", exitErr.ExitCode())
			return &ExitError{Args: fullArgs, Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to start %s: %w", e.binary, err)
	}
	return nil
}

// CheckAvailable checks if the kubectl binary can be found in PATH
func CheckAvailable(binary string) error {
	if binary == "" {
		binary = DefaultBinary
	}
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("%s not found in PATH\nPlease install kubectl: https://kubernetes.io/docs/tasks/tools/", binary)
	}
	return nil
}
