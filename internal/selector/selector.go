// Package selector drives the two interactive flows: pick a context or pick
// a namespace, then persist the choice if it differs from the current one.
package selector

import (
	"context"
	"errors"
	"fmt"

	"k8s.io/client-go/kubernetes"

	"github.com/renato0307/kubectl-copi/internal/k8s"
	"github.com/renato0307/kubectl-copi/internal/logging"
	"github.com/renato0307/kubectl-copi/internal/picker"
)

const (
	ContextPrompt   = "Context: "
	NamespacePrompt = "Namespace: "
)

var (
	// ErrNoContexts is returned when the kubeconfig defines no contexts
	ErrNoContexts = errors.New("no contexts found in kubeconfig")

	// ErrNoNamespaces is returned when the cluster lists no namespaces
	ErrNoNamespaces = errors.New("no namespaces found in cluster")
)

// Picker presents items and returns the index the user confirmed
type Picker interface {
	Pick(ctx context.Context, prompt string, items []picker.Item, start int) (int, error)
}

// Applier persists a choice
type Applier interface {
	UseContext(ctx context.Context, name string) error
	SetNamespace(ctx context.Context, name string) error
}

// Selector wires configuration, the picker and the applier together
type Selector struct {
	config  k8s.ConfigProvider
	picker  Picker
	applier Applier

	// connect is swapped in tests; production uses k8s.Connect
	connect func(k8s.ClientProvider) (kubernetes.Interface, error)
}

// New creates a new selector
func New(config k8s.ConfigProvider, p Picker, applier Applier) *Selector {
	return &Selector{
		config:  config,
		picker:  p,
		applier: applier,
		connect: k8s.Connect,
	}
}

// SelectContext lets the user pick a kubeconfig context and switches to it
func (s *Selector) SelectContext(ctx context.Context) error {
	contexts, current, err := s.config.LoadContexts()
	if err != nil {
		return err
	}
	if len(contexts) == 0 {
		return ErrNoContexts
	}

	names := make([]string, len(contexts))
	items := make([]picker.Item, len(contexts))
	for i, c := range contexts {
		names[i] = c.Name
		items[i] = picker.Item{Label: k8s.FormatContext(*c), Value: c.Name}
	}

	idx, err := s.picker.Pick(ctx, ContextPrompt, items, CurrentIndex(names, current))
	if err != nil {
		return err
	}

	choice := names[idx]
	if choice == current {
		logging.Info("context unchanged", "context", current)
		return nil
	}

	logging.Info("switching context", "from", current, "to", choice)
	if err := s.applier.UseContext(ctx, choice); err != nil {
		return fmt.Errorf("failed to switch to context %q: %w", choice, err)
	}
	return nil
}

// SelectNamespace lets the user pick a namespace from the live cluster and
// makes it the default namespace of the active context
func (s *Selector) SelectNamespace(ctx context.Context) error {
	clientset, err := s.connect(s.config)
	if err != nil {
		return err
	}

	namespaces, err := k8s.ListNamespaceNames(ctx, clientset)
	if err != nil {
		return err
	}
	if len(namespaces) == 0 {
		return ErrNoNamespaces
	}

	current, err := s.config.CurrentNamespace()
	if err != nil {
		return err
	}

	items := make([]picker.Item, len(namespaces))
	for i, ns := range namespaces {
		items[i] = picker.Item{Label: ns, Value: ns}
	}

	idx, err := s.picker.Pick(ctx, NamespacePrompt, items, CurrentIndex(namespaces, current))
	if err != nil {
		return err
	}

	choice := namespaces[idx]
	if choice == current {
		logging.Info("namespace unchanged", "namespace", current)
		return nil
	}

	logging.Info("switching namespace", "from", current, "to", choice)
	if err := s.applier.SetNamespace(ctx, choice); err != nil {
		return fmt.Errorf("failed to switch to namespace %q: %w", choice, err)
	}
	return nil
}

// CurrentIndex returns the position of current in names, or 0 if absent
func CurrentIndex(names []string, current string) int {
	for i, name := range names {
		if name == current {
			return i
		}
	}
	return 0
}
