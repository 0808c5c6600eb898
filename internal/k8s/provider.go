package k8s

import (
	"fmt"

	"k8s.io/cli-runtime/pkg/genericclioptions"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

// ClientProvider builds a clientset for the active context
type ClientProvider interface {
	Clientset() (kubernetes.Interface, error)
}

// ConfigProvider gives access to the local kubeconfig state the selectors
// need, plus a clientset for the live cluster
type ConfigProvider interface {
	ClientProvider

	// LoadContexts returns all configured contexts and the name of the
	// current context (empty if none is set)
	LoadContexts() ([]*ContextInfo, string, error)

	// CurrentNamespace returns the namespace kubectl would use for the
	// active context
	CurrentNamespace() (string, error)
}

// ClientConfigProvider implements ConfigProvider on top of kubectl's
// standard flag set, so --kubeconfig, --context and KUBECONFIG behave the
// same way they do for kubectl itself
type ClientConfigProvider struct {
	flags *genericclioptions.ConfigFlags
}

// NewClientConfigProvider creates a provider backed by the given flags
func NewClientConfigProvider(flags *genericclioptions.ConfigFlags) *ClientConfigProvider {
	return &ClientConfigProvider{flags: flags}
}

// LoadContexts implements ConfigProvider
func (p *ClientConfigProvider) LoadContexts() ([]*ContextInfo, string, error) {
	loader := p.flags.ToRawKubeConfigLoader()
	raw, err := loader.RawConfig()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	order := contextOrder(loader.ConfigAccess().GetLoadingPrecedence())
	return contextsFromConfig(&raw, order), raw.CurrentContext, nil
}

// CurrentNamespace implements ConfigProvider
func (p *ClientConfigProvider) CurrentNamespace() (string, error) {
	ns, _, err := p.flags.ToRawKubeConfigLoader().Namespace()
	if err != nil {
		return "", fmt.Errorf("failed to infer current namespace: %w", err)
	}
	if ns == "" {
		ns = DefaultNamespace
	}
	return ns, nil
}

// Clientset implements ClientProvider. The selected context must resolve to
// a cluster with a server; the loader's localhost fallback is not accepted.
func (p *ClientConfigProvider) Clientset() (kubernetes.Interface, error) {
	raw, err := p.flags.ToRawKubeConfigLoader().RawConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}
	contextName := raw.CurrentContext
	if p.flags.Context != nil && *p.flags.Context != "" {
		contextName = *p.flags.Context
	}
	if err := clientcmd.ConfirmUsable(raw, contextName); err != nil {
		return nil, fmt.Errorf("no usable kubeconfig context: %w", err)
	}

	config, err := p.flags.ToRESTConfig()
	if err != nil {
		return nil, fmt.Errorf("error building kubeconfig: %w", err)
	}
	config.Timeout = APITimeout

	clientset, err := kubernetes.NewForConfig(config)
	if err != nil {
		return nil, fmt.Errorf("error creating clientset: %w", err)
	}
	return clientset, nil
}
