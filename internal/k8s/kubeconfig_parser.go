package k8s

import (
	"os"
	"sort"

	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
	clientcmdapiv1 "k8s.io/client-go/tools/clientcmd/api/v1"
	"sigs.k8s.io/yaml"
)

// ContextInfo holds context metadata from kubeconfig
type ContextInfo struct {
	Name      string
	Cluster   string
	User      string
	Namespace string
}

// contextOrder returns context names in the order they are written in the
// given kubeconfig files. A name seen in an earlier file wins, as in the
// merged config. Unreadable files are skipped; the merged load reports them.
func contextOrder(files []string) []string {
	seen := make(map[string]bool)
	var order []string
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		var config clientcmdapiv1.Config
		if err := yaml.Unmarshal(data, &config); err != nil {
			continue
		}
		for _, named := range config.Contexts {
			if named.Name == "" || seen[named.Name] {
				continue
			}
			seen[named.Name] = true
			order = append(order, named.Name)
		}
	}
	return order
}

// contextsFromConfig extracts all contexts from a merged kubeconfig, listed
// in order. Contexts missing from order follow, sorted by name.
func contextsFromConfig(config *clientcmdapi.Config, order []string) []*ContextInfo {
	contexts := make([]*ContextInfo, 0, len(config.Contexts))
	placed := make(map[string]bool, len(config.Contexts))

	add := func(name string) {
		ctx, ok := config.Contexts[name]
		if !ok || placed[name] {
			return
		}
		placed[name] = true
		info := &ContextInfo{Name: name}
		if ctx != nil {
			info.Cluster = ctx.Cluster
			info.User = ctx.AuthInfo
			info.Namespace = ctx.Namespace
		}
		contexts = append(contexts, info)
	}

	for _, name := range order {
		add(name)
	}

	var rest []string
	for name := range config.Contexts {
		if !placed[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		add(name)
	}

	return contexts
}
