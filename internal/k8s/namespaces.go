package k8s

import (
	"context"
	"fmt"

	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"

	"github.com/renato0307/kubectl-copi/internal/logging"
)

// ListNamespaceNames lists all namespaces in the cluster and returns their
// names in the order the API server returned them. Unnamed entries are skipped.
func ListNamespaceNames(ctx context.Context, clientset kubernetes.Interface) ([]string, error) {
	tc := logging.Start("list namespaces")

	namespaces, err := clientset.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list namespaces: %w", err)
	}

	names := make([]string, 0, len(namespaces.Items))
	for _, ns := range namespaces.Items {
		if ns.Name == "" {
			continue
		}
		names = append(names, ns.Name)
	}

	logging.EndWithCount(tc, len(names))
	return names, nil
}
