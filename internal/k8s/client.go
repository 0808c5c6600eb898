package k8s

import (
	"errors"
	"fmt"

	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/client-go/kubernetes"

	"github.com/renato0307/kubectl-copi/internal/logging"
)

var (
	// ErrClientInit means no client could be built from the ambient
	// configuration; there is nothing sensible to fall back to
	ErrClientInit = errors.New("failed to init default kubernetes client")

	// ErrUnauthorized is returned when the API server rejects our credentials
	ErrUnauthorized = errors.New("unauthorized - are you logged in on the cluster?")
)

// ProbeErrorKind classifies the outcome of the connectivity probe
type ProbeErrorKind int

const (
	ProbeOK ProbeErrorKind = iota
	ProbeUnauthorized
	ProbeOther
)

func (k ProbeErrorKind) String() string {
	switch k {
	case ProbeOK:
		return "ok"
	case ProbeUnauthorized:
		return "unauthorized"
	default:
		return "other"
	}
}

// ClassifyProbeError maps a probe error to its kind. Only HTTP 401 gets
// special treatment; 403 means we are authenticated and falls under other.
func ClassifyProbeError(err error) ProbeErrorKind {
	switch {
	case err == nil:
		return ProbeOK
	case apierrors.IsUnauthorized(err):
		return ProbeUnauthorized
	default:
		return ProbeOther
	}
}

// Connect builds a clientset and checks the API server answers by asking
// for its version. A 401 is turned into ErrUnauthorized; any other probe
// error is returned unchanged.
func Connect(provider ClientProvider) (kubernetes.Interface, error) {
	clientset, err := provider.Clientset()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClientInit, err)
	}

	logging.Debug("connecting to cluster...")

	tc := logging.Start("probe api server")
	info, err := clientset.Discovery().ServerVersion()
	logging.End(tc)

	switch ClassifyProbeError(err) {
	case ProbeUnauthorized:
		logging.Warn("api server rejected credentials", "error", err)
		return nil, ErrUnauthorized
	case ProbeOther:
		logging.Error("api server probe failed", "error", err)
		return nil, err
	}

	logging.Debug("connected to cluster", "gitVersion", info.GitVersion, "platform", info.Platform)
	return clientset, nil
}
