package k8s

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/kubernetes/fake"
	k8stesting "k8s.io/client-go/testing"
	clientcmdapi "k8s.io/client-go/tools/clientcmd/api"
)

// fakeClientProvider hands out a prepared clientset (or error)
type fakeClientProvider struct {
	clientset kubernetes.Interface
	err       error
}

func (p *fakeClientProvider) Clientset() (kubernetes.Interface, error) {
	return p.clientset, p.err
}

// clientsetWithProbeError returns a fake clientset whose version probe fails with err
func clientsetWithProbeError(err error) *fake.Clientset {
	clientset := fake.NewClientset()
	clientset.PrependReactor("get", "version", func(action k8stesting.Action) (bool, runtime.Object, error) {
		return true, nil, err
	})
	return clientset
}

func TestClassifyProbeError(t *testing.T) {
	gr := schema.GroupResource{Resource: "namespaces"}

	tests := []struct {
		name     string
		err      error
		expected ProbeErrorKind
	}{
		{name: "nil", err: nil, expected: ProbeOK},
		{name: "401", err: apierrors.NewUnauthorized("token expired"), expected: ProbeUnauthorized},
		{name: "wrapped 401", err: fmt.Errorf("probe: %w", apierrors.NewUnauthorized("x")), expected: ProbeUnauthorized},
		{name: "403 is not unauthorized", err: apierrors.NewForbidden(gr, "", errors.New("rbac")), expected: ProbeOther},
		{name: "500", err: apierrors.NewInternalError(errors.New("boom")), expected: ProbeOther},
		{name: "network error", err: errors.New("dial tcp 127.0.0.1:6443: connect: connection refused"), expected: ProbeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyProbeError(tt.err))
		})
	}
}

func TestProbeErrorKind_String(t *testing.T) {
	assert.Equal(t, "ok", ProbeOK.String())
	assert.Equal(t, "unauthorized", ProbeUnauthorized.String())
	assert.Equal(t, "other", ProbeOther.String())
}

func TestConnect(t *testing.T) {
	probeErr := errors.New("dial tcp: i/o timeout")
	buildErr := errors.New("no configuration has been provided")

	tests := []struct {
		name       string
		provider   *fakeClientProvider
		expectErr  error
		expectSame bool // error must be the probe error itself, unwrapped
	}{
		{
			name:     "reachable cluster",
			provider: &fakeClientProvider{clientset: fake.NewClientset()},
		},
		{
			name:      "client construction failure",
			provider:  &fakeClientProvider{err: buildErr},
			expectErr: ErrClientInit,
		},
		{
			name:      "unauthorized probe",
			provider:  &fakeClientProvider{clientset: clientsetWithProbeError(apierrors.NewUnauthorized("token expired"))},
			expectErr: ErrUnauthorized,
		},
		{
			name:       "other probe error propagates unchanged",
			provider:   &fakeClientProvider{clientset: clientsetWithProbeError(probeErr)},
			expectErr:  probeErr,
			expectSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clientset, err := Connect(tt.provider)

			if tt.expectErr == nil {
				require.NoError(t, err)
				assert.Same(t, tt.provider.clientset, clientset)
				return
			}

			assert.ErrorIs(t, err, tt.expectErr)
			assert.Nil(t, clientset)
			if tt.expectSame {
				assert.Equal(t, tt.expectErr, err)
			}
		})
	}

	t.Run("construction failure keeps cause", func(t *testing.T) {
		_, err := Connect(&fakeClientProvider{err: buildErr})
		assert.ErrorIs(t, err, buildErr)
	})
}

// newAPIServer starts a fake API server answering /version with status
func newAPIServer(t *testing.T, versionStatus int) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(versionStatus)
		if versionStatus == http.StatusUnauthorized {
			fmt.Fprint(w, `{"kind":"Status","apiVersion":"v1","metadata":{},"status":"Failure","message":"Unauthorized","reason":"Unauthorized","code":401}`)
			return
		}
		fmt.Fprint(w, `{"major":"1","minor":"34","gitVersion":"v1.34.1","platform":"linux/amd64"}`)
	})
	mux.HandleFunc("/api/v1/namespaces", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"kind":"NamespaceList","apiVersion":"v1","metadata":{},"items":[`+
			`{"metadata":{"name":"default"}},{"metadata":{"name":"kube-system"}},{"metadata":{"name":"team-a"}}]}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// kubeconfigFor points a single context at server
func kubeconfigFor(t *testing.T, server string) string {
	t.Helper()

	config := clientcmdapi.NewConfig()
	config.Clusters["test"] = &clientcmdapi.Cluster{Server: server}
	config.AuthInfos["test"] = &clientcmdapi.AuthInfo{Token: "secret"}
	config.Contexts["test"] = &clientcmdapi.Context{Cluster: "test", AuthInfo: "test", Namespace: "team-a"}
	config.CurrentContext = "test"
	return writeKubeconfig(t, config)
}

func TestConnect_AgainstAPIServer(t *testing.T) {
	t.Run("401 becomes ErrUnauthorized", func(t *testing.T) {
		srv := newAPIServer(t, http.StatusUnauthorized)
		provider := newTestProvider(kubeconfigFor(t, srv.URL), "")

		_, err := Connect(provider)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("500 is returned as is", func(t *testing.T) {
		srv := newAPIServer(t, http.StatusInternalServerError)
		provider := newTestProvider(kubeconfigFor(t, srv.URL), "")

		_, err := Connect(provider)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthorized)
		assert.Equal(t, ProbeOther, ClassifyProbeError(err))
	})

	t.Run("healthy server lists namespaces", func(t *testing.T) {
		srv := newAPIServer(t, http.StatusOK)
		provider := newTestProvider(kubeconfigFor(t, srv.URL), "")

		clientset, err := Connect(provider)
		require.NoError(t, err)

		names, err := ListNamespaceNames(t.Context(), clientset)
		require.NoError(t, err)
		assert.Equal(t, []string{"default", "kube-system", "team-a"}, names)
	})
}
