package gate_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/gate"
)

// captureTripper records the request it receives instead of dialing out.
type captureTripper struct {
	req *http.Request
}

func (c *captureTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	c.req = req
	return &http.Response{StatusCode: http.StatusOK, Body: http.NoBody}, nil
}

func newRequest(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return &http.Request{Method: http.MethodPost, URL: u, Header: make(http.Header)}
}

func testTransport(base string) (*gate.Transport, *captureTripper) {
	next := &captureTripper{}
	cfg := domain.EffectiveConfig{BaseURL: base, Credential: "sk-secret"}
	return gate.NewTransport(cfg, next), next
}

func TestTransport_InterceptsBackendCalls(t *testing.T) {
	transport, next := testTransport("https://api.example.com/v1")

	req := newRequest(t, "https://api.example.com/v1/chat/completions")
	req.Header.Set("X-Trace-Id", "abc")

	_, err := transport.RoundTrip(req)
	require.NoError(t, err)

	assert.Equal(t, "Bearer sk-secret", next.req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", next.req.Header.Get("Content-Type"))
	// Original headers survive the rewrite.
	assert.Equal(t, "abc", next.req.Header.Get("X-Trace-Id"))
	// The incoming request itself is untouched.
	assert.Empty(t, req.Header.Get("Authorization"))
}

func TestTransport_ExactBaseMatch(t *testing.T) {
	transport, next := testTransport("https://api.example.com/v1")

	_, err := transport.RoundTrip(newRequest(t, "https://api.example.com/v1"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-secret", next.req.Header.Get("Authorization"))
}

func TestTransport_SiblingPathNotIntercepted(t *testing.T) {
	// /v1x shares the /v1 string prefix but is a different resource; the
	// trailing-separator rule must reject it.
	transport, next := testTransport("https://api.example.com/v1")

	req := newRequest(t, "https://api.example.com/v1x/other")
	req.Header.Set("X-Trace-Id", "abc")

	_, err := transport.RoundTrip(req)
	require.NoError(t, err)

	assert.Empty(t, next.req.Header.Get("Authorization"))
	assert.Equal(t, "abc", next.req.Header.Get("X-Trace-Id"))
	assert.Same(t, req, next.req)
}

func TestTransport_OtherHostNotIntercepted(t *testing.T) {
	transport, next := testTransport("https://api.example.com/v1")

	_, err := transport.RoundTrip(newRequest(t, "https://evil.example.com/v1/anything"))
	require.NoError(t, err)
	assert.Empty(t, next.req.Header.Get("Authorization"))
}

func TestTransport_TrailingSlashConfig(t *testing.T) {
	// A base configured with trailing slashes normalizes to the same rule.
	transport, next := testTransport("https://api.example.com/v1///")

	_, err := transport.RoundTrip(newRequest(t, "https://api.example.com/v1/models"))
	require.NoError(t, err)
	assert.Equal(t, "Bearer sk-secret", next.req.Header.Get("Authorization"))
}

func TestTransport_OverwritesExistingAuth(t *testing.T) {
	transport, next := testTransport("https://api.example.com/v1")

	req := newRequest(t, "https://api.example.com/v1/completions")
	req.Header.Set("Authorization", "Bearer stale-token")

	_, err := transport.RoundTrip(req)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bearer sk-secret"}, next.req.Header.Values("Authorization"))
}

func TestForwarder_EndToEnd(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	cfg := domain.EffectiveConfig{BaseURL: backend.URL + "/v1", Credential: "sk-secret"}
	client := gate.NewForwarder(cfg, backend.Client())

	req, err := http.NewRequest(http.MethodPost, backend.URL+"/v1/chat/completions", strings.NewReader(`{}`))
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bearer sk-secret", gotAuth)
}
