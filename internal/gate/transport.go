// Package gate decides whether an outbound call is bound for the configured
// backend and, if so, rewrites it to carry the provider credential. Anything
// else passes through byte-identical.
package gate

import (
	"net/http"
	"strings"

	"github.com/okibi/gateway-bridge/internal/core/domain"
	"github.com/okibi/gateway-bridge/internal/core/ports"
)

// Transport is an http.RoundTripper that injects bearer auth into
// backend-bound requests. It holds no mutable state: each call is an
// independent match-then-forward decision with no caching or retries.
type Transport struct {
	base       string // normalized, single trailing slash
	credential string
	next       http.RoundTripper
}

// NewTransport binds a transport to the resolved provider configuration.
// A nil next falls back to http.DefaultTransport.
func NewTransport(cfg domain.EffectiveConfig, next http.RoundTripper) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{
		base:       normalizeBase(cfg.BaseURL),
		credential: cfg.Credential,
		next:       next,
	}
}

// normalizeBase forces exactly one trailing slash so prefix matching means
// genuine path containment: without it, a configured base of
// https://host/v1 would also match https://host/v1x-attacker-controlled.
func normalizeBase(base string) string {
	return strings.TrimRight(strings.TrimSpace(base), "/") + "/"
}

// matches reports whether url is backend-bound: the bare base endpoint
// itself, or anything under it.
func (t *Transport) matches(url string) bool {
	return url == strings.TrimSuffix(t.base, "/") || strings.HasPrefix(url, t.base)
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Read the URL off the request structure rather than formatting the
	// request itself; a stringified request is not a usable address.
	if req.URL == nil || !t.matches(req.URL.String()) {
		return t.next.RoundTrip(req)
	}

	// Per RoundTripper contract the original request is never mutated.
	out := req.Clone(req.Context())
	out.Header = Canonicalize(req.Header)
	out.Header.Set("Authorization", "Bearer "+t.credential)
	out.Header.Set("Content-Type", "application/json")
	return t.next.RoundTrip(out)
}

// forwarder adapts Transport to the plain request-in/response-out primitive
// hosts hand us.
type forwarder struct {
	transport *Transport
	doer      ports.Doer
}

// NewForwarder wraps the host's outbound-call primitive with credential
// injection. Calls that do not target the backend reach doer unchanged.
func NewForwarder(cfg domain.EffectiveConfig, doer ports.Doer) ports.Doer {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &forwarder{
		transport: NewTransport(cfg, roundTripFunc(doer.Do)),
		doer:      doer,
	}
}

func (f *forwarder) Do(req *http.Request) (*http.Response, error) {
	return f.transport.RoundTrip(req)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
