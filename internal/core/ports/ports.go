package ports

import (
	"context"
	"net/http"
	"time"

	"github.com/okibi/gateway-bridge/pkg/schema"
)

// ModelCache stores discovery results keyed by endpoint+credential. Entries
// are replaced wholesale; implementations never hand out references that a
// caller could mutate in place. Expiry is decided by the caller, so a Get
// must keep returning entries that have aged past their TTL.
type ModelCache interface {
	// Get returns the entry for key, however old it is.
	Get(key string) (models []schema.ModelDescriptor, fetchedAt time.Time, ok bool)

	// Put replaces the entry for key as a single unit.
	Put(key string, models []schema.ModelDescriptor, fetchedAt time.Time) error

	// Delete drops one key. Deleting an absent key is a no-op.
	Delete(key string) error

	// Flush drops every entry.
	Flush() error
}

// CredentialSource resolves the stored credential for this provider.
type CredentialSource interface {
	Credential(ctx context.Context) (string, error)
}

// CredentialFunc adapts a plain function to CredentialSource.
type CredentialFunc func(ctx context.Context) (string, error)

func (f CredentialFunc) Credential(ctx context.Context) (string, error) { return f(ctx) }

// Doer is the outbound-call primitive the request gate wraps. *http.Client
// satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// FetchRecord describes the outcome of one discovery attempt for auditing.
// Endpoint carries the base URL; the credential itself is never recorded.
type FetchRecord struct {
	ID         string
	Endpoint   string
	Outcome    string // "hit", "fetched", "stale", "defaults", "builtin"
	StatusCode int
	ModelCount int
	Latency    time.Duration
	At         time.Time
}

// AuditSink records discovery outcomes. Implementations must not fail the
// discovery path; errors are logged and swallowed by the caller.
type AuditSink interface {
	Record(ctx context.Context, rec FetchRecord) error
}
