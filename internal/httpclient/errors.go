package httpclient

import "fmt"

// UpstreamError represents a non-success status from the backend. It carries
// the numeric status and target URL only, never response content.
type UpstreamError struct {
	StatusCode int
	URL        string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream error: status %d from %s", e.StatusCode, e.URL)
}
