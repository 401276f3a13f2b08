package model

import "time"

// FetchEvent is one audited discovery attempt. The endpoint identifies the
// backend; the credential is never persisted in any form.
type FetchEvent struct {
	ID         string    `db:"id"`
	Endpoint   string    `db:"endpoint"`
	Outcome    string    `db:"outcome"`
	StatusCode int       `db:"status_code"`
	ModelCount int       `db:"model_count"`
	LatencyMs  int64     `db:"latency_ms"`
	CreatedAt  time.Time `db:"created_at"`
}
