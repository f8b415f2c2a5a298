package analytics

import "time"

// TopicVerdicts carries one event per rate limit decision.
const TopicVerdicts = "ratelimit.verdicts"

// VerdictEvent is emitted after the limiter decides on a request.
type VerdictEvent struct {
	RequestID string    `json:"requestId"`
	Identity  string    `json:"identity"`
	Method    string    `json:"method"`
	Path      string    `json:"path"`
	Admitted  bool      `json:"admitted"`
	Limit     int64     `json:"limit"`
	Remaining int64     `json:"remaining"`
	ResetAt   time.Time `json:"resetAt"`
	At        time.Time `json:"at"`
	UserAgent string    `json:"userAgent,omitempty"`
}
