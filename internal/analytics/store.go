package analytics

import "context"

// Store persists verdict events.
type Store interface {
	RecordVerdict(ctx context.Context, event *VerdictEvent) error
}
