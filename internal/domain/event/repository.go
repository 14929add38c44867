package event

import "context"

// TripRepository stores the normalized, approval-filtered trip events for
// the active month. Rebuilt on every ingestion pass.
type TripRepository interface {
	Reset(ctx context.Context) error
	BulkInsert(ctx context.Context, events []TripEvent) error
	List(ctx context.Context) ([]TripEvent, error)
}

// LeaveRepository stores the normalized leave events.
type LeaveRepository interface {
	Reset(ctx context.Context) error
	BulkInsert(ctx context.Context, events []LeaveEvent) error
	List(ctx context.Context) ([]LeaveEvent, error)
}

// OvertimeRepository stores the normalized overtime events.
type OvertimeRepository interface {
	Reset(ctx context.Context) error
	BulkInsert(ctx context.Context, events []OvertimeEvent) error
	List(ctx context.Context) ([]OvertimeEvent, error)
}
