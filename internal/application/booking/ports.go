package booking

import (
	"context"
	"time"

	"github.com/dineflow/table-service/internal/domain"
)

type Clock interface {
	Now() time.Time
}

// TableRepo reads the table catalog. Read-only to this core.
type TableRepo interface {
	// ListActive returns active tables, optionally filtered to one area.
	ListActive(ctx context.Context, areaID string) ([]domain.Table, error)
	GetByID(ctx context.Context, id string) (*domain.Table, error)
}

// ReservationRepo reads reservation snapshots and owns the serialized commit
// path.
type ReservationRepo interface {
	// ListActiveForDate returns every active reservation on the date, across
	// all tables. The result is a snapshot and may be stale by commit time.
	ListActiveForDate(ctx context.Context, date string) ([]domain.Reservation, error)

	// CommitAssignment re-runs the conflict check against the table's active
	// reservations inside a serialization boundary (per-table lock) and
	// inserts the reservation. A conflict found at this point is
	// authoritative and surfaces as domain.ErrConflict.
	CommitAssignment(ctx context.Context, res *domain.Reservation) error

	// Release moves an active reservation to a terminal status and returns
	// the released record.
	Release(ctx context.Context, id string, status domain.ReservationStatus) (*domain.Reservation, error)
}

type MaintenanceRepo interface {
	ListForDate(ctx context.Context, date string) ([]domain.MaintenanceWindow, error)
}

type WaitlistRepo interface {
	Create(ctx context.Context, e *domain.WaitlistEntry) error
	GetByID(ctx context.Context, id string) (*domain.WaitlistEntry, error)
	// ListWaiting returns a single consistent snapshot of waiting entries for
	// the date.
	ListWaiting(ctx context.Context, date string) ([]*domain.WaitlistEntry, error)
	Update(ctx context.Context, e *domain.WaitlistEntry) error
	// ExpireOverdue transitions waiting entries whose deadline has passed and
	// returns how many changed. Re-running it is a no-op.
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

// CustomerRepo looks up customer records (VIP flag, no-show history).
type CustomerRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

// Cache stores availability snapshots for display. Never consulted on the
// commit path.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, val any, ttl time.Duration) error
}

// Notifier delivers fire-and-forget notifications. Failures are logged, never
// propagated to the caller.
type Notifier interface {
	ReservationAssigned(ctx context.Context, res *domain.Reservation) error
	WaitlistOffered(ctx context.Context, entry *domain.WaitlistEntry, tableID string) error
}
