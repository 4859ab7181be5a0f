package booking

import (
	"context"

	"github.com/dineflow/table-service/internal/domain"
)

// NoopNotifier drops notifications. Used in dev and tests.
type NoopNotifier struct{}

func (NoopNotifier) ReservationAssigned(context.Context, *domain.Reservation) error { return nil }
func (NoopNotifier) WaitlistOffered(context.Context, *domain.WaitlistEntry, string) error {
	return nil
}
