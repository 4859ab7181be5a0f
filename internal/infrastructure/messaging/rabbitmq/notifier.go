package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/dineflow/table-service/internal/domain"
)

// Routing keys on the bookings exchange.
const (
	RouteReservationAssigned = "reservation.assigned"
	RouteWaitlistOffered     = "waitlist.offered"
)

// Notifier publishes booking events for downstream consumers (email, feed).
// Delivery is best-effort; callers log failures and move on.
type Notifier struct {
	pub *Publisher
}

func NewNotifier(pub *Publisher) *Notifier { return &Notifier{pub: pub} }

type reservationAssignedEnvelope struct {
	ReservationID string    `json:"reservation_id"`
	TableID       string    `json:"table_id"`
	CustomerID    string    `json:"customer_id,omitempty"`
	Date          string    `json:"date"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	PartySize     int       `json:"party_size"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func (n *Notifier) ReservationAssigned(ctx context.Context, res *domain.Reservation) error {
	body, err := json.Marshal(reservationAssignedEnvelope{
		ReservationID: res.ID,
		TableID:       res.TableID,
		CustomerID:    res.CustomerID,
		Date:          res.Window.Date,
		Start:         res.Window.StartClock(),
		End:           res.Window.EndClock(),
		PartySize:     res.PartySize,
		OccurredAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return n.pub.Publish(ctx, RouteReservationAssigned, res.ID, body)
}

type waitlistOfferedEnvelope struct {
	EntryID    string    `json:"entry_id"`
	CustomerID string    `json:"customer_id"`
	TableID    string    `json:"table_id"`
	Date       string    `json:"date"`
	PartySize  int       `json:"party_size"`
	ExpiresAt  time.Time `json:"expires_at"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (n *Notifier) WaitlistOffered(ctx context.Context, entry *domain.WaitlistEntry, tableID string) error {
	body, err := json.Marshal(waitlistOfferedEnvelope{
		EntryID:    entry.ID,
		CustomerID: entry.CustomerID,
		TableID:    tableID,
		Date:       entry.Date,
		PartySize:  entry.PartySize,
		ExpiresAt:  entry.ExpiresAt,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return n.pub.Publish(ctx, RouteWaitlistOffered, entry.ID, body)
}
