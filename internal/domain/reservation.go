package domain

import "time"

// Reservation is a read-only view of a reservation record. TableID is empty
// until a table has been assigned.
type Reservation struct {
	ID         string            `json:"id"`
	TableID    string            `json:"table_id,omitempty"`
	CustomerID string            `json:"customer_id,omitempty"`
	Window     TimeWindow        `json:"window"`
	PartySize  int               `json:"party_size"`
	Status     ReservationStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

// Blocks reports whether this reservation makes w unavailable on its table.
func (r Reservation) Blocks(w TimeWindow) bool {
	return r.Status.Active() && r.Window.Overlaps(w)
}

// HasConflict runs the candidate window against a table's reservations for
// that date and reports the first overlap with an active one. excludeID lets
// an update re-check skip the reservation being resized. Pure; no side
// effects.
func HasConflict(w TimeWindow, tableID string, reservations []Reservation, excludeID string) bool {
	for _, r := range reservations {
		if r.TableID != tableID {
			continue
		}
		if excludeID != "" && r.ID == excludeID {
			continue
		}
		if r.Blocks(w) {
			return true
		}
	}
	return false
}

// UnderMaintenance reports whether any scheduled maintenance on the table
// overlaps the window.
func UnderMaintenance(w TimeWindow, tableID string, windows []MaintenanceWindow) bool {
	for _, m := range windows {
		if m.TableID == tableID && m.Window.Overlaps(w) {
			return true
		}
	}
	return false
}
