package domain

// Table is a read-only view of a catalog table. AreaName is denormalized from
// the area record because location preference matching runs against it.
type Table struct {
	ID          string     `json:"id"`
	AreaID      string     `json:"area_id"`
	AreaName    string     `json:"area_name"`
	Capacity    int        `json:"capacity"`
	MinCapacity int        `json:"min_capacity"`
	Shape       TableShape `json:"shape"`
	Accessible  bool       `json:"accessible"`
	Active      bool       `json:"active"`
}

// Fits reports whether the party satisfies the table's hard capacity range.
func (t Table) Fits(partySize int) bool {
	min := t.MinCapacity
	if min <= 0 {
		min = 1
	}
	return partySize >= min && partySize <= t.Capacity
}

// MaintenanceWindow blocks a table for the duration of scheduled work, using
// the same half-open overlap semantics as reservations.
type MaintenanceWindow struct {
	TableID string     `json:"table_id"`
	Window  TimeWindow `json:"window"`
	Reason  string     `json:"reason,omitempty"`
}

// Customer is a read-only view supplied by the customer record lookup.
type Customer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	VIP         bool   `json:"vip"`
	NoShowCount int    `json:"no_show_count"`
}
