package dto

// AssignReq is the body for assignment and combination requests.
type AssignReq struct {
	Date            string `json:"date"`
	Time            string `json:"time"`
	PartySize       int    `json:"party_size"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`

	AreaID     string `json:"area_id,omitempty"`
	Shape      string `json:"shape,omitempty"`
	Location   string `json:"location,omitempty"`
	Accessible bool   `json:"accessible,omitempty"`
}

// EnqueueWaitlistReq is the body for joining the waitlist.
type EnqueueWaitlistReq struct {
	CustomerID    string `json:"customer_id"`
	Date          string `json:"date"`
	PartySize     int    `json:"party_size"`
	PreferredTime string `json:"preferred_time,omitempty"`
	AreaID        string `json:"area_id,omitempty"`
	Priority      *int   `json:"priority,omitempty"`
}

// OfferReq targets a specific table when offering a waitlist entry.
type OfferReq struct {
	TableID string `json:"table_id"`
}

// OfferNextReq names the freed slot when asking for the next waiting party.
type OfferNextReq struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ReleaseReq carries the terminal status for a reservation release.
type ReleaseReq struct {
	Status string `json:"status"`
}
