package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultWaitlistTTL bounds how long a waiting entry stays eligible.
	DefaultWaitlistTTL = 2 * time.Hour

	vipPriorityBonus = 5

	// preferredHourSlack widens an entry's preferred time to a matching band:
	// an offer within this many hours of the preference is acceptable.
	preferredHourSlack = 2
)

// WaitlistPriority derives an entry's priority from party size and VIP status.
// Higher is more urgent.
func WaitlistPriority(partySize int, vip bool) int {
	p := partySize / 4
	if vip {
		p += vipPriorityBonus
	}
	return p
}

type WaitlistEntry struct {
	ID            string         `json:"id"`
	CustomerID    string         `json:"customer_id"`
	Date          string         `json:"date"`
	PartySize     int            `json:"party_size"`
	PreferredTime string         `json:"preferred_time,omitempty"`
	AreaID        string         `json:"area_id,omitempty"`
	Status        WaitlistStatus `json:"status"`
	Priority      int            `json:"priority"`
	CreatedAt     time.Time      `json:"created_at"`
	ExpiresAt     time.Time      `json:"expires_at"`
	OfferedAt     *time.Time     `json:"offered_at,omitempty"`
	OfferedTable  string         `json:"offered_table,omitempty"`
}

// NewWaitlistEntry validates and creates a waiting entry. priorityOverride,
// when non-nil, replaces the derived priority.
func NewWaitlistEntry(customer Customer, date string, partySize int, preferredTime, areaID string, priorityOverride *int, ttl time.Duration, now time.Time) (*WaitlistEntry, error) {
	if strings.TrimSpace(customer.ID) == "" {
		return nil, ErrValidation("customer_id is required")
	}
	d, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	if partySize < MinPartySize || partySize > MaxPartySize {
		return nil, ErrValidationMeta("invalid party size", map[string]string{
			"party_size": "must be between 1 and 50",
		})
	}
	preferredTime = strings.TrimSpace(preferredTime)
	if preferredTime != "" {
		m, err := ParseClock(preferredTime)
		if err != nil {
			return nil, err
		}
		preferredTime = FormatClock(m)
	}
	if ttl <= 0 {
		ttl = DefaultWaitlistTTL
	}

	priority := WaitlistPriority(partySize, customer.VIP)
	if priorityOverride != nil {
		priority = *priorityOverride
	}

	return &WaitlistEntry{
		ID:            uuid.NewString(),
		CustomerID:    customer.ID,
		Date:          d,
		PartySize:     partySize,
		PreferredTime: preferredTime,
		AreaID:        strings.TrimSpace(areaID),
		Status:        WaitlistWaiting,
		Priority:      priority,
		CreatedAt:     now.UTC(),
		ExpiresAt:     now.UTC().Add(ttl),
	}, nil
}

func (e *WaitlistEntry) Overdue(now time.Time) bool {
	return now.After(e.ExpiresAt)
}

// Expire transitions waiting -> expired. Calling it on an already-expired
// entry is a no-op, which keeps the sweep idempotent.
func (e *WaitlistEntry) Expire(now time.Time) bool {
	if e.Status != WaitlistWaiting {
		return false
	}
	e.Status = WaitlistExpired
	return true
}

// Offer transitions waiting -> offered and stamps the offer moment.
func (e *WaitlistEntry) Offer(tableID string, now time.Time) error {
	if e.Status != WaitlistWaiting {
		return ErrInvalidState("only waiting entries can be offered")
	}
	t := now.UTC()
	e.Status = WaitlistOffered
	e.OfferedAt = &t
	e.OfferedTable = tableID
	return nil
}

// Decline records that the party turned the offered table down. Declined is
// terminal; the slot goes back into play through the next offer round.
func (e *WaitlistEntry) Decline() error {
	if e.Status != WaitlistOffered {
		return ErrInvalidState("only offered entries can be declined")
	}
	e.Status = WaitlistDeclined
	return nil
}

// OfferCriteria describes a freed table a waitlist entry could be matched to.
type OfferCriteria struct {
	TableCapacity int
	Date          string
	AvailableTime string // HH:MM
	AreaID        string // optional: empty matches any entry
}

// EligibleFor reports whether a waiting entry can take the freed table: it
// must still be waiting and unexpired, fit the capacity, match the date, and
// have a compatible area preference. An entry that named a preferred time must
// also land within the matching band of the available time.
func (e *WaitlistEntry) EligibleFor(c OfferCriteria, now time.Time) bool {
	if e.Status != WaitlistWaiting || e.Overdue(now) {
		return false
	}
	if e.PartySize > c.TableCapacity {
		return false
	}
	if e.Date != c.Date {
		return false
	}
	if c.AreaID != "" && e.AreaID != "" && e.AreaID != c.AreaID {
		return false
	}
	if e.PreferredTime != "" {
		pref, err := ParseClock(e.PreferredTime)
		if err != nil {
			return false
		}
		avail, err := ParseClock(c.AvailableTime)
		if err != nil {
			return false
		}
		diff := pref/60 - avail/60
		if diff < 0 {
			diff = -diff
		}
		if diff > preferredHourSlack {
			return false
		}
	}
	return true
}

// Less is the waitlist total order: priority desc, createdAt asc, id asc. For
// any two distinct entries exactly one precedes the other.
func Less(a, b *WaitlistEntry) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// SortEntries orders entries by the waitlist total order, in place.
func SortEntries(entries []*WaitlistEntry) {
	sort.Slice(entries, func(i, j int) bool { return Less(entries[i], entries[j]) })
}
