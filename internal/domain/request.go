package domain

import "strings"

const (
	MinPartySize = 1
	MaxPartySize = 50
)

// AssignmentRequest carries a booking request plus optional seating
// preferences. Zero-valued preference fields mean "no preference" and are
// excluded from scoring.
type AssignmentRequest struct {
	Date            string
	Time            string
	PartySize       int
	DurationMinutes int

	AreaID     string
	Shape      TableShape
	Location   string
	Accessible bool
}

// NewAssignmentRequest validates and normalizes a request. Validation errors
// are rejected here, before any store access.
func NewAssignmentRequest(date, tm string, partySize, durationMinutes int) (AssignmentRequest, error) {
	d, err := ParseDate(strings.TrimSpace(date))
	if err != nil {
		return AssignmentRequest{}, err
	}
	start, err := ParseClock(strings.TrimSpace(tm))
	if err != nil {
		return AssignmentRequest{}, err
	}
	if partySize < MinPartySize || partySize > MaxPartySize {
		return AssignmentRequest{}, ErrValidationMeta("invalid party size", map[string]string{
			"party_size": "must be between 1 and 50",
		})
	}
	if durationMinutes == 0 {
		durationMinutes = DefaultDurationMinutes
	}
	if durationMinutes < 0 {
		return AssignmentRequest{}, ErrValidation("duration must be positive")
	}
	return AssignmentRequest{
		Date:            d,
		Time:            FormatClock(start),
		PartySize:       partySize,
		DurationMinutes: durationMinutes,
	}, nil
}

// Window builds the candidate seating window from the request's time and
// duration. The request must have passed NewAssignmentRequest.
func (r AssignmentRequest) Window() (TimeWindow, error) {
	return NewTimeWindow(r.Date, r.Time, r.DurationMinutes)
}

func (r AssignmentRequest) WantsArea() bool     { return r.AreaID != "" }
func (r AssignmentRequest) WantsShape() bool    { return r.Shape != "" }
func (r AssignmentRequest) WantsLocation() bool { return strings.TrimSpace(r.Location) != "" }
