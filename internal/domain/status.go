package domain

type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusSeated    ReservationStatus = "seated"
	StatusCompleted ReservationStatus = "completed"
	StatusCancelled ReservationStatus = "cancelled"
	StatusNoShow    ReservationStatus = "no_show"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusSeated, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Active reservations block their table's time window.
func (s ReservationStatus) Active() bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusSeated
}

// Terminal statuses free the table; releasing into anything else is rejected.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

type WaitlistStatus string

const (
	WaitlistWaiting  WaitlistStatus = "waiting"
	WaitlistOffered  WaitlistStatus = "offered"
	WaitlistDeclined WaitlistStatus = "declined"
	WaitlistExpired  WaitlistStatus = "expired"
)

type TableShape string

const (
	ShapeRound     TableShape = "round"
	ShapeSquare    TableShape = "square"
	ShapeRectangle TableShape = "rectangle"
)

func (s TableShape) Valid() bool {
	return s == ShapeRound || s == ShapeSquare || s == ShapeRectangle
}
