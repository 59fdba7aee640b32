package domain

// BookingValidation is the wire shape of GET /api/booking/{token}.
type BookingValidation struct {
	Valid   bool          `json:"valid"`
	Message string        `json:"message,omitempty"`
	Booking *GuestBooking `json:"booking,omitempty"`
}

// Decision classifies a token lookup. The three variants drive three
// different renders: an unverifiable link must never show booking detail,
// while an expired one shows the stay dates it covered.
type Decision int

const (
	AccessInvalid Decision = iota
	AccessExpired
	AccessActive
)

func (d Decision) String() string {
	switch d {
	case AccessExpired:
		return "expired"
	case AccessActive:
		return "active"
	default:
		return "invalid"
	}
}

// Access is the validator's outcome. Booking is nil only for AccessInvalid.
type Access struct {
	Decision Decision
	Message  string
	Booking  *GuestBooking
}
