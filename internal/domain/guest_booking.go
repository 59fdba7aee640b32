package domain

import "time"

// GuestBooking ties a guest, a property and a stay window to an opaque
// access token. Created by an admin; read-only for the guest side.
type GuestBooking struct {
	ID           string `json:"id"`
	PropertyID   string `json:"property_id"`
	PropertySlug string `json:"property_slug"`
	PropertyName string `json:"property_name"`
	GuestName    string `json:"guest_name"`
	GuestSurname string `json:"guest_surname"`
	GuestEmail   string `json:"guest_email,omitempty"`
	NumGuests    int    `json:"num_guests"`
	RoomNumber   string `json:"room_number,omitempty"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
	Token        string `json:"token"`
	CreatedAt    time.Time `json:"created_at"`
}

type GuestBookingCreateReq struct {
	PropertyID   string `json:"property_id"`
	PropertySlug string `json:"property_slug"`
	PropertyName string `json:"property_name"`
	GuestName    string `json:"guest_name"`
	GuestSurname string `json:"guest_surname"`
	GuestEmail   string `json:"guest_email,omitempty"`
	NumGuests    int    `json:"num_guests"`
	RoomNumber   string `json:"room_number,omitempty"`
	CheckinDate  string `json:"checkin_date"`
	CheckoutDate string `json:"checkout_date"`
}

type GuestBookingCreateRes struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Token   string `json:"token"`
	Link    string `json:"link"`
}

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

// Expired reports whether the stay window has passed. A booking stays
// active through the whole checkout day; it expires strictly after it.
func (b *GuestBooking) Expired(now time.Time) bool {
	out, err := time.ParseInLocation(DateLayout, b.CheckoutDate, now.Location())
	if err != nil {
		return true
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.After(out)
}
