package worker

import (
	"encoding/json"

	"github.com/yourjourney/guest-portal/internal/platform/mailer"
	"github.com/yourjourney/guest-portal/pkg/events"
	"github.com/yourjourney/guest-portal/pkg/logger"
)

// NotifyWorker emails guest access links when bookings are created.
// It consumes from a queue group so only one API instance sends each mail.
type NotifyWorker struct {
	Bus    events.Subscriber
	Mailer mailer.Service
}

func NewNotifyWorker(bus events.Subscriber, m mailer.Service) *NotifyWorker {
	return &NotifyWorker{Bus: bus, Mailer: m}
}

func (w *NotifyWorker) Start() error {
	return w.Bus.QueueSubscribe(events.GuestBookingCreated, "notify", w.handleBookingCreated)
}

func (w *NotifyWorker) handleBookingCreated(msg *events.Message) {
	var ev events.GuestBookingCreatedEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		logger.Error("failed to decode booking created event", "error", err)
		return
	}

	if ev.GuestEmail == "" {
		// Host shares the link manually (WhatsApp etc.); nothing to send.
		logger.Debug("booking has no guest email, skipping notification", "booking_id", ev.BookingID)
		return
	}

	if err := w.Mailer.SendGuestLink(ev.GuestEmail, ev.GuestName, ev.PropertyName, ev.AccessLink); err != nil {
		logger.Error("failed to send guest link email",
			"booking_id", ev.BookingID,
			"to", ev.GuestEmail,
			"error", err,
		)
		return
	}

	logger.Info("guest link email sent", "booking_id", ev.BookingID, "to", ev.GuestEmail)
}
