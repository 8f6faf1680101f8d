package notify

import (
	"context"
	"log"

	"github.com/Domenick1991/roombooking/internal/kafka"
)

// Notifier is the delivery sink for booking events consumed by the worker.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Notify(ctx context.Context, event kafka.BookingEvent) error {
	switch event.Type {
	case kafka.EventBookingCreated:
		log.Printf("notify %s: room %s booked %s-%s",
			event.Username, event.RoomName,
			event.StartTime.Format("15:04"), event.EndTime.Format("15:04"))
	case kafka.EventBookingReleased:
		log.Printf("notify %s: room %s released", event.Username, event.RoomName)
	case kafka.EventRoomDeleted:
		log.Printf("notify: room %s deleted", event.RoomName)
	default:
		log.Printf("notify: unknown event type %q for room %s", event.Type, event.RoomName)
	}
	return nil
}
