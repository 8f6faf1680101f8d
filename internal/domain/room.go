package domain

import "time"

type Room struct {
	ID       int64
	Name     string
	Capacity int
}

type Booking struct {
	ID        int64
	RoomName  string
	UserID    int64
	Username  string
	StartTime time.Time
	EndTime   time.Time
	CreatedAt time.Time
}

// Active reports whether the booking covers t. The interval is half-open:
// t equal to StartTime is inside, t equal to EndTime is not.
func (b Booking) Active(t time.Time) bool {
	return !b.StartTime.After(t) && t.Before(b.EndTime)
}

type Admin struct {
	UserID   int64
	Username string
	AddedAt  time.Time
}
