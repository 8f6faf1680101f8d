package booking

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/Domenick1991/roombooking/internal/kafka"
	"github.com/Domenick1991/roombooking/internal/repository"
	"github.com/Domenick1991/roombooking/internal/timerange"
	"github.com/google/uuid"
)

// TimezoneOffsetKey is the settings key holding the configured UTC offset.
const TimezoneOffsetKey = "timezone_offset"

const defaultOffset = "+0"

type BookingUseCase interface {
	Book(ctx context.Context, input BookInput) (BookResult, error)
	Release(ctx context.Context, roomName string, userID int64) (ReleaseResult, error)
	Status(ctx context.Context, roomName string, at *time.Time) (StatusResult, error)
	ListAvailable(ctx context.Context, at *time.Time) (AvailabilityResult, error)
	ListRooms(ctx context.Context) ([]domain.Room, error)
	UserBookings(ctx context.Context, userID int64) ([]domain.Booking, error)
	Now(ctx context.Context) (time.Time, error)
}

type Cache interface {
	GetRooms(ctx context.Context) ([]domain.Room, error)
	SetRooms(ctx context.Context, rooms []domain.Room) error
	InvalidateRooms(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type Clock interface {
	Now() time.Time
}

type BookInput struct {
	RoomName  string `json:"room_name"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	TimeRange string `json:"time_range"`
}

type BookResult struct {
	Success bool
	Message string
	Booking *domain.Booking
}

type ReleaseResult struct {
	Success bool
	Message string
}

type StatusResult struct {
	Success  bool
	Message  string
	Occupied bool
	Booking  *domain.Booking
}

type AvailabilityResult struct {
	Available []domain.Room
	// Occupied maps room name to the formatted end time of the covering booking.
	Occupied map[string]string
}

type BookingService struct {
	rooms              repository.RoomRepository
	bookings           repository.BookingRepository
	settings           repository.SettingsRepository
	cache              Cache
	producer           Producer
	clock              Clock
	bookingTopic       string
	notificationsTopic string

	// roomLocks serializes book/release per room; the conflict check and the
	// insert are not atomic at the storage layer.
	roomLocks locks
}

type BookingServiceOption func(*BookingService)

func WithCache(cache Cache) BookingServiceOption {
	return func(s *BookingService) {
		s.cache = cache
	}
}

func WithProducer(producer Producer, topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.producer = producer
		s.bookingTopic = topic
	}
}

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(clk Clock) BookingServiceOption {
	return func(s *BookingService) {
		s.clock = clk
	}
}

func NewBookingService(
	rooms repository.RoomRepository,
	bookings repository.BookingRepository,
	settings repository.SettingsRepository,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		rooms:    rooms,
		bookings: bookings,
		settings: settings,
		clock:    systemClock{},
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Book reserves a room for a "HH:MM-HH:MM" range on today's date in the
// configured timezone. Conflicts, unknown rooms and malformed ranges come
// back as unsuccessful results; only storage faults return an error.
func (s *BookingService) Book(ctx context.Context, input BookInput) (BookResult, error) {
	room, err := s.rooms.GetRoom(ctx, input.RoomName)
	if err != nil {
		return BookResult{}, err
	}
	if room == nil {
		return BookResult{Message: fmt.Sprintf("❌ Room '%s' not found", input.RoomName)}, nil
	}

	offset, err := s.offset(ctx)
	if err != nil {
		return BookResult{}, err
	}

	start, end, err := timerange.ParseRange(input.TimeRange, offset, s.clock.Now())
	if err != nil {
		switch err {
		case domain.ErrInvalidTimeFormat:
			return BookResult{Message: "❌ Invalid time format, use HH:MM-HH:MM"}, nil
		case domain.ErrInvalidTimeRange:
			return BookResult{Message: "❌ Start time must be before end time"}, nil
		default:
			return BookResult{}, err
		}
	}

	unlock := s.LockRoom(input.RoomName)
	defer unlock()

	conflict, err := s.bookings.FindOverlap(ctx, input.RoomName, start, end)
	if err != nil {
		return BookResult{}, err
	}
	if conflict != nil {
		loc := timerange.Location(offset)
		return BookResult{
			Message: fmt.Sprintf("❌ %s is busy from %s to %s",
				input.RoomName,
				conflict.StartTime.In(loc).Format("15:04"),
				conflict.EndTime.In(loc).Format("15:04")),
		}, nil
	}

	booking := &domain.Booking{
		RoomName:  input.RoomName,
		UserID:    input.UserID,
		Username:  input.Username,
		StartTime: start,
		EndTime:   end,
	}
	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return BookResult{}, err
	}

	s.publish(ctx, kafka.EventBookingCreated, booking)
	return BookResult{
		Success: true,
		Message: fmt.Sprintf("✅ %s booked for %s", input.RoomName, input.TimeRange),
		Booking: booking,
	}, nil
}

// Release removes the caller's most recent booking for the room.
func (s *BookingService) Release(ctx context.Context, roomName string, userID int64) (ReleaseResult, error) {
	room, err := s.rooms.GetRoom(ctx, roomName)
	if err != nil {
		return ReleaseResult{}, err
	}
	if room == nil {
		return ReleaseResult{Message: fmt.Sprintf("❌ Room '%s' not found", roomName)}, nil
	}

	unlock := s.LockRoom(roomName)
	defer unlock()

	booking, err := s.bookings.FindLatestBooking(ctx, roomName, userID)
	if err != nil {
		return ReleaseResult{}, err
	}
	if booking == nil {
		return ReleaseResult{Message: fmt.Sprintf("❌ %s is not booked by you", roomName)}, nil
	}

	deleted, err := s.bookings.DeleteBooking(ctx, booking.ID)
	if err != nil {
		return ReleaseResult{}, err
	}
	if !deleted {
		return ReleaseResult{Message: fmt.Sprintf("❌ Failed to release %s", roomName)}, nil
	}

	s.publish(ctx, kafka.EventBookingReleased, booking)
	return ReleaseResult{Success: true, Message: fmt.Sprintf("✅ %s released", roomName)}, nil
}

// Status reports the room's occupancy at the given instant (default: now in
// the configured timezone). The instant check is half-open: a booking covers
// its start and not its end.
func (s *BookingService) Status(ctx context.Context, roomName string, at *time.Time) (StatusResult, error) {
	room, err := s.rooms.GetRoom(ctx, roomName)
	if err != nil {
		return StatusResult{}, err
	}
	if room == nil {
		return StatusResult{Message: fmt.Sprintf("❌ Room '%s' not found", roomName)}, nil
	}

	offset, err := s.offset(ctx)
	if err != nil {
		return StatusResult{}, err
	}
	instant := s.clock.Now().In(timerange.Location(offset))
	if at != nil {
		instant = *at
	}

	current, err := s.currentBooking(ctx, roomName, instant)
	if err != nil {
		return StatusResult{}, err
	}
	if current == nil {
		return StatusResult{Success: true, Message: fmt.Sprintf("%s is free", roomName)}, nil
	}

	endTime := current.EndTime.In(timerange.Location(offset)).Format("15:04")
	return StatusResult{
		Success:  true,
		Message:  fmt.Sprintf("%s: %s, until %s", roomName, current.Username, endTime),
		Occupied: true,
		Booking:  current,
	}, nil
}

// ListAvailable partitions every room into free and occupied at the given
// instant, using the same half-open rule as Status.
func (s *BookingService) ListAvailable(ctx context.Context, at *time.Time) (AvailabilityResult, error) {
	offset, err := s.offset(ctx)
	if err != nil {
		return AvailabilityResult{}, err
	}
	instant := s.clock.Now().In(timerange.Location(offset))
	if at != nil {
		instant = *at
	}

	rooms, err := s.ListRooms(ctx)
	if err != nil {
		return AvailabilityResult{}, err
	}

	result := AvailabilityResult{
		Available: make([]domain.Room, 0, len(rooms)),
		Occupied:  make(map[string]string),
	}
	for _, room := range rooms {
		current, err := s.currentBooking(ctx, room.Name, instant)
		if err != nil {
			return AvailabilityResult{}, err
		}
		if current != nil {
			result.Occupied[room.Name] = current.EndTime.In(timerange.Location(offset)).Format("15:04")
		} else {
			result.Available = append(result.Available, room)
		}
	}
	return result, nil
}

// ListRooms returns all rooms sorted by name, served from cache when possible.
func (s *BookingService) ListRooms(ctx context.Context) ([]domain.Room, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetRooms(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	rooms, err := s.rooms.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetRooms(ctx, rooms)
	}
	return rooms, nil
}

func (s *BookingService) UserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListUserBookings(ctx, userID)
}

// Now returns the current instant in the configured timezone.
func (s *BookingService) Now(ctx context.Context) (time.Time, error) {
	offset, err := s.offset(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return s.clock.Now().In(timerange.Location(offset)), nil
}

func (s *BookingService) offset(ctx context.Context) (int, error) {
	stored, err := s.settings.GetSetting(ctx, TimezoneOffsetKey, defaultOffset)
	if err != nil {
		return 0, err
	}
	return timerange.ParseOffset(stored)
}

func (s *BookingService) currentBooking(ctx context.Context, roomName string, at time.Time) (*domain.Booking, error) {
	bookings, err := s.bookings.ListRoomBookings(ctx, roomName)
	if err != nil {
		return nil, err
	}
	for _, b := range bookings {
		if b.Active(at) {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:    uuid.NewString(),
		Type:       eventType,
		RoomName:   booking.RoomName,
		UserID:     booking.UserID,
		Username:   booking.Username,
		StartTime:  booking.StartTime,
		EndTime:    booking.EndTime,
		OccurredAt: s.clock.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, event.EventID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for room %s: %v", eventType, booking.RoomName, err)
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, event.EventID, event); err != nil {
			log.Printf("WARNING: failed to publish %s notification for room %s: %v", eventType, booking.RoomName, err)
		}
	}
}

// LockRoom acquires the room's serialization mutex and returns the release
// func. Shared with the admin service so room deletion cannot interleave
// with an in-flight booking for the same room.
func (s *BookingService) LockRoom(name string) func() {
	return s.roomLocks.lock(name)
}

// locks hands out one mutex per room name.
type locks struct {
	mu    sync.Mutex
	table map[string]*sync.Mutex
}

func (l *locks) lock(name string) func() {
	l.mu.Lock()
	if l.table == nil {
		l.table = make(map[string]*sync.Mutex)
	}
	m, ok := l.table[name]
	if !ok {
		m = &sync.Mutex{}
		l.table[name] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}

var _ BookingUseCase = (*BookingService)(nil)
