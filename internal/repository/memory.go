package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
)

// MemoryStore is an in-memory storage backend for tests and ephemeral runs.
// It mirrors the postgres backend's semantics exactly, including the
// duplicate-room failure and the overlap predicate.
type MemoryStore struct {
	mu            sync.RWMutex
	rooms         map[string]domain.Room
	bookings      map[int64]domain.Booking
	admins        map[int64]domain.Admin
	settings      map[string]string
	nextRoomID    int64
	nextBookingID int64
	now           func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		rooms:         make(map[string]domain.Room),
		bookings:      make(map[int64]domain.Booking),
		admins:        make(map[int64]domain.Admin),
		settings:      make(map[string]string),
		nextRoomID:    1,
		nextBookingID: 1,
		now:           time.Now,
	}
}

func (s *MemoryStore) AddRoom(_ context.Context, name string, capacity int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[name]; ok {
		return 0, domain.ErrRoomExists
	}
	id := s.nextRoomID
	s.nextRoomID++
	s.rooms[name] = domain.Room{ID: id, Name: name, Capacity: capacity}
	return id, nil
}

func (s *MemoryStore) GetRoom(_ context.Context, name string) (*domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[name]
	if !ok {
		return nil, nil
	}
	return &room, nil
}

func (s *MemoryStore) ListRooms(_ context.Context) ([]domain.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rooms := make([]domain.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room)
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Name < rooms[j].Name })
	return rooms, nil
}

func (s *MemoryStore) DeleteRoom(_ context.Context, name string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[name]; !ok {
		return false, nil
	}
	delete(s.rooms, name)
	return true, nil
}

func (s *MemoryStore) CreateBooking(_ context.Context, booking *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	booking.ID = s.nextBookingID
	s.nextBookingID++
	booking.CreatedAt = s.now()
	s.bookings[booking.ID] = *booking
	return nil
}

func (s *MemoryStore) GetBooking(_ context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (s *MemoryStore) ListRoomBookings(_ context.Context, roomName string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		if b.RoomName == roomName {
			bookings = append(bookings, b)
		}
	}
	sortByStart(bookings)
	return bookings, nil
}

func (s *MemoryStore) ListUserBookings(_ context.Context, userID int64) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]domain.Booking, 0)
	for _, b := range s.bookings {
		if b.UserID == userID {
			bookings = append(bookings, b)
		}
	}
	sortByStart(bookings)
	return bookings, nil
}

func (s *MemoryStore) DeleteBooking(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[id]; !ok {
		return false, nil
	}
	delete(s.bookings, id)
	return true, nil
}

func (s *MemoryStore) DeleteRoomBookings(_ context.Context, roomName string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, b := range s.bookings {
		if b.RoomName == roomName {
			delete(s.bookings, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *MemoryStore) FindLatestBooking(_ context.Context, roomName string, userID int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *domain.Booking
	for _, b := range s.bookings {
		if b.RoomName != roomName || b.UserID != userID {
			continue
		}
		if latest == nil || b.StartTime.After(latest.StartTime) {
			b := b
			latest = &b
		}
	}
	return latest, nil
}

func (s *MemoryStore) FindOverlap(_ context.Context, roomName string, start, end time.Time) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, b := range s.bookings {
		if b.RoomName != roomName {
			continue
		}
		if overlaps(b, start, end) {
			b := b
			return &b, nil
		}
	}
	return nil, nil
}

// overlaps is the booking-time conflict predicate, clause for clause the same
// as the postgres FindOverlap query.
func overlaps(b domain.Booking, start, end time.Time) bool {
	if b.StartTime.Before(end) && b.EndTime.After(start) {
		return true
	}
	if !start.Before(b.StartTime) && start.Before(b.EndTime) {
		return true
	}
	if end.After(b.StartTime) && !end.After(b.EndTime) {
		return true
	}
	return false
}

func (s *MemoryStore) AddAdmin(_ context.Context, userID int64, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.admins[userID]; ok {
		return domain.ErrAlreadyAdmin
	}
	s.admins[userID] = domain.Admin{UserID: userID, Username: username, AddedAt: s.now()}
	return nil
}

func (s *MemoryStore) RemoveAdmin(_ context.Context, userID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.admins[userID]; !ok {
		return false, nil
	}
	delete(s.admins, userID)
	return true, nil
}

func (s *MemoryStore) IsAdmin(_ context.Context, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.admins[userID]
	return ok, nil
}

func (s *MemoryStore) ListAdmins(_ context.Context) ([]domain.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	admins := make([]domain.Admin, 0, len(s.admins))
	for _, a := range s.admins {
		admins = append(admins, a)
	}
	sort.Slice(admins, func(i, j int) bool {
		if admins[i].AddedAt.Equal(admins[j].AddedAt) {
			return admins[i].UserID < admins[j].UserID
		}
		return admins[i].AddedAt.Before(admins[j].AddedAt)
	})
	return admins, nil
}

func (s *MemoryStore) GetSetting(_ context.Context, key, defaultValue string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if value, ok := s.settings[key]; ok {
		return value, nil
	}
	return defaultValue, nil
}

func (s *MemoryStore) SetSetting(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings[key] = value
	return nil
}

func sortByStart(bookings []domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].StartTime.Before(bookings[j].StartTime)
	})
}

var _ Store = (*MemoryStore)(nil)
