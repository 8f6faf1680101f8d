package admin

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/Domenick1991/roombooking/internal/kafka"
	"github.com/Domenick1991/roombooking/internal/repository"
	"github.com/Domenick1991/roombooking/internal/service/booking"
	"github.com/Domenick1991/roombooking/internal/timerange"
	"github.com/google/uuid"
)

type AdminUseCase interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	AddAdmin(ctx context.Context, userID int64, username string) (OpResult, error)
	RemoveAdmin(ctx context.Context, userID int64, username string) (OpResult, error)
	ListAdmins(ctx context.Context) ([]domain.Admin, error)
	AddRoom(ctx context.Context, name string, capacity int) (OpResult, error)
	DeleteRoom(ctx context.Context, name string) (DeleteRoomResult, error)
	SetTimezone(ctx context.Context, offset int) (OpResult, error)
	GetTimezone(ctx context.Context) (TimezoneInfo, error)
}

type OpResult struct {
	Success bool
	Message string
}

type DeleteRoomResult struct {
	Success         bool
	Message         string
	BookingsRemoved int64
}

type TimezoneInfo struct {
	Offset  string
	Display string
}

// RoomLocker serializes room mutations against in-flight bookings.
type RoomLocker interface {
	LockRoom(name string) func()
}

type AdminService struct {
	rooms    repository.RoomRepository
	bookings repository.BookingRepository
	admins   repository.AdminRepository
	settings repository.SettingsRepository

	cache        booking.Cache
	producer     booking.Producer
	bookingTopic string
	locker       RoomLocker
}

type AdminServiceOption func(*AdminService)

func WithCache(cache booking.Cache) AdminServiceOption {
	return func(s *AdminService) {
		s.cache = cache
	}
}

func WithProducer(producer booking.Producer, topic string) AdminServiceOption {
	return func(s *AdminService) {
		s.producer = producer
		s.bookingTopic = topic
	}
}

func WithRoomLocker(locker RoomLocker) AdminServiceOption {
	return func(s *AdminService) {
		s.locker = locker
	}
}

func NewAdminService(
	rooms repository.RoomRepository,
	bookings repository.BookingRepository,
	admins repository.AdminRepository,
	settings repository.SettingsRepository,
	opts ...AdminServiceOption,
) *AdminService {
	service := &AdminService{
		rooms:    rooms,
		bookings: bookings,
		admins:   admins,
		settings: settings,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *AdminService) IsAdmin(ctx context.Context, userID int64) (bool, error) {
	return s.admins.IsAdmin(ctx, userID)
}

func (s *AdminService) AddAdmin(ctx context.Context, userID int64, username string) (OpResult, error) {
	if err := s.admins.AddAdmin(ctx, userID, username); err != nil {
		if errors.Is(err, domain.ErrAlreadyAdmin) {
			return OpResult{Message: fmt.Sprintf("❌ %s is already an admin", username)}, nil
		}
		return OpResult{}, err
	}
	return OpResult{Success: true, Message: fmt.Sprintf("✅ %s added as admin", username)}, nil
}

func (s *AdminService) RemoveAdmin(ctx context.Context, userID int64, username string) (OpResult, error) {
	removed, err := s.admins.RemoveAdmin(ctx, userID)
	if err != nil {
		return OpResult{}, err
	}
	if !removed {
		return OpResult{Message: fmt.Sprintf("❌ %s is not an admin", username)}, nil
	}
	return OpResult{Success: true, Message: fmt.Sprintf("✅ Admin %s removed", username)}, nil
}

func (s *AdminService) ListAdmins(ctx context.Context) ([]domain.Admin, error) {
	return s.admins.ListAdmins(ctx)
}

func (s *AdminService) AddRoom(ctx context.Context, name string, capacity int) (OpResult, error) {
	if _, err := s.rooms.AddRoom(ctx, name, capacity); err != nil {
		if errors.Is(err, domain.ErrRoomExists) {
			return OpResult{Message: fmt.Sprintf("❌ Room '%s' already exists", name)}, nil
		}
		return OpResult{}, err
	}

	s.invalidateRooms(ctx)
	return OpResult{Success: true, Message: fmt.Sprintf("✅ Room %s (capacity %d) added", name, capacity)}, nil
}

// DeleteRoom removes a room and cascades to all of its bookings, so no
// booking can reference an unregistered room.
func (s *AdminService) DeleteRoom(ctx context.Context, name string) (DeleteRoomResult, error) {
	room, err := s.rooms.GetRoom(ctx, name)
	if err != nil {
		return DeleteRoomResult{}, err
	}
	if room == nil {
		return DeleteRoomResult{Message: fmt.Sprintf("❌ Room '%s' not found", name)}, nil
	}

	if s.locker != nil {
		unlock := s.locker.LockRoom(name)
		defer unlock()
	}

	removed, err := s.bookings.DeleteRoomBookings(ctx, name)
	if err != nil {
		return DeleteRoomResult{}, err
	}
	if _, err := s.rooms.DeleteRoom(ctx, name); err != nil {
		return DeleteRoomResult{}, err
	}

	s.invalidateRooms(ctx)
	s.publishRoomDeleted(ctx, name)
	return DeleteRoomResult{
		Success:         true,
		Message:         fmt.Sprintf("✅ Room %s deleted (%d bookings removed)", name, removed),
		BookingsRemoved: removed,
	}, nil
}

func (s *AdminService) SetTimezone(ctx context.Context, offset int) (OpResult, error) {
	if offset < timerange.MinOffset || offset > timerange.MaxOffset {
		return OpResult{Message: "❌ Timezone offset must be between -12 and +14"}, nil
	}
	if err := s.settings.SetSetting(ctx, booking.TimezoneOffsetKey, timerange.FormatOffset(offset)); err != nil {
		return OpResult{}, err
	}
	return OpResult{Success: true, Message: fmt.Sprintf("✅ Timezone set to UTC%s", timerange.FormatOffset(offset))}, nil
}

func (s *AdminService) GetTimezone(ctx context.Context) (TimezoneInfo, error) {
	stored, err := s.settings.GetSetting(ctx, booking.TimezoneOffsetKey, "+0")
	if err != nil {
		return TimezoneInfo{}, err
	}
	return TimezoneInfo{Offset: stored, Display: "UTC" + stored}, nil
}

func (s *AdminService) invalidateRooms(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateRooms(ctx); err != nil {
		log.Printf("WARNING: failed to invalidate rooms cache: %v", err)
	}
}

func (s *AdminService) publishRoomDeleted(ctx context.Context, roomName string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	event := kafka.BookingEvent{
		EventID:    uuid.NewString(),
		Type:       kafka.EventRoomDeleted,
		RoomName:   roomName,
		OccurredAt: time.Now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, event.EventID, event); err != nil {
		log.Printf("WARNING: failed to publish %s event for room %s: %v", kafka.EventRoomDeleted, roomName, err)
	}
}

var _ AdminUseCase = (*AdminService)(nil)
