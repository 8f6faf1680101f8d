package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Domenick1991/roombooking/internal/domain"
	"github.com/Domenick1991/roombooking/internal/service/booking"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingUseCase is a mock implementation of booking.BookingUseCase
type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Book(ctx context.Context, input booking.BookInput) (booking.BookResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(booking.BookResult), args.Error(1)
}

func (m *MockBookingUseCase) Release(ctx context.Context, roomName string, userID int64) (booking.ReleaseResult, error) {
	args := m.Called(ctx, roomName, userID)
	return args.Get(0).(booking.ReleaseResult), args.Error(1)
}

func (m *MockBookingUseCase) Status(ctx context.Context, roomName string, at *time.Time) (booking.StatusResult, error) {
	args := m.Called(ctx, roomName, at)
	return args.Get(0).(booking.StatusResult), args.Error(1)
}

func (m *MockBookingUseCase) ListAvailable(ctx context.Context, at *time.Time) (booking.AvailabilityResult, error) {
	args := m.Called(ctx, at)
	return args.Get(0).(booking.AvailabilityResult), args.Error(1)
}

func (m *MockBookingUseCase) ListRooms(ctx context.Context) ([]domain.Room, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockBookingUseCase) UserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Now(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{RoomName: "Mars", TimeRange: "15:00-16:00"})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("X-User-ID", "1")
	c.Request.Header.Set("X-Username", "User1")

	start := time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC)
	result := booking.BookResult{
		Success: true,
		Message: "✅ Mars booked for 15:00-16:00",
		Booking: &domain.Booking{
			ID:        1,
			RoomName:  "Mars",
			UserID:    1,
			Username:  "User1",
			StartTime: start,
			EndTime:   start.Add(time.Hour),
		},
	}
	mockService.On("Book", c.Request.Context(), booking.BookInput{
		RoomName:  "Mars",
		UserID:    1,
		Username:  "User1",
		TimeRange: "15:00-16:00",
	}).Return(result, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Booking bookingResponse `json:"booking"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)
	assert.Equal(t, "Mars", response.Booking.RoomName)
	assert.Equal(t, start.Format(time.RFC3339), response.Booking.StartTime)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_createConflict(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{RoomName: "Mars", TimeRange: "15:30-16:30"})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request.Header.Set("X-User-ID", "2")

	mockService.On("Book", c.Request.Context(), mock.Anything).
		Return(booking.BookResult{Message: "❌ Mars is busy from 15:00 to 16:00"}, nil)

	handler.create(c)

	assert.Equal(t, http.StatusConflict, w.Code)

	var response opResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "❌ Mars is busy from 15:00 to 16:00", response.Message)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_createMissingIdentity(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{RoomName: "Mars", TimeRange: "15:00-16:00"})
	c.Request = httptest.NewRequest("POST", "/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Book")
}

func TestBookingHandler_release(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "room", Value: "Mars"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/Mars", nil)
	c.Request.Header.Set("X-User-ID", "1")

	mockService.On("Release", c.Request.Context(), "Mars", int64(1)).
		Return(booking.ReleaseResult{Success: true, Message: "✅ Mars released"}, nil)

	handler.release(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response opResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Success)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_releaseNotOwner(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "room", Value: "Mars"}}
	c.Request = httptest.NewRequest("DELETE", "/bookings/Mars", nil)
	c.Request.Header.Set("X-User-ID", "2")

	mockService.On("Release", c.Request.Context(), "Mars", int64(2)).
		Return(booking.ReleaseResult{Message: "❌ Mars is not booked by you"}, nil)

	handler.release(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_listMine(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/bookings/my", nil)
	c.Request.Header.Set("X-User-ID", "1")

	start := time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC)
	mockService.On("UserBookings", c.Request.Context(), int64(1)).Return([]domain.Booking{
		{ID: 1, RoomName: "Mars", UserID: 1, Username: "User1", StartTime: start, EndTime: start.Add(time.Hour)},
	}, nil)

	handler.listMine(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Bookings []bookingResponse `json:"bookings"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Bookings, 1)
	assert.Equal(t, "Mars", response.Bookings[0].RoomName)

	mockService.AssertExpectations(t)
}
