package api

import (
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

func TestRoomHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewRoomHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/rooms", nil)

	mockService.On("ListRooms", c.Request.Context()).Return([]domain.Room{
		{ID: 1, Name: "Mars", Capacity: 6},
		{ID: 2, Name: "Venus", Capacity: 4},
	}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Rooms []roomResponse `json:"rooms"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Rooms, 2)
	assert.Equal(t, "Mars", response.Rooms[0].Name)
	assert.Equal(t, 6, response.Rooms[0].Capacity)

	mockService.AssertExpectations(t)
}

func TestRoomHandler_available(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewRoomHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/rooms/available", nil)

	mockService.On("ListAvailable", c.Request.Context(), (*time.Time)(nil)).Return(booking.AvailabilityResult{
		Available: []domain.Room{{ID: 2, Name: "Venus", Capacity: 4}},
		Occupied:  map[string]string{"Mars": "16:00"},
	}, nil)

	handler.available(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Available []roomResponse    `json:"available"`
		Occupied  map[string]string `json:"occupied"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response.Available, 1)
	assert.Equal(t, "Venus", response.Available[0].Name)
	assert.Equal(t, "16:00", response.Occupied["Mars"])

	mockService.AssertExpectations(t)
}

func TestRoomHandler_availableAtInstant(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewRoomHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	at := time.Date(2024, 3, 15, 15, 45, 0, 0, time.UTC)
	c.Request = httptest.NewRequest("GET", "/rooms/available?at="+at.Format(time.RFC3339), nil)

	mockService.On("ListAvailable", c.Request.Context(), mock.MatchedBy(func(got *time.Time) bool {
		return got != nil && got.Equal(at)
	})).Return(booking.AvailabilityResult{Available: []domain.Room{}, Occupied: map[string]string{}}, nil)

	handler.available(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestRoomHandler_availableBadInstant(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewRoomHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/rooms/available?at=yesterday", nil)

	handler.available(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "ListAvailable")
}

func TestRoomHandler_statusOccupied(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewRoomHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "name", Value: "Mars"}}
	c.Request = httptest.NewRequest("GET", "/rooms/Mars/status", nil)

	start := time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC)
	mockService.On("Status", c.Request.Context(), "Mars", (*time.Time)(nil)).Return(booking.StatusResult{
		Success:  true,
		Message:  "Mars: User1, until 16:00",
		Occupied: true,
		Booking:  &domain.Booking{ID: 1, RoomName: "Mars", UserID: 1, Username: "User1", StartTime: start, EndTime: start.Add(time.Hour)},
	}, nil)

	handler.status(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Success  bool            `json:"success"`
		Message  string          `json:"message"`
		Occupied bool            `json:"occupied"`
		Booking  bookingResponse `json:"booking"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.True(t, response.Occupied)
	assert.Equal(t, "Mars: User1, until 16:00", response.Message)
	assert.Equal(t, "User1", response.Booking.Username)

	mockService.AssertExpectations(t)
}

func TestRoomHandler_statusFree(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewRoomHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "name", Value: "Mars"}}
	c.Request = httptest.NewRequest("GET", "/rooms/Mars/status", nil)

	mockService.On("Status", c.Request.Context(), "Mars", (*time.Time)(nil)).
		Return(booking.StatusResult{Success: true, Message: "Mars is free"}, nil)

	handler.status(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Occupied bool   `json:"occupied"`
		Message  string `json:"message"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.False(t, response.Occupied)
	assert.Equal(t, "Mars is free", response.Message)

	mockService.AssertExpectations(t)
}

func TestRoomHandler_statusUnknownRoom(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewRoomHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "name", Value: "Pluto"}}
	c.Request = httptest.NewRequest("GET", "/rooms/Pluto/status", nil)

	mockService.On("Status", c.Request.Context(), "Pluto", (*time.Time)(nil)).
		Return(booking.StatusResult{Message: "❌ Room 'Pluto' not found"}, nil)

	handler.status(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockService.AssertExpectations(t)
}
