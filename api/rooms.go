package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/roombooking/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	service booking.BookingUseCase
}

type roomResponse struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

func NewRoomHandler(service booking.BookingUseCase) *RoomHandler {
	return &RoomHandler{service: service}
}

func (h *RoomHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/available", h.available)
	router.GET("/:name/status", h.status)
}

func (h *RoomHandler) list(c *gin.Context) {
	rooms, err := h.service.ListRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]roomResponse, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, roomResponse{Name: room.Name, Capacity: room.Capacity})
	}
	c.JSON(http.StatusOK, gin.H{"rooms": out})
}

func (h *RoomHandler) available(c *gin.Context) {
	at, ok := parseAt(c)
	if !ok {
		return
	}

	result, err := h.service.ListAvailable(c.Request.Context(), at)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	available := make([]roomResponse, 0, len(result.Available))
	for _, room := range result.Available {
		available = append(available, roomResponse{Name: room.Name, Capacity: room.Capacity})
	}
	c.JSON(http.StatusOK, gin.H{
		"available": available,
		"occupied":  result.Occupied,
	})
}

func (h *RoomHandler) status(c *gin.Context) {
	at, ok := parseAt(c)
	if !ok {
		return
	}

	result, err := h.service.Status(c.Request.Context(), c.Param("name"), at)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusNotFound, opResponse{Success: false, Message: result.Message})
		return
	}

	resp := gin.H{
		"success":  true,
		"message":  result.Message,
		"occupied": result.Occupied,
	}
	if result.Booking != nil {
		resp["booking"] = toBookingResponse(*result.Booking)
	}
	c.JSON(http.StatusOK, resp)
}

// parseAt reads the optional ?at=RFC3339 query instant. The second return is
// false when the value was malformed and a response has been written.
func parseAt(c *gin.Context) (*time.Time, bool) {
	raw := c.Query("at")
	if raw == "" {
		return nil, true
	}
	at, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid 'at' timestamp, expected RFC3339"})
		return nil, false
	}
	return &at, true
}
