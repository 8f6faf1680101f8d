package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Domenick1991/roombooking/internal/service/admin"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service admin.AdminUseCase
}

type addAdminRequest struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

type addRoomRequest struct {
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}

type setTimezoneRequest struct {
	Offset int `json:"offset"`
}

func NewAdminHandler(service admin.AdminUseCase) *AdminHandler {
	return &AdminHandler{service: service}
}

// Register mounts the admin routes. Everything except the timezone endpoints
// goes through RequireAdmin: authorization happens here at the boundary, the
// services themselves do not re-check the caller.
func (h *AdminHandler) Register(router *gin.RouterGroup) {
	guarded := router.Group("/", h.RequireAdmin)
	guarded.GET("/admins", h.listAdmins)
	guarded.POST("/admins", h.addAdmin)
	guarded.DELETE("/admins/:id", h.removeAdmin)
	guarded.POST("/rooms", h.addRoom)
	guarded.DELETE("/rooms/:name", h.deleteRoom)

	router.GET("/timezone", h.getTimezone)
	router.PUT("/timezone", h.setTimezone)
}

func (h *AdminHandler) RequireAdmin(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	isAdmin, err := h.service.IsAdmin(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !isAdmin {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}
	c.Next()
}

func (h *AdminHandler) listAdmins(c *gin.Context) {
	admins, err := h.service.ListAdmins(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]gin.H, 0, len(admins))
	for _, a := range admins {
		out = append(out, gin.H{
			"user_id":  a.UserID,
			"username": a.Username,
			"added_at": a.AddedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, gin.H{"admins": out})
}

func (h *AdminHandler) addAdmin(c *gin.Context) {
	var req addAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.AddAdmin(c.Request.Context(), req.UserID, req.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusCreated
	if !result.Success {
		status = http.StatusConflict
	}
	c.JSON(status, opResponse{Success: result.Success, Message: result.Message})
}

func (h *AdminHandler) removeAdmin(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid admin id"})
		return
	}

	result, err := h.service.RemoveAdmin(c.Request.Context(), userID, c.Query("username"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusOK
	if !result.Success {
		status = http.StatusConflict
	}
	c.JSON(status, opResponse{Success: result.Success, Message: result.Message})
}

func (h *AdminHandler) addRoom(c *gin.Context) {
	var req addRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.AddRoom(c.Request.Context(), req.Name, req.Capacity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusCreated
	if !result.Success {
		status = http.StatusConflict
	}
	c.JSON(status, opResponse{Success: result.Success, Message: result.Message})
}

func (h *AdminHandler) deleteRoom(c *gin.Context) {
	result, err := h.service.DeleteRoom(c.Request.Context(), c.Param("name"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !result.Success {
		c.JSON(http.StatusNotFound, opResponse{Success: false, Message: result.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          result.Message,
		"bookings_removed": result.BookingsRemoved,
	})
}

func (h *AdminHandler) getTimezone(c *gin.Context) {
	info, err := h.service.GetTimezone(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"offset": info.Offset, "display": info.Display})
}

func (h *AdminHandler) setTimezone(c *gin.Context) {
	var req setTimezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.SetTimezone(c.Request.Context(), req.Offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	status := http.StatusOK
	if !result.Success {
		status = http.StatusBadRequest
	}
	c.JSON(status, opResponse{Success: result.Success, Message: result.Message})
}
