package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

// The adapter fronting this API identifies the chat user through headers.
const (
	headerUserID   = "X-User-ID"
	headerUsername = "X-Username"
)

func callerID(c *gin.Context) (int64, error) {
	raw := c.GetHeader(headerUserID)
	if raw == "" {
		return 0, errors.New("missing " + headerUserID + " header")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid " + headerUserID + " header")
	}
	return id, nil
}

func callerName(c *gin.Context) string {
	return c.GetHeader(headerUsername)
}
