package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/speedyfix/auto-garage/internal/middleware"
)

// currentUserID returns the authenticated staff id, or nil on public routes.
func currentUserID(c *gin.Context) *uint {
	v, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return nil
	}
	id, ok := v.(uint)
	if !ok {
		return nil
	}
	return &id
}
