package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tike-storefront/internal/http/middleware"
)

// GET /api/health
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC().Format(time.RFC3339)})
}

// POST /api/session issues the guest bearer token the pages store in a
// cookie and replay on booking/payment calls.
func (h *Handlers) CreateSession(c *gin.Context) {
	sid := uuid.NewString()
	token, err := middleware.IssueSessionToken(h.Env.SessionSecret, sid, h.Env.SessionTTL)
	if err != nil {
		RespondError(c, http.StatusInternalServerError, "failed to issue session token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payload": gin.H{
		"token":      token,
		"session_id": sid,
		"expires_in": int(h.Env.SessionTTL.Seconds()),
	}})
}
