package handlers

import (
	"net/http"

	"tike-storefront/internal/config"
	"tike-storefront/internal/http/middleware"
	"tike-storefront/internal/services"
	"tike-storefront/internal/upstream"

	"github.com/gin-gonic/gin"
)

// Handlers carries the long-lived wiring; per-request service values are
// built from it so every log line has the request id attached.
type Handlers struct {
	Env      config.Env
	Client   *upstream.Client
	Timer    *services.TimerService
	Payments *services.PaymentService
}

func (h *Handlers) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{
		API:       h.Client,
		Payments:  h.Payments,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handlers) travelers(c *gin.Context) services.TravelerService {
	return services.TravelerService{
		API:       h.Client,
		RequestID: middleware.GetRequestID(c),
	}
}

func (h *Handlers) trips() services.TripService {
	return services.TripService{API: h.Client}
}

func (h *Handlers) receipts(c *gin.Context) services.ReceiptService {
	bookings := h.bookings(c)
	return services.ReceiptService{
		RequestID: middleware.GetRequestID(c),
		Bookings:  &bookings,
	}
}

// RespondError sends standard error payload with request_id included.
func RespondError(c *gin.Context, status int, message string, err error) {
	payload := gin.H{
		"message":    message,
		"request_id": middleware.GetRequestID(c),
	}
	if err != nil {
		payload["error"] = err.Error()
	}
	c.JSON(status, payload)
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "empty request body", nil)
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid payload", err)
		return false
	}
	return true
}
