package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tike-storefront/internal/domain/models"
	"tike-storefront/internal/http/middleware"
	"tike-storefront/internal/services"
	"tike-storefront/internal/upstream"
	"tike-storefront/internal/utils"
)

// GET /api/payments/state/:id reports the resolved outcome and countdown.
// The first call for a booking creates the persisted timer and starts its
// tick loop; reloads recompute the remainder from the stored end time.
func (h *Handlers) PaymentState(c *gin.Context) {
	ctx := c.Request.Context()
	booking, err := h.bookings(c).Snapshot(ctx, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	attempt := h.Payments.Attempt(booking.ID)
	timeLeft := 0
	if !attempt.Locked {
		if timeLeft, err = h.Timer.Begin(ctx, booking.ID); err != nil {
			RespondDomainError(c, err)
			return
		}
	}

	outcome := services.ResolveOutcome(booking, h.Payments.Attempt(booking.ID), timeLeft)
	c.JSON(http.StatusOK, gin.H{"payload": outcome})
}

type submitPaymentRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// POST /api/payments/process/:id submits a mobile-money payment for the
// booking. The amount always comes from the booking snapshot, never the
// client.
func (h *Handlers) SubmitPayment(c *gin.Context) {
	ctx := c.Request.Context()

	var in submitPaymentRequest
	if !BindJSONOrError(c, &in) {
		return
	}

	booking, err := h.bookings(c).Snapshot(ctx, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	attempt, err := h.Payments.Submit(ctx, booking, in.PhoneNumber)
	if err != nil {
		utils.LogEvent(middleware.GetRequestID(c), "payment", "submit", "rejected for booking "+booking.ID+": "+err.Error())
		RespondDomainError(c, err)
		return
	}

	outcome := services.ResolveOutcome(booking, attempt, h.Timer.Remaining(ctx, booking.ID))
	c.JSON(http.StatusOK, gin.H{"payload": outcome})
}

// POST /api/payments/callback receives the mobile-money provider's
// settlement notification. With gateway credentials configured the caller
// must present a matching password digest for its timestamp.
func (h *Handlers) PaymentCallback(c *gin.Context) {
	var env models.GatewayCallbackEnvelope
	if !BindJSONOrError(c, &env) {
		return
	}
	if env.JSONPayload == nil {
		RespondError(c, http.StatusBadRequest, "missing jsonpayload", nil)
		return
	}

	if h.Env.GatewayPassword != "" {
		timestamp := c.GetHeader("X-Gateway-Timestamp")
		digest := c.GetHeader("X-Gateway-Password")
		want := upstream.GatewayDigest(h.Env.GatewayUsername, h.Env.GatewayAccountNo, h.Env.GatewayPassword, timestamp)
		if timestamp == "" || digest != want {
			RespondError(c, http.StatusUnauthorized, "invalid gateway credentials", nil)
			return
		}
	}

	cb := env.JSONPayload
	utils.LogEvent(middleware.GetRequestID(c), "payment", "callback",
		"request_tx="+cb.RequestTransactionID+" tx="+cb.TransactionID+" code="+cb.ResponseCode+" status="+cb.Status)

	c.JSON(http.StatusOK, gin.H{"message": "Callback received successfully"})
}
