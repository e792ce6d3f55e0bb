package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tike-storefront/internal/domain/models"
	"tike-storefront/internal/services"
)

// GET /api/bookings/:id returns the booking snapshot together with the
// resolved payment outcome, so the page renders one consistent view.
func (h *Handlers) GetBooking(c *gin.Context) {
	ctx := c.Request.Context()
	booking, err := h.bookings(c).Snapshot(ctx, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	outcome := services.ResolveOutcome(
		booking,
		h.Payments.Attempt(booking.ID),
		h.Timer.Remaining(ctx, booking.ID),
	)
	c.JSON(http.StatusOK, gin.H{"payload": gin.H{
		"booking": booking,
		"outcome": outcome,
	}})
}

// POST /api/bookings creates a booking for a trip/traveler pair.
func (h *Handlers) CreateBooking(c *gin.Context) {
	var in services.CreateInput
	if !BindJSONOrError(c, &in) {
		return
	}
	booking, err := h.bookings(c).Create(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payload": booking})
}

// GET /api/bookings/check-ticket/:phone lists tickets for a phone number.
func (h *Handlers) CheckTicket(c *gin.Context) {
	tickets, err := h.bookings(c).CheckTickets(c.Request.Context(), c.Param("phone"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	c.JSON(http.StatusOK, gin.H{"payload": tickets})
}

// GET /api/bookings/:id/receipt downloads the PDF receipt once the
// resolved outcome is success.
func (h *Handlers) GetReceipt(c *gin.Context) {
	ctx := c.Request.Context()
	booking, err := h.bookings(c).Snapshot(ctx, c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	outcome := services.ResolveOutcome(
		booking,
		h.Payments.Attempt(booking.ID),
		h.Timer.Remaining(ctx, booking.ID),
	)
	if !outcome.ReceiptReady {
		RespondError(c, http.StatusConflict, "receipt is only available after a successful payment", nil)
		return
	}

	pdf, filename, err := h.receipts(c).Generate(ctx, booking.ID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
