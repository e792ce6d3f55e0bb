package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tike-storefront/internal/services"
)

// GET /api/travelers?phone= finds a returning passenger by phone number.
func (h *Handlers) FindTraveler(c *gin.Context) {
	traveler, err := h.travelers(c).FindByPhone(c.Request.Context(), c.Query("phone"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payload": traveler})
}

// POST /api/travelers registers a passenger.
func (h *Handlers) CreateTraveler(c *gin.Context) {
	var in services.RegisterInput
	if !BindJSONOrError(c, &in) {
		return
	}
	traveler, err := h.travelers(c).Register(c.Request.Context(), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payload": traveler})
}
