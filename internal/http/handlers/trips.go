package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/locations
func (h *Handlers) GetLocations(c *gin.Context) {
	locations, err := h.trips().Locations(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payload": locations})
}

// GET /api/trips?date=YYYY-MM-DD&from=&to=
func (h *Handlers) SearchTrips(c *gin.Context) {
	results, err := h.trips().Search(
		c.Request.Context(),
		c.Query("date"),
		c.Query("from"),
		c.Query("to"),
	)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payload": results})
}

// GET /api/trips/:id
func (h *Handlers) GetTrip(c *gin.Context) {
	trip, err := h.trips().ByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"payload": trip})
}
