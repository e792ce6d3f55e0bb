package upstream

import (
	"context"

	"tike-storefront/internal/domain/models"
)

// Travelers lists the traveler collection. The backend offers no phone
// filter, so callers match locally the way the booking form does.
func (c *Client) Travelers(ctx context.Context) ([]models.Traveler, error) {
	var travelers []models.Traveler
	err := c.getPayload(ctx, "travelers", "travelers", &travelers)
	return travelers, err
}

// CreateTraveler registers a traveler with an idempotency key.
func (c *Client) CreateTraveler(ctx context.Context, in models.NewTraveler) (models.Traveler, error) {
	var t models.Traveler
	err := c.postPayload(ctx, "create traveler", "travelers", in, &t)
	return t, err
}
