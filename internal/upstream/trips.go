package upstream

import (
	"context"
	"net/url"

	"tike-storefront/internal/domain/models"
)

// Locations lists all searchable departure/arrival points.
func (c *Client) Locations(ctx context.Context) ([]models.Location, error) {
	var locations []models.Location
	err := c.getPayload(ctx, "locations", "locations/", &locations)
	return locations, err
}

// Trips lists the trips scheduled for a YYYY-MM-DD date.
func (c *Client) Trips(ctx context.Context, date string) ([]models.Trip, error) {
	var trips []models.Trip
	err := c.getPayload(ctx, "trips", "trips/?date="+url.QueryEscape(date), &trips)
	return trips, err
}

// TripByID fetches one trip for the booking form.
func (c *Client) TripByID(ctx context.Context, id string) (models.Trip, error) {
	var t models.Trip
	err := c.getPayload(ctx, "trip", "trips/"+url.PathEscape(id), &t)
	return t, err
}
