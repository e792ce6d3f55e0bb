package upstream

import (
	"context"
	"net/url"

	"tike-storefront/internal/domain/models"
)

// BookingByID fetches the read-only booking snapshot for a payment session.
func (c *Client) BookingByID(ctx context.Context, id string) (models.Booking, error) {
	var b models.Booking
	err := c.getPayload(ctx, "booking", "bookings/"+url.PathEscape(id)+"/", &b)
	return b, err
}

// CreateBooking registers a booking for a trip/traveler pair.
func (c *Client) CreateBooking(ctx context.Context, in models.NewBooking) (models.Booking, error) {
	var b models.Booking
	err := c.postPayload(ctx, "create booking", "bookings/", in, &b)
	return b, err
}

// CheckTicket lists the tickets held by a phone number.
func (c *Client) CheckTicket(ctx context.Context, phone string) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := c.getPayload(ctx, "check ticket", "bookings/check-ticket/"+url.PathEscape(phone), &tickets)
	return tickets, err
}
