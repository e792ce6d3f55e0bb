package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tike-storefront/internal/domain"
	"tike-storefront/internal/domain/models"
	"tike-storefront/internal/utils"
)

// BookingAPI is the slice of the upstream client the booking flow needs.
type BookingAPI interface {
	BookingByID(ctx context.Context, id string) (models.Booking, error)
	CreateBooking(ctx context.Context, in models.NewBooking) (models.Booking, error)
	CheckTicket(ctx context.Context, phone string) ([]models.Ticket, error)
}

// BookingService fetches booking snapshots and creates bookings upstream.
type BookingService struct {
	API       BookingAPI
	Payments  *PaymentService
	RequestID string
}

// Snapshot fetches the read-only booking used by the payment page. A
// lockout flag on the snapshot immediately locks the payment session and
// clears its timer; the countdown must never start for a dead booking.
func (s BookingService) Snapshot(ctx context.Context, id string) (models.Booking, error) {
	if utils.TrimOrEmpty(id) == "" {
		return models.Booking{}, domain.ValidationError{Field: "id", Msg: "booking id is required"}
	}

	b, err := s.API.BookingByID(ctx, id)
	if err != nil {
		return models.Booking{}, err
	}

	if b.Canceled || domain.ParseBackendStatus(b.PaymentStatus) == domain.BackendFailed {
		utils.LogEvent(s.RequestID, "booking", "snapshot", fmt.Sprintf("booking %s is locked (canceled=%t payment_status=%s)", b.ID, b.Canceled, b.PaymentStatus))
		if s.Payments != nil {
			s.Payments.MarkLocked(ctx, b.ID)
		}
	}
	return b, nil
}

// CreateInput is the booking form submission.
type CreateInput struct {
	Trip       string `json:"trip"`
	Traveler   string `json:"traveler"`
	Price      int64  `json:"price"`
	SeatNumber string `json:"seat_number"`
	TripDate   string `json:"trip_date"`
	IsOneWay   *bool  `json:"is_one_way"`
}

// Create registers a booking upstream with a fresh idempotency key.
func (s BookingService) Create(ctx context.Context, in CreateInput) (models.Booking, error) {
	switch {
	case utils.TrimOrEmpty(in.Trip) == "":
		return models.Booking{}, domain.ValidationError{Field: "trip", Msg: "trip is required"}
	case utils.TrimOrEmpty(in.Traveler) == "":
		return models.Booking{}, domain.ValidationError{Field: "traveler", Msg: "traveler is required"}
	case utils.TrimOrEmpty(in.SeatNumber) == "":
		return models.Booking{}, domain.ValidationError{Field: "seat_number", Msg: "seat is required"}
	case in.Price <= 0:
		return models.Booking{}, domain.ValidationError{Field: "price", Msg: "price must be positive"}
	}
	if _, err := utils.ParseDate(in.TripDate); err != nil {
		return models.Booking{}, domain.ValidationError{Field: "trip_date", Msg: "expected YYYY-MM-DD"}
	}

	oneWay := true
	if in.IsOneWay != nil {
		oneWay = *in.IsOneWay
	}

	b, err := s.API.CreateBooking(ctx, models.NewBooking{
		IdempotencyKey: uuid.New().String(),
		IsOneWay:       oneWay,
		Trip:           in.Trip,
		Traveler:       in.Traveler,
		Price:          in.Price,
		SeatNumber:     in.SeatNumber,
		TripDate:       in.TripDate,
	})
	if err != nil {
		return models.Booking{}, err
	}
	utils.LogEvent(s.RequestID, "booking", "create", "booking "+b.ID+" created for trip "+in.Trip)
	return b, nil
}

// CheckTickets lists the tickets held by a phone number.
func (s BookingService) CheckTickets(ctx context.Context, phone string) ([]models.Ticket, error) {
	phone = utils.NormalizePhone(phone)
	if phone == "" {
		return nil, domain.ValidationError{Field: "phone", Msg: "phone number is required"}
	}
	return s.API.CheckTicket(ctx, phone)
}
