package services

import (
	"context"
	"testing"
	"time"

	"tike-storefront/internal/domain"
	"tike-storefront/internal/domain/models"
	"tike-storefront/internal/storage"
)

type fakeBookingAPI struct {
	booking models.Booking
	created []models.NewBooking
	tickets []models.Ticket
}

func (f *fakeBookingAPI) BookingByID(ctx context.Context, id string) (models.Booking, error) {
	if f.booking.ID != id {
		return models.Booking{}, domain.NotFoundError{Resource: "booking"}
	}
	return f.booking, nil
}

func (f *fakeBookingAPI) CreateBooking(ctx context.Context, in models.NewBooking) (models.Booking, error) {
	f.created = append(f.created, in)
	return models.Booking{ID: "bk_new", Price: in.Price}, nil
}

func (f *fakeBookingAPI) CheckTicket(ctx context.Context, phone string) ([]models.Ticket, error) {
	return f.tickets, nil
}

func TestSnapshotLocksDeadBooking(t *testing.T) {
	store := storage.NewMemoryKV()
	clock := newFakeClock()
	clock.block = true
	timer := NewTimerService(store, clock, 60*time.Second)
	payments := NewPaymentService(&fakePayments{}, timer, newFakeClock(), 50, 12*time.Second)

	// A countdown left over from before the cancellation must disappear.
	if _, err := timer.Begin(context.Background(), "bk_1"); err != nil {
		t.Fatalf("Begin error: %v", err)
	}

	api := &fakeBookingAPI{booking: models.Booking{ID: "bk_1", Canceled: true}}
	svc := BookingService{API: api, Payments: payments}

	b, err := svc.Snapshot(context.Background(), "bk_1")
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if !b.Canceled {
		t.Fatalf("snapshot lost the canceled flag")
	}
	if att := payments.Attempt("bk_1"); !att.Locked {
		t.Fatalf("canceled snapshot did not lock the payment session")
	}
	if store.Len() != 0 {
		t.Fatalf("timer records survived the lockout, %d keys left", store.Len())
	}
}

func TestSnapshotLeavesLiveBookingUnlocked(t *testing.T) {
	payments := NewPaymentService(&fakePayments{}, NewTimerService(storage.NewMemoryKV(), newFakeClock(), 60*time.Second), newFakeClock(), 50, 12*time.Second)
	api := &fakeBookingAPI{booking: models.Booking{ID: "bk_1", PaymentStatus: "PENDING"}}
	svc := BookingService{API: api, Payments: payments}

	if _, err := svc.Snapshot(context.Background(), "bk_1"); err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if att := payments.Attempt("bk_1"); att.Locked {
		t.Fatalf("live booking was locked")
	}

	if _, err := svc.Snapshot(context.Background(), "missing"); !domain.IsNotFound(err) {
		t.Fatalf("unknown booking: got %v, want not found", err)
	}
	if _, err := svc.Snapshot(context.Background(), " "); !domain.IsValidation(err) {
		t.Fatalf("blank id: got %v, want validation", err)
	}
}

func TestBookingCreate(t *testing.T) {
	api := &fakeBookingAPI{}
	svc := BookingService{API: api}

	b, err := svc.Create(context.Background(), CreateInput{
		Trip:       "t1",
		Traveler:   "tr_1",
		Price:      4500,
		SeatNumber: "12",
		TripDate:   "2026-03-01",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if b.ID != "bk_new" {
		t.Fatalf("got %s, want bk_new", b.ID)
	}
	if len(api.created) != 1 {
		t.Fatalf("created %d bookings, want 1", len(api.created))
	}
	in := api.created[0]
	if in.IdempotencyKey == "" {
		t.Fatalf("idempotency key not set")
	}
	if !in.IsOneWay {
		t.Fatalf("is_one_way should default to true")
	}

	bad := []CreateInput{
		{Traveler: "tr_1", Price: 4500, SeatNumber: "12", TripDate: "2026-03-01"},
		{Trip: "t1", Price: 4500, SeatNumber: "12", TripDate: "2026-03-01"},
		{Trip: "t1", Traveler: "tr_1", SeatNumber: "12", TripDate: "2026-03-01"},
		{Trip: "t1", Traveler: "tr_1", Price: 4500, TripDate: "2026-03-01"},
		{Trip: "t1", Traveler: "tr_1", Price: 4500, SeatNumber: "12", TripDate: "bad"},
	}
	for i, in := range bad {
		if _, err := svc.Create(context.Background(), in); !domain.IsValidation(err) {
			t.Fatalf("case %d: got %v, want validation", i, err)
		}
	}
}

func TestCheckTickets(t *testing.T) {
	api := &fakeBookingAPI{tickets: []models.Ticket{{ID: "bk_1", PaymentStatus: "PAID"}}}
	svc := BookingService{API: api}

	tickets, err := svc.CheckTickets(context.Background(), "078 123 4567")
	if err != nil {
		t.Fatalf("CheckTickets error: %v", err)
	}
	if len(tickets) != 1 || tickets[0].ID != "bk_1" {
		t.Fatalf("got %+v", tickets)
	}

	if _, err := svc.CheckTickets(context.Background(), ""); !domain.IsValidation(err) {
		t.Fatalf("blank phone: got %v, want validation", err)
	}
}
