package services

import (
	"context"
	"testing"

	"tike-storefront/internal/domain"
	"tike-storefront/internal/domain/models"
)

type fakeTravelerAPI struct {
	travelers []models.Traveler
	created   []models.NewTraveler
}

func (f *fakeTravelerAPI) Travelers(ctx context.Context) ([]models.Traveler, error) {
	return f.travelers, nil
}

func (f *fakeTravelerAPI) CreateTraveler(ctx context.Context, in models.NewTraveler) (models.Traveler, error) {
	f.created = append(f.created, in)
	return models.Traveler{ID: "tr_new", Fullname: in.Fullname, PhoneNumber: in.PhoneNumber}, nil
}

func TestTravelerFindByPhoneNormalizes(t *testing.T) {
	api := &fakeTravelerAPI{travelers: []models.Traveler{
		{ID: "tr_1", Fullname: "Alice", PhoneNumber: "0781234567"},
		{ID: "tr_2", Fullname: "Bob", PhoneNumber: "0787654321"},
	}}
	svc := TravelerService{API: api}

	got, err := svc.FindByPhone(context.Background(), "078 123-4567")
	if err != nil {
		t.Fatalf("FindByPhone error: %v", err)
	}
	if got.ID != "tr_1" {
		t.Fatalf("got %s, want tr_1", got.ID)
	}

	if _, err := svc.FindByPhone(context.Background(), "0700000000"); !domain.IsNotFound(err) {
		t.Fatalf("unknown phone: got %v, want not found", err)
	}
	if _, err := svc.FindByPhone(context.Background(), " "); !domain.IsValidation(err) {
		t.Fatalf("blank phone: got %v, want validation", err)
	}
}

func TestTravelerRegister(t *testing.T) {
	api := &fakeTravelerAPI{}
	svc := TravelerService{API: api}

	got, err := svc.Register(context.Background(), RegisterInput{
		Fullname:    "  Jane   Doe ",
		Gender:      "F",
		Nationality: "Rwandan",
		PhoneNumber: "078 765 4321",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if got.ID != "tr_new" {
		t.Fatalf("got %s, want tr_new", got.ID)
	}

	if len(api.created) != 1 {
		t.Fatalf("created %d travelers, want 1", len(api.created))
	}
	in := api.created[0]
	if in.Fullname != "Jane Doe" || in.PhoneNumber != "0787654321" {
		t.Fatalf("payload not normalized: %+v", in)
	}
	if in.IdempotencyKey == "" {
		t.Fatalf("idempotency key not set")
	}
	if in.DOB != defaultTravelerDOB {
		t.Fatalf("dob: got %q", in.DOB)
	}

	if _, err := svc.Register(context.Background(), RegisterInput{PhoneNumber: "0781"}); !domain.IsValidation(err) {
		t.Fatalf("missing name: got %v, want validation", err)
	}
}
