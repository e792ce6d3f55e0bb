package services

import (
	"context"

	"github.com/google/uuid"

	"tike-storefront/internal/domain"
	"tike-storefront/internal/domain/models"
	"tike-storefront/internal/utils"
)

// The booking form defaults the date of birth; the backend requires the
// field but the storefront never collects it.
const defaultTravelerDOB = "2000-02-01"

// TravelerAPI is the slice of the upstream client the passenger form needs.
type TravelerAPI interface {
	Travelers(ctx context.Context) ([]models.Traveler, error)
	CreateTraveler(ctx context.Context, in models.NewTraveler) (models.Traveler, error)
}

// TravelerService handles the returning-passenger lookup and registration.
type TravelerService struct {
	API       TravelerAPI
	RequestID string
}

// FindByPhone matches a traveler by phone number. The backend offers no
// filter on the collection, so the match happens here.
func (s TravelerService) FindByPhone(ctx context.Context, phone string) (models.Traveler, error) {
	phone = utils.NormalizePhone(phone)
	if phone == "" {
		return models.Traveler{}, domain.ValidationError{Field: "phone", Msg: "phone number is required"}
	}

	travelers, err := s.API.Travelers(ctx)
	if err != nil {
		return models.Traveler{}, err
	}
	for _, t := range travelers {
		if utils.NormalizePhone(t.PhoneNumber) == phone {
			return t, nil
		}
	}
	return models.Traveler{}, domain.NotFoundError{Resource: "traveler"}
}

// RegisterInput is the passenger form submission.
type RegisterInput struct {
	Fullname    string `json:"fullname"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
}

// Register creates a traveler upstream with a fresh idempotency key.
func (s TravelerService) Register(ctx context.Context, in RegisterInput) (models.Traveler, error) {
	if utils.TrimOrEmpty(in.Fullname) == "" {
		return models.Traveler{}, domain.ValidationError{Field: "fullname", Msg: "name is required"}
	}
	phone := utils.NormalizePhone(in.PhoneNumber)
	if phone == "" {
		return models.Traveler{}, domain.ValidationError{Field: "phone_number", Msg: "phone number is required"}
	}

	t, err := s.API.CreateTraveler(ctx, models.NewTraveler{
		IdempotencyKey: uuid.New().String(),
		Fullname:       utils.NormalizeSpace(in.Fullname),
		Gender:         utils.TrimOrEmpty(in.Gender),
		Nationality:    utils.TrimOrEmpty(in.Nationality),
		Email:          utils.TrimOrEmpty(in.Email),
		PhoneNumber:    phone,
		DOB:            defaultTravelerDOB,
	})
	if err != nil {
		return models.Traveler{}, err
	}
	utils.LogEvent(s.RequestID, "traveler", "register", "traveler "+t.ID+" created")
	return t, nil
}
