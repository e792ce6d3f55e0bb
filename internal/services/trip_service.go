package services

import (
	"context"

	"tike-storefront/internal/domain"
	"tike-storefront/internal/domain/models"
	"tike-storefront/internal/utils"
)

// TripAPI is the slice of the upstream client the search flow needs.
type TripAPI interface {
	Locations(ctx context.Context) ([]models.Location, error)
	Trips(ctx context.Context, date string) ([]models.Trip, error)
	TripByID(ctx context.Context, id string) (models.Trip, error)
}

// TripService serves the listings search: locations, trips for a date
// filtered by the selected endpoints, and single-trip lookups.
type TripService struct {
	API TripAPI
}

func (s TripService) Locations(ctx context.Context) ([]models.Location, error) {
	return s.API.Locations(ctx)
}

// TripResult decorates a trip with the derived duration label the listing
// rows display.
type TripResult struct {
	models.Trip
	Duration string `json:"duration"`
}

// Search lists the trips for a date. When both location ids are given the
// list is narrowed to that pair, the way the listings page filters
// client-side.
func (s TripService) Search(ctx context.Context, date, fromID, toID string) ([]TripResult, error) {
	if _, err := utils.ParseDate(date); err != nil {
		return nil, domain.ValidationError{Field: "date", Msg: "expected YYYY-MM-DD"}
	}

	trips, err := s.API.Trips(ctx, date)
	if err != nil {
		return nil, err
	}

	results := make([]TripResult, 0, len(trips))
	for _, t := range trips {
		if fromID != "" && t.DepartureLocation.ID != fromID {
			continue
		}
		if toID != "" && t.ArrivalLocation.ID != toID {
			continue
		}
		results = append(results, TripResult{
			Trip:     t,
			Duration: utils.TripDuration(t.DepartureTime, t.ArrivalTime),
		})
	}
	return results, nil
}

func (s TripService) ByID(ctx context.Context, id string) (TripResult, error) {
	if utils.TrimOrEmpty(id) == "" {
		return TripResult{}, domain.ValidationError{Field: "id", Msg: "trip id is required"}
	}
	t, err := s.API.TripByID(ctx, id)
	if err != nil {
		return TripResult{}, err
	}
	return TripResult{Trip: t, Duration: utils.TripDuration(t.DepartureTime, t.ArrivalTime)}, nil
}
