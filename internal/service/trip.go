// Package service contains the business logic of the itinerary web app.
// Services validate input, talk to the trips API and the enrichment services
// through interfaces, and build the view models the handlers render.
// No HTTP or HTML lives here.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/itinerary"
)

// TripAPI is the subset of the trips API client the trip service uses.
type TripAPI interface {
	ListTrips(ctx context.Context, token string) ([]domain.Trip, error)
	GetTrip(ctx context.Context, token string, id int64) (domain.Trip, error)
	GetSharedTrip(ctx context.Context, shareToken string) (domain.Trip, error)
	CreateTrip(ctx context.Context, token string, trip domain.Trip) (domain.Trip, error)
	UpdateTrip(ctx context.Context, token string, trip domain.Trip) (domain.Trip, error)
	DeleteTrip(ctx context.Context, token string, id int64) error
}

// PhotoFinder looks up a destination photo. false means none is available.
type PhotoFinder interface {
	CityPhoto(ctx context.Context, city string) (string, bool)
}

// WeatherFinder looks up current weather. false means none is available.
type WeatherFinder interface {
	Current(ctx context.Context, city string) (domain.Weather, bool)
}

// TripService implements the trip pages' operations.
type TripService struct {
	api     TripAPI
	photos  PhotoFinder
	weather WeatherFinder
}

// NewTripService constructs a TripService. photos and weather may be nil,
// in which case the corresponding enrichment is never shown.
func NewTripService(api TripAPI, photos PhotoFinder, weather WeatherFinder) *TripService {
	return &TripService{api: api, photos: photos, weather: weather}
}

// List returns the trips visible to sess.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, sess domain.Session) ([]domain.Trip, error) {
	trips, err := s.api.ListTrips(ctx, sess.Token)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Get returns a single trip, e.g. to seed the edit form.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *TripService) Get(ctx context.Context, sess domain.Session, id int64) (domain.Trip, error) {
	trip, err := s.api.GetTrip(ctx, sess.Token, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	return trip, nil
}

// View fetches a trip and builds its itinerary page. The page is editable
// exactly when sess is authenticated.
func (s *TripService) View(ctx context.Context, sess domain.Session, id int64) (domain.TripView, error) {
	trip, err := s.api.GetTrip(ctx, sess.Token, id)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.View: %w", err)
	}
	return s.buildView(ctx, trip, sess.Authenticated()), nil
}

// SharedView resolves a public share token to a read-only itinerary page.
// Returns domain.ErrNotFound for unknown tokens.
func (s *TripService) SharedView(ctx context.Context, shareToken string) (domain.TripView, error) {
	if strings.TrimSpace(shareToken) == "" {
		return domain.TripView{}, fmt.Errorf("service.TripService.SharedView: %w", domain.ErrNotFound)
	}
	trip, err := s.api.GetSharedTrip(ctx, shareToken)
	if err != nil {
		return domain.TripView{}, fmt.Errorf("service.TripService.SharedView: %w", err)
	}
	return s.buildView(ctx, trip, false), nil
}

// Create validates and submits a new trip.
func (s *TripService) Create(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.Trip, error) {
	if !sess.Authenticated() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", domain.ErrUnauthorized)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	created, err := s.api.CreateTrip(ctx, sess.Token, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// Update validates and submits changes to an existing trip, replacing its
// activity list.
func (s *TripService) Update(ctx context.Context, sess domain.Session, trip domain.Trip) (domain.Trip, error) {
	if !sess.Authenticated() {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", domain.ErrUnauthorized)
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	updated, err := s.api.UpdateTrip(ctx, sess.Token, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip.
func (s *TripService) Delete(ctx context.Context, sess domain.Session, id int64) error {
	if !sess.Authenticated() {
		return fmt.Errorf("service.TripService.Delete: %w", domain.ErrUnauthorized)
	}
	if err := s.api.DeleteTrip(ctx, sess.Token, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// buildView runs the photo and weather lookups in parallel and attaches them
// to the itinerary. Neither lookup can fail the view.
func (s *TripService) buildView(ctx context.Context, trip domain.Trip, editable bool) domain.TripView {
	view := domain.TripView{
		Trip:      trip,
		Itinerary: itinerary.Build(trip),
		Editable:  editable,
	}

	var g errgroup.Group
	if s.photos != nil {
		g.Go(func() error {
			if u, ok := s.photos.CityPhoto(ctx, trip.DestinationCity); ok {
				view.PhotoURL = u
			}
			return nil
		})
	}
	if s.weather != nil {
		g.Go(func() error {
			if w, ok := s.weather.Current(ctx, trip.DestinationCity); ok {
				view.Weather = &w
			}
			return nil
		})
	}
	_ = g.Wait()

	return view
}

// validateTrip enforces the field rules checked before anything is sent to
// the trips API:
//   - name and destination are non-empty (whitespace-only is empty),
//   - both dates are set and the end is not before the start,
//   - every activity has a title, a day number of at least 1, and a time
//     that is either empty or HH:MM.
//
// Day numbers past the end date are allowed.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if strings.TrimSpace(trip.DestinationCity) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end date must not be before start date", domain.ErrValidation)
	}
	for i, a := range trip.Activities {
		n := i + 1
		if strings.TrimSpace(a.Title) == "" {
			return fmt.Errorf("%w: activity %d: title is required", domain.ErrValidation, n)
		}
		if a.DayNumber < 1 {
			return fmt.Errorf("%w: activity %d: day number must be at least 1", domain.ErrValidation, n)
		}
		if a.Time != "" {
			if _, err := time.Parse("15:04", a.Time); err != nil {
				return fmt.Errorf("%w: activity %d: time must be HH:MM", domain.ErrValidation, n)
			}
		}
	}
	return nil
}
