package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-itinerary/internal/domain"
	"github.com/pkordes/trip-itinerary/internal/service"
)

// mockTripAPI is a hand-written test double for service.TripAPI.
// Unset function fields panic on call, so a test only wires what it expects to be hit.
type mockTripAPI struct {
	listTrips     func(ctx context.Context, token string) ([]domain.Trip, error)
	getTrip       func(ctx context.Context, token string, id int64) (domain.Trip, error)
	getSharedTrip func(ctx context.Context, shareToken string) (domain.Trip, error)
	createTrip    func(ctx context.Context, token string, trip domain.Trip) (domain.Trip, error)
	updateTrip    func(ctx context.Context, token string, trip domain.Trip) (domain.Trip, error)
	deleteTrip    func(ctx context.Context, token string, id int64) error
}

func (m *mockTripAPI) ListTrips(ctx context.Context, token string) ([]domain.Trip, error) {
	return m.listTrips(ctx, token)
}
func (m *mockTripAPI) GetTrip(ctx context.Context, token string, id int64) (domain.Trip, error) {
	return m.getTrip(ctx, token, id)
}
func (m *mockTripAPI) GetSharedTrip(ctx context.Context, shareToken string) (domain.Trip, error) {
	return m.getSharedTrip(ctx, shareToken)
}
func (m *mockTripAPI) CreateTrip(ctx context.Context, token string, trip domain.Trip) (domain.Trip, error) {
	return m.createTrip(ctx, token, trip)
}
func (m *mockTripAPI) UpdateTrip(ctx context.Context, token string, trip domain.Trip) (domain.Trip, error) {
	return m.updateTrip(ctx, token, trip)
}
func (m *mockTripAPI) DeleteTrip(ctx context.Context, token string, id int64) error {
	return m.deleteTrip(ctx, token, id)
}

// compile-time check: mockTripAPI must satisfy service.TripAPI.
var _ service.TripAPI = (*mockTripAPI)(nil)

type stubPhotos struct {
	url string
	ok  bool
}

func (s stubPhotos) CityPhoto(context.Context, string) (string, bool) { return s.url, s.ok }

type stubWeather struct {
	w  domain.Weather
	ok bool
}

func (s stubWeather) Current(context.Context, string) (domain.Weather, bool) { return s.w, s.ok }

// ---- helpers ---------------------------------------------------------------

var signedIn = domain.Session{Username: "ana", Token: "t0k"}

func validTrip() domain.Trip {
	return domain.Trip{
		ID:              7,
		Name:            "Lisbon Long Weekend",
		DestinationCity: "Lisbon",
		StartDate:       time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC),
		Activities: []domain.Activity{
			{ID: 1, Title: "Belem", DayNumber: 2},
			{ID: 2, Title: "Alfama", Time: "09:30", DayNumber: 1},
		},
	}
}

func echoAPI() *mockTripAPI {
	// Echoes the submitted trip back.
	return &mockTripAPI{
		createTrip: func(_ context.Context, _ string, t domain.Trip) (domain.Trip, error) { return t, nil },
		updateTrip: func(_ context.Context, _ string, t domain.Trip) (domain.Trip, error) { return t, nil },
	}
}

// ---- View ------------------------------------------------------------------

func TestTripService_View_BuildsItineraryAndEnrichment(t *testing.T) {
	var gotToken string
	api := &mockTripAPI{
		getTrip: func(_ context.Context, token string, id int64) (domain.Trip, error) {
			gotToken = token
			return validTrip(), nil
		},
	}
	weather := domain.Weather{Main: "Clear", TempC: 24, Icon: "☀️"}
	svc := service.NewTripService(api, stubPhotos{url: "https://img/x.jpg", ok: true}, stubWeather{w: weather, ok: true})

	view, err := svc.View(context.Background(), signedIn, 7)

	require.NoError(t, err)
	assert.Equal(t, "t0k", gotToken)
	assert.True(t, view.Editable)
	assert.Equal(t, 4, view.Itinerary.Span)
	require.Len(t, view.Itinerary.Days, 2)
	assert.Equal(t, 1, view.Itinerary.Days[0].DayNumber)
	assert.Equal(t, "https://img/x.jpg", view.PhotoURL)
	require.NotNil(t, view.Weather)
	assert.Equal(t, 24, view.Weather.TempC)
}

func TestTripService_View_AnonymousIsReadOnly(t *testing.T) {
	api := &mockTripAPI{
		getTrip: func(context.Context, string, int64) (domain.Trip, error) { return validTrip(), nil },
	}
	svc := service.NewTripService(api, nil, nil)

	view, err := svc.View(context.Background(), domain.Session{}, 7)

	require.NoError(t, err)
	assert.False(t, view.Editable)
}

func TestTripService_View_EnrichmentAbsent(t *testing.T) {
	api := &mockTripAPI{
		getTrip: func(context.Context, string, int64) (domain.Trip, error) { return validTrip(), nil },
	}
	svc := service.NewTripService(api, stubPhotos{}, stubWeather{})

	view, err := svc.View(context.Background(), signedIn, 7)

	require.NoError(t, err)
	assert.Empty(t, view.PhotoURL)
	assert.Nil(t, view.Weather)
	assert.Len(t, view.Itinerary.Days, 2, "itinerary must not depend on enrichment")
}

func TestTripService_View_NotFound(t *testing.T) {
	api := &mockTripAPI{
		getTrip: func(context.Context, string, int64) (domain.Trip, error) {
			return domain.Trip{}, domain.ErrNotFound
		},
	}
	svc := service.NewTripService(api, nil, nil)

	_, err := svc.View(context.Background(), signedIn, 99)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- SharedView ------------------------------------------------------------

func TestTripService_SharedView_IsReadOnly(t *testing.T) {
	api := &mockTripAPI{
		getSharedTrip: func(_ context.Context, token string) (domain.Trip, error) {
			assert.Equal(t, "tok123", token)
			return validTrip(), nil
		},
	}
	svc := service.NewTripService(api, nil, nil)

	view, err := svc.SharedView(context.Background(), "tok123")

	require.NoError(t, err)
	assert.False(t, view.Editable)
	assert.Len(t, view.Itinerary.Days, 2)
}

func TestTripService_SharedView_BlankToken(t *testing.T) {
	svc := service.NewTripService(&mockTripAPI{}, nil, nil)

	_, err := svc.SharedView(context.Background(), "  ")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- List ------------------------------------------------------------------

func TestTripService_List_Empty(t *testing.T) {
	api := &mockTripAPI{
		listTrips: func(context.Context, string) ([]domain.Trip, error) { return nil, nil },
	}
	svc := service.NewTripService(api, nil, nil)

	got, err := svc.List(context.Background(), domain.Session{})

	require.NoError(t, err)
	// Empty, never nil.
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

// ---- Create ----------------------------------------------------------------

func TestTripService_Create_Valid(t *testing.T) {
	svc := service.NewTripService(echoAPI(), nil, nil)

	got, err := svc.Create(context.Background(), signedIn, validTrip())

	require.NoError(t, err)
	assert.Equal(t, "Lisbon Long Weekend", got.Name)
}

func TestTripService_Create_RequiresSession(t *testing.T) {
	svc := service.NewTripService(echoAPI(), nil, nil)

	_, err := svc.Create(context.Background(), domain.Session{}, validTrip())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTripService_Create_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Trip)
		msg    string
	}{
		{"blank name", func(t *domain.Trip) { t.Name = "   " }, "name is required"},
		{"blank destination", func(t *domain.Trip) { t.DestinationCity = "" }, "destination is required"},
		{"missing start", func(t *domain.Trip) { t.StartDate = time.Time{} }, "dates are required"},
		{"end before start", func(t *domain.Trip) { t.EndDate = t.StartDate.AddDate(0, 0, -1) }, "end date"},
		{"blank activity title", func(t *domain.Trip) { t.Activities[1].Title = "" }, "activity 2: title is required"},
		{"day zero", func(t *domain.Trip) { t.Activities[0].DayNumber = 0 }, "activity 1: day number"},
		{"bad time", func(t *domain.Trip) { t.Activities[1].Time = "9am" }, "activity 2: time must be HH:MM"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := service.NewTripService(echoAPI(), nil, nil)
			trip := validTrip()
			tc.mutate(&trip)

			_, err := svc.Create(context.Background(), signedIn, trip)

			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Contains(t, err.Error(), tc.msg)
		})
	}
}

func TestTripService_Create_SameDayTripIsValid(t *testing.T) {
	svc := service.NewTripService(echoAPI(), nil, nil)
	trip := validTrip()
	trip.EndDate = trip.StartDate

	_, err := svc.Create(context.Background(), signedIn, trip)

	assert.NoError(t, err)
}

func TestTripService_Create_DayBeyondEndIsAccepted(t *testing.T) {
	svc := service.NewTripService(echoAPI(), nil, nil)
	trip := validTrip()
	trip.Activities[0].DayNumber = 9

	_, err := svc.Create(context.Background(), signedIn, trip)

	assert.NoError(t, err)
}

func TestTripService_Create_APIError(t *testing.T) {
	apiErr := errors.New("api exploded")
	api := &mockTripAPI{
		createTrip: func(context.Context, string, domain.Trip) (domain.Trip, error) {
			return domain.Trip{}, apiErr
		},
	}
	svc := service.NewTripService(api, nil, nil)

	_, err := svc.Create(context.Background(), signedIn, validTrip())

	assert.ErrorIs(t, err, apiErr)
}

// ---- Update ----------------------------------------------------------------

func TestTripService_Update_Valid(t *testing.T) {
	svc := service.NewTripService(echoAPI(), nil, nil)
	trip := validTrip()
	trip.Name = "Renamed"

	got, err := svc.Update(context.Background(), signedIn, trip)

	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
}

func TestTripService_Update_RequiresSession(t *testing.T) {
	svc := service.NewTripService(echoAPI(), nil, nil)

	_, err := svc.Update(context.Background(), domain.Session{}, validTrip())

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ---- Delete ----------------------------------------------------------------

func TestTripService_Delete_OK(t *testing.T) {
	api := &mockTripAPI{
		deleteTrip: func(_ context.Context, token string, id int64) error {
			assert.Equal(t, "t0k", token)
			assert.Equal(t, int64(7), id)
			return nil
		},
	}
	svc := service.NewTripService(api, nil, nil)

	assert.NoError(t, svc.Delete(context.Background(), signedIn, 7))
}

func TestTripService_Delete_NotFound(t *testing.T) {
	api := &mockTripAPI{
		deleteTrip: func(context.Context, string, int64) error { return domain.ErrNotFound },
	}
	svc := service.NewTripService(api, nil, nil)

	err := svc.Delete(context.Background(), signedIn, 7)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}
