package domain

import "errors"

// ErrNotFound is returned when the requested trip or share token does not
// exist. Handlers should render the "Trip Not Found" page (HTTP 404).
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails field validation before it is
// sent to the trips API, or when the API rejects a payload.
// Handlers should re-render the form with the message (HTTP 422).
var ErrValidation = errors.New("validation error")

// ErrUnauthorized is returned when an operation needs a signed-in session,
// or when the trips API rejects credentials.
var ErrUnauthorized = errors.New("unauthorized")
