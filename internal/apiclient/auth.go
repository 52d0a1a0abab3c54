package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/pkordes/trip-itinerary/internal/domain"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// Login exchanges credentials for an API token.
// Rejected credentials come back as domain.ErrUnauthorized; the API reports
// them as a 400, which would otherwise read as a validation error.
// The returned Session has Username and Token set and nothing else.
func (c *Client) Login(ctx context.Context, username, password string) (domain.Session, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login/", "", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			err = domain.ErrUnauthorized
		}
		return domain.Session{}, fmt.Errorf("apiclient.Client.Login: %w", err)
	}
	if resp.Token == "" {
		return domain.Session{}, fmt.Errorf("apiclient.Client.Login: %w: empty token", domain.ErrUnauthorized)
	}

	name := resp.Username
	if name == "" {
		name = username
	}
	return domain.Session{Username: name, Token: resp.Token}, nil
}
