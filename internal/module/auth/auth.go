// Package auth handles admin login and logout against the backend and keeps
// the persisted session in step.
package auth

import (
	"context"

	"github.com/sekolahdigital/tamuadmin/internal/api"
	"github.com/sekolahdigital/tamuadmin/internal/domain"
	"github.com/sekolahdigital/tamuadmin/internal/session"
	"github.com/sekolahdigital/tamuadmin/internal/validate"
)

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// loginResponse mirrors the backend's login envelope.
type loginResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		AccessToken string        `json:"access_token"`
		User        *domain.Admin `json:"user"`
	} `json:"data"`
}

// Service performs authentication and owns the session transitions.
type Service struct {
	client *api.Client
	store  *session.Store
}

// NewService creates the auth service.
func NewService(client *api.Client, store *session.Store) *Service {
	return &Service{client: client, store: store}
}

// Login exchanges credentials for a bearer token and persists the session.
// Field errors from the backend's 422 response surface with the first
// field's first message as the headline.
func (s *Service) Login(ctx context.Context, creds Credentials) (*domain.Admin, error) {
	if err := validate.Struct(creds); err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := s.client.PostJSON(ctx, "login", creds, &resp); err != nil {
		return nil, err
	}
	if !resp.Success || resp.Data.AccessToken == "" {
		msg := resp.Message
		if msg == "" {
			msg = "Email atau password salah"
		}
		return nil, domain.NewAppError(domain.CodeUnauthorized, msg, nil)
	}

	if err := s.store.Set(resp.Data.AccessToken, resp.Data.User); err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "persist session", err)
	}
	return resp.Data.User, nil
}

// Logout revokes the token server-side when reachable and always clears the
// local session. A dead backend must not trap the user in a logged-in state.
func (s *Service) Logout(ctx context.Context) error {
	_ = s.client.PostJSON(ctx, "logout", nil, nil)
	return s.store.Clear()
}

// CurrentUser returns the cached admin profile, or nil when logged out.
func (s *Service) CurrentUser() *domain.Admin {
	return s.store.User()
}
