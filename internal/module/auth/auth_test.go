package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sekolahdigital/tamuadmin/internal/api"
	"github.com/sekolahdigital/tamuadmin/internal/domain"
	"github.com/sekolahdigital/tamuadmin/internal/session"
)

func newTestAuth(t *testing.T, handler http.Handler) (*Service, *session.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	client := api.New(srv.URL+"/api", 5*time.Second, store)
	return NewService(client, store), store
}

func TestLogin(t *testing.T) {
	s, store := newTestAuth(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/login" || r.Method != http.MethodPost {
			t.Errorf("request = %s %s", r.Method, r.URL.Path)
		}
		var creds Credentials
		json.NewDecoder(r.Body).Decode(&creds)
		if creds.Email != "admin@sekolah.sch.id" {
			t.Errorf("email = %q", creds.Email)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": map[string]any{
				"access_token": "tok-xyz",
				"user":         map[string]any{"id": 1, "name": "Admin", "email": creds.Email},
			},
		})
	}))

	user, err := s.Login(context.Background(), Credentials{Email: "admin@sekolah.sch.id", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user == nil || user.Name != "Admin" {
		t.Errorf("user = %+v", user)
	}
	if store.Token() != "tok-xyz" {
		t.Errorf("stored token = %q", store.Token())
	}
}

func TestLoginInvalidForm(t *testing.T) {
	s, _ := newTestAuth(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid credentials must not reach the backend")
	}))

	_, err := s.Login(context.Background(), Credentials{Email: "not-an-email", Password: "x"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoginRejected(t *testing.T) {
	s, store := newTestAuth(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "Email atau password salah"})
	}))

	_, err := s.Login(context.Background(), Credentials{Email: "admin@sekolah.sch.id", Password: "salah"})
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if store.LoggedIn() {
		t.Error("rejected login must not store a session")
	}
}

func TestLogoutClearsSessionEvenWhenBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	store, err := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := store.Set("tok", nil); err != nil {
		t.Fatalf("Set: %v", err)
	}
	client := api.New(srv.URL+"/api", time.Second, store)
	srv.Close()

	s := NewService(client, store)
	if err := s.Logout(context.Background()); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if store.LoggedIn() {
		t.Error("session must clear even when the backend is unreachable")
	}
}
