package bukutamu

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sekolahdigital/tamuadmin/internal/api"
	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(api.New(srv.URL+"/api", 5*time.Second, nil))
}

func TestServiceListForwardsRoleAndDate(t *testing.T) {
	var gotPath, gotRole, gotDate string
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRole = r.URL.Query().Get("role")
		gotDate = r.URL.Query().Get("date")
		json.NewEncoder(w).Encode(map[string]any{
			"data":         []any{},
			"current_page": 1, "last_page": 1, "total": 0, "from": nil, "to": nil,
		})
	}))

	q := domain.NewListQuery()
	q.Filters[FilterRole] = "orangtua"
	q.Filters[FilterDate] = "2026-08-28"
	if _, err := s.List(context.Background(), q); err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotPath != "/api/bukutamu" {
		t.Errorf("path = %q, want /api/bukutamu", gotPath)
	}
	if gotRole != "orangtua" || gotDate != "2026-08-28" {
		t.Errorf("filters forwarded as role=%q date=%q", gotRole, gotDate)
	}
}

func TestFormDateValidation(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("invalid form must not reach the backend")
	}))

	form := Form{Nama: "Pak Ahmad", Role: "umum", Keperluan: "Rapat", Tanggal: "28-08-2026"}
	_, err := s.Create(context.Background(), form)
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields, _ := domain.FieldErrorsOf(err)
	if len(fields["tanggal"]) == 0 {
		t.Errorf("expected tanggal message, got %v", fields)
	}
}
