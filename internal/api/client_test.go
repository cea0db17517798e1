package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := New(srv.URL+"/api", 5*time.Second, staticTokens("tok-abc"), opts...)
	return c, srv
}

func TestListPage(t *testing.T) {
	var gotQuery map[string]string
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = map[string]string{}
		for k := range r.URL.Query() {
			gotQuery[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"data": [{"idjabatan": 1, "nama_jabatan": "Guru"}, {"idjabatan": 2, "nama_jabatan": "Staf TU"}],
			"current_page": 2, "last_page": 5, "total": 42, "from": 11, "to": 12
		}`))
	}))

	q := domain.ListQuery{
		Page:        2,
		RowsPerPage: 10,
		Search:      "guru",
		Filters:     map[string]string{"kelas": "XII", "role": ""},
	}
	res, err := ListPage[domain.Jabatan](context.Background(), c, "jabatan", q)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer tok-abc" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotQuery["page"] != "2" || gotQuery["rows_per_page"] != "10" || gotQuery["search"] != "guru" {
		t.Errorf("unexpected query: %v", gotQuery)
	}
	if gotQuery["kelas"] != "XII" {
		t.Errorf("filter not forwarded: %v", gotQuery)
	}
	if _, ok := gotQuery["role"]; ok {
		t.Error("empty filter must be omitted")
	}

	if len(res.Rows) != 2 || res.Rows[0].NamaJabatan != "Guru" {
		t.Errorf("unexpected rows: %+v", res.Rows)
	}
	if res.CurrentPage != 2 || res.LastPage != 5 || res.Total != 42 || res.From != 11 || res.To != 12 {
		t.Errorf("unexpected pagination: %+v", res)
	}
}

func TestListPageEmpty(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Laravel sends null from/to on an empty page.
		w.Write([]byte(`{"data": [], "current_page": 1, "last_page": 1, "total": 0, "from": null, "to": null}`))
	}))

	res, err := ListPage[domain.Jabatan](context.Background(), c, "jabatan", domain.NewListQuery())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Rows == nil || len(res.Rows) != 0 {
		t.Errorf("Rows must be an empty non-nil slice, got %#v", res.Rows)
	}
	if res.From != 0 || res.To != 0 {
		t.Errorf("From/To must be 0 on empty page, got %d/%d", res.From, res.To)
	}
}

func TestListPageServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on
	c := New(srv.URL+"/api", time.Second, nil)

	_, err := ListPage[domain.Jabatan](context.Background(), c, "jabatan", domain.NewListQuery())
	if !domain.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestGetDetail(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/siswa/7" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"success": true, "data": {"idsiswa": 7, "nama_siswa": "Budi Santoso", "kelas": "XI"}}`))
	}))

	s, err := GetDetail[domain.Siswa](context.Background(), c, "siswa", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != 7 || s.NamaSiswa != "Budi Santoso" {
		t.Errorf("unexpected record: %+v", s)
	}
}

func TestGetDetailSuccessFalse(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "Data siswa tidak ditemukan"}`))
	}))

	_, err := GetDetail[domain.Siswa](context.Background(), c, "siswa", 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
	var appErr *domain.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Data siswa tidak ditemukan" {
		t.Errorf("backend message not surfaced: %v", err)
	}
}

func TestCreateValidationError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"message": "The given data was invalid.", "errors": {"nama_jabatan": ["The nama jabatan field is required."]}}`))
	}))

	_, err := c.Create(context.Background(), "jabatan", map[string]string{"nama_jabatan": ""})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		t.Fatal("expected AppError")
	}
	// The first message of the first invalid field is the headline.
	if appErr.Message != "The nama jabatan field is required." {
		t.Errorf("Message = %q", appErr.Message)
	}
	fields, ok := domain.FieldErrorsOf(err)
	if !ok || len(fields["nama_jabatan"]) != 1 {
		t.Errorf("field map not preserved: %v", fields)
	}
}

func TestCreateSuccessMessage(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		w.Write([]byte(`{"success": true, "message": "Jabatan berhasil ditambahkan!"}`))
	}))

	msg, err := c.Create(context.Background(), "jabatan", map[string]string{"nama_jabatan": "Guru"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg != "Jabatan berhasil ditambahkan!" {
		t.Errorf("message = %q", msg)
	}
}

func TestUnauthorizedHook(t *testing.T) {
	hookCalls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Unauthenticated."}`))
	}), WithUnauthorizedHook(func() { hookCalls++ }))

	_, err := ListPage[domain.Siswa](context.Background(), c, "siswa", domain.NewListQuery())
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if hookCalls != 1 {
		t.Errorf("unauthorized hook called %d times, want 1", hookCalls)
	}
}

func TestDelete(t *testing.T) {
	var gotMethod, gotPath string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.Write([]byte(`{"success": true, "message": "Siswa berhasil dihapus!"}`))
	}))

	msg, err := c.Delete(context.Background(), "siswa", 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/api/siswa/42" {
		t.Errorf("request = %s %s", gotMethod, gotPath)
	}
	if msg != "Siswa berhasil dihapus!" {
		t.Errorf("message = %q", msg)
	}
}

func TestServerErrorMapsToUnavailable(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := c.Delete(context.Background(), "siswa", 1)
	if !domain.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	// A bodyless 5xx carries no message, so notifications fall back to the
	// resource default.
	var appErr *domain.AppError
	if !errors.As(err, &appErr) || appErr.Message != "" {
		t.Errorf("Message = %q, want empty", appErr.Message)
	}
}

func TestServerErrorBodyMessagePreserved(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "Gagal sinkronisasi data absensi"}`))
	}))

	_, err := c.Delete(context.Background(), "siswa", 1)
	if !domain.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	var appErr *domain.AppError
	if !errors.As(err, &appErr) || appErr.Message != "Gagal sinkronisasi data absensi" {
		t.Errorf("backend 5xx message not preserved: %v", err)
	}
}
