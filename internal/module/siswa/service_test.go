package siswa

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

func TestServiceList(t *testing.T) {
	var gotPath string
	var gotKelas string
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKelas = r.URL.Query().Get("kelas")
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"idsiswa": 1, "nis": "2024001", "nama_siswa": "Budi Santoso", "kelas": "XII"},
			},
			"current_page": 1, "last_page": 1, "total": 1, "from": 1, "to": 1,
		})
	}))

	q := domain.NewListQuery()
	q.Filters[FilterKelas] = "XII"
	res, err := s.List(context.Background(), q)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if gotPath != "/api/siswa" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKelas != "XII" {
		t.Errorf("kelas filter = %q", gotKelas)
	}
	if len(res.Rows) != 1 || res.Rows[0].NamaSiswa != "Budi Santoso" {
		t.Errorf("rows = %+v", res.Rows)
	}
}

func TestServiceCreateValidatesLocally(t *testing.T) {
	backendHit := false
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		backendHit = true
	}))

	_, err := s.Create(context.Background(), Form{NIS: "2024001"})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if backendHit {
		t.Error("invalid form must not reach the backend")
	}

	fields, ok := domain.FieldErrorsOf(err)
	if !ok {
		t.Fatal("expected field errors")
	}
	if len(fields["nama_siswa"]) == 0 || len(fields["jenis_kelamin"]) == 0 || len(fields["kelas"]) == 0 {
		t.Errorf("missing required-field messages: %v", fields)
	}
}

func TestServiceCreateSendsForm(t *testing.T) {
	var gotBody Form
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "Siswa berhasil ditambahkan!"})
	}))

	form := Form{NIS: "2024001", NamaSiswa: "Budi Santoso", JenisKelamin: "L", Kelas: "XII"}
	msg, err := s.Create(context.Background(), form)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if msg != "Siswa berhasil ditambahkan!" {
		t.Errorf("message = %q", msg)
	}
	if gotBody.NamaSiswa != "Budi Santoso" || gotBody.JenisKelamin != "L" {
		t.Errorf("body = %+v", gotBody)
	}
}

func TestControllerEndToEnd(t *testing.T) {
	s := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{
				{"idsiswa": 1, "nama_siswa": "Budi Santoso"},
				{"idsiswa": 2, "nama_siswa": "Siti Aminah"},
			},
			"current_page": 1, "last_page": 3, "total": 25, "from": 1, "to": 2,
		})
	}))

	c := NewController(s.client, Options{Debounce: time.Millisecond})
	defer c.Close()

	c.Refresh(context.Background())

	st := c.State()
	if len(st.Rows) != 2 || st.Total != 25 || st.LastPage != 3 {
		t.Errorf("state = %+v", st)
	}
}
