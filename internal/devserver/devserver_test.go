package devserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

const (
	testSecret   = "test-secret-test-secret-test-secret!"
	testEmail    = "admin@sekolah.sch.id"
	testPassword = "rahasia123"
)

func newTestEngine(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Admin{}, &domain.Jabatan{}, &domain.Pegawai{},
		&domain.Siswa{}, &domain.OrangTua{}, &domain.BukuTamu{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := seedAdmin(db, testEmail, testPassword); err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	engine := gin.New()
	RegisterRoutes(engine, &RouteDeps{
		DB:          db,
		JWTSecret:   testSecret,
		TokenExpiry: time.Hour,
	})
	return engine, db
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func loginToken(t *testing.T, engine *gin.Engine) string {
	t.Helper()
	w := doJSON(t, engine, http.MethodPost, "/api/login", "", map[string]string{
		"email":    testEmail,
		"password": testPassword,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data struct {
			AccessToken string `json:"access_token"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Data.AccessToken == "" {
		t.Fatal("no access token in login response")
	}
	return resp.Data.AccessToken
}

func TestLoginWrongPassword(t *testing.T) {
	engine, _ := newTestEngine(t)

	w := doJSON(t, engine, http.MethodPost, "/api/login", "", map[string]string{
		"email":    testEmail,
		"password": "salah",
	})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d", w.Code)
	}
	var resp struct {
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Message != "Email atau password salah" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	engine, _ := newTestEngine(t)

	for _, path := range []string{"/api/siswa", "/api/dashboard"} {
		w := doJSON(t, engine, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("GET %s status = %d, want 401", path, w.Code)
		}
	}
}

func TestResourceCRUD(t *testing.T) {
	engine, _ := newTestEngine(t)
	token := loginToken(t, engine)

	// Create.
	w := doJSON(t, engine, http.MethodPost, "/api/jabatan", token, map[string]string{
		"nama_jabatan": "Guru",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}
	var created struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	if !created.Success || created.Message != "Jabatan berhasil ditambahkan!" {
		t.Errorf("create response = %+v", created)
	}

	// List finds it.
	w = doJSON(t, engine, http.MethodGet, "/api/jabatan?search=gur", token, nil)
	var list struct {
		Data  []domain.Jabatan `json:"data"`
		Total int              `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &list)
	if list.Total != 1 || len(list.Data) != 1 || list.Data[0].NamaJabatan != "Guru" {
		t.Fatalf("list = %+v", list)
	}
	id := list.Data[0].ID

	// Detail.
	w = doJSON(t, engine, http.MethodGet, fmt.Sprintf("/api/jabatan/%d", id), token, nil)
	var detail struct {
		Success bool           `json:"success"`
		Data    domain.Jabatan `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &detail)
	if !detail.Success || detail.Data.NamaJabatan != "Guru" {
		t.Errorf("detail = %+v", detail)
	}

	// Update.
	w = doJSON(t, engine, http.MethodPut, fmt.Sprintf("/api/jabatan/%d", id), token, map[string]string{
		"nama_jabatan": "Kepala Sekolah",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d", w.Code)
	}

	// Delete.
	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/jabatan/%d", id), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d", w.Code)
	}

	// Deleting again answers 404 with a message.
	w = doJSON(t, engine, http.MethodDelete, fmt.Sprintf("/api/jabatan/%d", id), token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestCreateValidation(t *testing.T) {
	engine, _ := newTestEngine(t)
	token := loginToken(t, engine)

	w := doJSON(t, engine, http.MethodPost, "/api/siswa", token, map[string]string{
		"nis": "2024001",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string              `json:"message"`
		Errors  map[string][]string `json:"errors"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Errors["nama_siswa"]) == 0 || len(resp.Errors["jenis_kelamin"]) == 0 {
		t.Errorf("errors = %v", resp.Errors)
	}
	if resp.Message == "" {
		t.Error("422 must carry a headline message")
	}
}

func TestListPaginationEnvelope(t *testing.T) {
	engine, db := newTestEngine(t)
	token := loginToken(t, engine)

	for i := 1; i <= 12; i++ {
		db.Create(&domain.Jabatan{NamaJabatan: fmt.Sprintf("Jabatan %02d", i)})
	}

	w := doJSON(t, engine, http.MethodGet, "/api/jabatan?page=3&rows_per_page=5", token, nil)
	var resp struct {
		Data        []domain.Jabatan `json:"data"`
		CurrentPage int              `json:"current_page"`
		LastPage    int              `json:"last_page"`
		Total       int              `json:"total"`
		From        *int             `json:"from"`
		To          *int             `json:"to"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.CurrentPage != 3 || resp.LastPage != 3 || resp.Total != 12 {
		t.Errorf("pagination = %+v", resp)
	}
	if len(resp.Data) != 2 {
		t.Errorf("page 3 rows = %d, want 2", len(resp.Data))
	}
	if resp.From == nil || *resp.From != 11 || resp.To == nil || *resp.To != 12 {
		t.Errorf("from/to = %v/%v", resp.From, resp.To)
	}

	// Beyond the last page: empty data, null from/to.
	w = doJSON(t, engine, http.MethodGet, "/api/jabatan?page=9&rows_per_page=5", token, nil)
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 0 || resp.From != nil || resp.To != nil {
		t.Errorf("past-end page = %+v", resp)
	}
}

func TestSiswaKelasFilter(t *testing.T) {
	engine, db := newTestEngine(t)
	token := loginToken(t, engine)

	db.Create(&domain.Siswa{NIS: "1", NamaSiswa: "Budi", JenisKelamin: "L", Kelas: "XII"})
	db.Create(&domain.Siswa{NIS: "2", NamaSiswa: "Siti", JenisKelamin: "P", Kelas: "XI"})

	w := doJSON(t, engine, http.MethodGet, "/api/siswa?kelas=XII", token, nil)
	var resp struct {
		Data  []domain.Siswa `json:"data"`
		Total int            `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].NamaSiswa != "Budi" {
		t.Errorf("filtered list = %+v", resp)
	}
}

func TestBukuTamuRoleAndDateFilters(t *testing.T) {
	engine, db := newTestEngine(t)
	token := loginToken(t, engine)

	db.Create(&domain.BukuTamu{Nama: "Bu Rina", Role: "orangtua", Keperluan: "Konsultasi", Tanggal: "2026-08-27"})
	db.Create(&domain.BukuTamu{Nama: "Pak Ahmad", Role: "umum", Keperluan: "Rapat", Tanggal: "2026-08-28"})
	db.Create(&domain.BukuTamu{Nama: "Bu Dewi", Role: "umum", Keperluan: "Pengiriman", Tanggal: "2026-08-27"})

	// The date filter is "date" on the wire, stored as the tanggal column.
	w := doJSON(t, engine, http.MethodGet, "/api/bukutamu?role=umum&date=2026-08-27", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Data  []domain.BukuTamu `json:"data"`
		Total int               `json:"total"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 1 || len(resp.Data) != 1 || resp.Data[0].Nama != "Bu Dewi" {
		t.Errorf("filtered list = %+v", resp)
	}
}

func TestPegawaiPreloadsJabatan(t *testing.T) {
	engine, db := newTestEngine(t)
	token := loginToken(t, engine)

	jab := domain.Jabatan{NamaJabatan: "Guru"}
	db.Create(&jab)
	db.Create(&domain.Pegawai{NIP: "99", NamaPegawai: "Pak Joko", IDJabatan: jab.ID})

	w := doJSON(t, engine, http.MethodGet, "/api/pegawai", token, nil)
	var resp struct {
		Data []domain.Pegawai `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 1 {
		t.Fatalf("list = %+v", resp)
	}
	if resp.Data[0].Jabatan == nil || resp.Data[0].Jabatan.NamaJabatan != "Guru" {
		t.Errorf("jabatan not preloaded: %+v", resp.Data[0])
	}
}

func TestDashboard(t *testing.T) {
	engine, db := newTestEngine(t)
	token := loginToken(t, engine)

	db.Create(&domain.Siswa{NIS: "1", NamaSiswa: "Budi", JenisKelamin: "L", Kelas: "X"})
	for i := 0; i < 7; i++ {
		db.Create(&domain.BukuTamu{
			Nama:      fmt.Sprintf("Tamu %d", i),
			Role:      "umum",
			Keperluan: "Kunjungan",
			Tanggal:   "2026-08-28",
		})
	}

	w := doJSON(t, engine, http.MethodGet, "/api/dashboard", token, nil)
	var resp domain.Dashboard
	json.Unmarshal(w.Body.Bytes(), &resp)

	if resp.Stats.TotalSiswa != 1 || resp.Stats.TotalBukuTamu != 7 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	if len(resp.RecentGuests) != recentGuestLimit {
		t.Errorf("recentGuests = %d entries, want %d", len(resp.RecentGuests), recentGuestLimit)
	}
}

func TestSyncManual(t *testing.T) {
	engine, db := newTestEngine(t)
	token := loginToken(t, engine)

	today := time.Now().Format("2006-01-02")
	db.Create(&domain.BukuTamu{Nama: "Tamu", Role: "umum", Keperluan: "Rapat", Tanggal: today})

	w := doJSON(t, engine, http.MethodPost, "/api/sync-manual", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if !resp.Success || resp.Message != "Sinkronisasi berhasil! 1 data tamu hari ini." {
		t.Errorf("response = %+v", resp)
	}
}
