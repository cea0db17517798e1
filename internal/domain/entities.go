package domain

import (
	"regexp"
	"strings"
	"time"
)

// The managed resources of the guest-log system. Field names follow the
// backend's JSON contract (Indonesian, snake_case) so records pass through
// unchanged between the API and the rendering layer.

// Siswa is a student record.
type Siswa struct {
	ID           int    `json:"idsiswa" gorm:"column:idsiswa;primaryKey"`
	NIS          string `json:"nis" gorm:"column:nis;size:20;uniqueIndex"`
	NamaSiswa    string `json:"nama_siswa" gorm:"column:nama_siswa;size:100"`
	JenisKelamin string `json:"jenis_kelamin" gorm:"column:jenis_kelamin;size:1"` // "L" or "P"
	Kelas        string `json:"kelas" gorm:"column:kelas;size:20"`
	Alamat       string `json:"alamat" gorm:"column:alamat"`
	Kontak       string `json:"kontak" gorm:"column:kontak;size:20"`
}

// TableName implements gorm's Tabler.
func (Siswa) TableName() string { return "siswa" }

// Jabatan is a job title.
type Jabatan struct {
	ID          int    `json:"idjabatan" gorm:"column:idjabatan;primaryKey"`
	NamaJabatan string `json:"nama_jabatan" gorm:"column:nama_jabatan;size:100;uniqueIndex"`
}

// TableName implements gorm's Tabler.
func (Jabatan) TableName() string { return "jabatan" }

// Pegawai is an employee record with its job title preloaded.
type Pegawai struct {
	ID          int      `json:"idpegawai" gorm:"column:idpegawai;primaryKey"`
	NIP         string   `json:"nip" gorm:"column:nip;size:30"`
	NamaPegawai string   `json:"nama_pegawai" gorm:"column:nama_pegawai;size:100"`
	Kontak      string   `json:"kontak" gorm:"column:kontak;size:20"`
	IDJabatan   int      `json:"id_jabatan" gorm:"column:id_jabatan"`
	Jabatan     *Jabatan `json:"jabatan,omitempty" gorm:"foreignKey:IDJabatan;references:ID"`
}

// TableName implements gorm's Tabler.
func (Pegawai) TableName() string { return "pegawai" }

// OrangTua is a parent/guardian record.
type OrangTua struct {
	ID     int    `json:"id" gorm:"column:id;primaryKey"`
	Nama   string `json:"nama" gorm:"column:nama;size:100"`
	Alamat string `json:"alamat" gorm:"column:alamat"`
	Kontak string `json:"kontak" gorm:"column:kontak;size:20"`
}

// TableName implements gorm's Tabler.
func (OrangTua) TableName() string { return "orang_tua" }

// BukuTamu is a single guest-log (check-in) entry.
type BukuTamu struct {
	ID        int       `json:"id" gorm:"column:id;primaryKey"`
	Nama      string    `json:"nama" gorm:"column:nama;size:100"`
	Instansi  string    `json:"instansi" gorm:"column:instansi;size:100"`
	Role      string    `json:"role" gorm:"column:role;size:30"` // "orangtua", "umum", ...
	Keperluan string    `json:"keperluan" gorm:"column:keperluan"`
	Kontak    string    `json:"kontak" gorm:"column:kontak;size:20"`
	Tanggal   string    `json:"tanggal" gorm:"column:tanggal;size:10"` // "2006-01-02"
	CreatedAt time.Time `json:"created_at"`
}

// TableName implements gorm's Tabler.
func (BukuTamu) TableName() string { return "buku_tamu" }

// Admin is the authenticated dashboard user.
type Admin struct {
	ID           int    `json:"id" gorm:"column:id;primaryKey"`
	Name         string `json:"name" gorm:"column:name;size:100"`
	Email        string `json:"email" gorm:"column:email;size:255;uniqueIndex"`
	PasswordHash string `json:"-" gorm:"column:password_hash;size:255"`
}

// TableName implements gorm's Tabler.
func (Admin) TableName() string { return "admins" }

// DashboardStats are the counters shown on the dashboard landing screen.
type DashboardStats struct {
	TotalSiswa    int `json:"totalSiswa"`
	TotalOrangtua int `json:"totalOrangtua"`
	TotalJabatan  int `json:"totalJabatan"`
	TotalPegawai  int `json:"totalPegawai"`
	TotalBukuTamu int `json:"totalBukuTamu"`
}

// Dashboard bundles the stats with the latest guest entries.
type Dashboard struct {
	Stats        DashboardStats `json:"stats"`
	RecentGuests []BukuTamu     `json:"recentGuests"`
}

var nonDigits = regexp.MustCompile(`\D`)

// WhatsAppNumber normalizes an Indonesian phone number for a wa.me link:
// strips non-digits and replaces a leading "0" with the country code "62".
// Returns "" when the input holds no digits.
func WhatsAppNumber(phone string) string {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	if cleaned == "" {
		return ""
	}
	if strings.HasPrefix(cleaned, "0") {
		cleaned = "62" + cleaned[1:]
	}
	return cleaned
}
