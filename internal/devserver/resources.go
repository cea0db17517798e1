package devserver

import (
	"gorm.io/gorm"

	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// Form types mirror the wire contract field for field. They are declared
// here rather than shared with the client packages so the devserver stays a
// faithful stand-in for the real backend, not a shortcut through its types.

type siswaForm struct {
	NIS          string `json:"nis" validate:"required,max=20"`
	NamaSiswa    string `json:"nama_siswa" validate:"required,max=100"`
	JenisKelamin string `json:"jenis_kelamin" validate:"required,oneof=L P"`
	Kelas        string `json:"kelas" validate:"required,max=20"`
	Alamat       string `json:"alamat" validate:"omitempty"`
	Kontak       string `json:"kontak" validate:"omitempty,max=20"`
}

type jabatanForm struct {
	NamaJabatan string `json:"nama_jabatan" validate:"required,max=100"`
}

type pegawaiForm struct {
	NIP         string `json:"nip" validate:"required,max=30"`
	NamaPegawai string `json:"nama_pegawai" validate:"required,max=100"`
	IDJabatan   int    `json:"id_jabatan" validate:"required,gt=0"`
	Kontak      string `json:"kontak" validate:"omitempty,max=20"`
}

type orangTuaForm struct {
	Nama   string `json:"nama" validate:"required,max=100"`
	Alamat string `json:"alamat" validate:"omitempty"`
	Kontak string `json:"kontak" validate:"omitempty,max=20"`
}

type bukuTamuForm struct {
	Nama      string `json:"nama" validate:"required,max=100"`
	Instansi  string `json:"instansi" validate:"omitempty,max=100"`
	Role      string `json:"role" validate:"required,max=30"`
	Keperluan string `json:"keperluan" validate:"required"`
	Kontak    string `json:"kontak" validate:"omitempty,max=20"`
	Tanggal   string `json:"tanggal" validate:"required,datetime=2006-01-02"`
}

func newSiswaHandler(db *gorm.DB) *resourceHandler[domain.Siswa, siswaForm] {
	return newResourceHandler(db, resourceDef[domain.Siswa, siswaForm]{
		label:      "Siswa",
		idCol:      "idsiswa",
		searchCols: []string{"nama_siswa", "nis"},
		filterCols: map[string]string{"kelas": "kelas"},
		apply: func(m *domain.Siswa, f siswaForm) {
			m.NIS = f.NIS
			m.NamaSiswa = f.NamaSiswa
			m.JenisKelamin = f.JenisKelamin
			m.Kelas = f.Kelas
			m.Alamat = f.Alamat
			m.Kontak = f.Kontak
		},
	})
}

func newJabatanHandler(db *gorm.DB) *resourceHandler[domain.Jabatan, jabatanForm] {
	return newResourceHandler(db, resourceDef[domain.Jabatan, jabatanForm]{
		label:      "Jabatan",
		idCol:      "idjabatan",
		searchCols: []string{"nama_jabatan"},
		apply: func(m *domain.Jabatan, f jabatanForm) {
			m.NamaJabatan = f.NamaJabatan
		},
	})
}

func newPegawaiHandler(db *gorm.DB) *resourceHandler[domain.Pegawai, pegawaiForm] {
	return newResourceHandler(db, resourceDef[domain.Pegawai, pegawaiForm]{
		label:      "Pegawai",
		idCol:      "idpegawai",
		searchCols: []string{"nama_pegawai", "nip"},
		preloads:   []string{"Jabatan"},
		apply: func(m *domain.Pegawai, f pegawaiForm) {
			m.NIP = f.NIP
			m.NamaPegawai = f.NamaPegawai
			m.IDJabatan = f.IDJabatan
			m.Kontak = f.Kontak
		},
	})
}

func newOrangTuaHandler(db *gorm.DB) *resourceHandler[domain.OrangTua, orangTuaForm] {
	return newResourceHandler(db, resourceDef[domain.OrangTua, orangTuaForm]{
		label:      "Orang tua",
		searchCols: []string{"nama", "kontak"},
		apply: func(m *domain.OrangTua, f orangTuaForm) {
			m.Nama = f.Nama
			m.Alamat = f.Alamat
			m.Kontak = f.Kontak
		},
	})
}

func newBukuTamuHandler(db *gorm.DB) *resourceHandler[domain.BukuTamu, bukuTamuForm] {
	return newResourceHandler(db, resourceDef[domain.BukuTamu, bukuTamuForm]{
		label:      "Data tamu",
		notFound:   "Data tamu tidak ditemukan",
		searchCols: []string{"nama", "instansi", "keperluan"},
		filterCols: map[string]string{"role": "role", "date": "tanggal"},
		apply: func(m *domain.BukuTamu, f bukuTamuForm) {
			m.Nama = f.Nama
			m.Instansi = f.Instansi
			m.Role = f.Role
			m.Keperluan = f.Keperluan
			m.Kontak = f.Kontak
			m.Tanggal = f.Tanggal
		},
	})
}
