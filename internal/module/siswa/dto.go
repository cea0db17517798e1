package siswa

// Form carries create and update input for a student.
type Form struct {
	NIS          string `json:"nis" validate:"required,max=20"`
	NamaSiswa    string `json:"nama_siswa" validate:"required,max=100"`
	JenisKelamin string `json:"jenis_kelamin" validate:"required,oneof=L P"`
	Kelas        string `json:"kelas" validate:"required,max=20"`
	Alamat       string `json:"alamat" validate:"omitempty"`
	Kontak       string `json:"kontak" validate:"omitempty,max=20"`
}
