package orangtua

// Form carries create and update input for a parent record.
type Form struct {
	Nama   string `json:"nama" validate:"required,max=100"`
	Alamat string `json:"alamat" validate:"omitempty"`
	Kontak string `json:"kontak" validate:"omitempty,max=20"`
}
