package bukutamu

// Form carries create and update input for a guest-log entry. Tanggal uses
// the backend's date-only format.
type Form struct {
	Nama      string `json:"nama" validate:"required,max=100"`
	Instansi  string `json:"instansi" validate:"omitempty,max=100"`
	Role      string `json:"role" validate:"required,max=30"`
	Keperluan string `json:"keperluan" validate:"required"`
	Kontak    string `json:"kontak" validate:"omitempty,max=20"`
	Tanggal   string `json:"tanggal" validate:"required,datetime=2006-01-02"`
}
