package pegawai

// Form carries create and update input for an employee.
type Form struct {
	NIP         string `json:"nip" validate:"required,max=30"`
	NamaPegawai string `json:"nama_pegawai" validate:"required,max=100"`
	IDJabatan   int    `json:"id_jabatan" validate:"required,gt=0"`
	Kontak      string `json:"kontak" validate:"omitempty,max=20"`
}
