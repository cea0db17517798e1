package jabatan

// Form carries create and update input for a job title.
type Form struct {
	NamaJabatan string `json:"nama_jabatan" validate:"required,max=100"`
}
