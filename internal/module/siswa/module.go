// Package siswa wires the student collection screen: form validation, the
// backend adapter, and the preconfigured list controller.
package siswa

import (
	"time"

	"github.com/sekolahdigital/tamuadmin/internal/api"
	"github.com/sekolahdigital/tamuadmin/internal/controller"
	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// Options tunes the screen controller.
type Options struct {
	Debounce  time.Duration
	NotifyTTL time.Duration
}

// NewController assembles the student list controller with its notification
// texts.
func NewController(client *api.Client, opts Options) *controller.Controller[domain.Siswa, Form] {
	return controller.New(controller.Config[domain.Siswa, Form]{
		Source:    NewService(client),
		Debounce:  opts.Debounce,
		NotifyTTL: opts.NotifyTTL,
		Messages: controller.Messages{
			FetchFailed:  "Gagal mengambil data siswa",
			DetailFailed: "Gagal mengambil detail siswa",
			CreateOK:     "Siswa berhasil ditambahkan!",
			CreateFailed: "Gagal menambah siswa",
			UpdateOK:     "Siswa berhasil diperbarui!",
			UpdateFailed: "Gagal memperbarui siswa",
			DeleteOK:     "Siswa berhasil dihapus!",
			DeleteFailed: "Gagal menghapus siswa",
		},
	})
}
