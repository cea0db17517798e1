// Package jabatan wires the job-title collection screen.
package jabatan

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

// NewController assembles the job-title list controller.
func NewController(client *api.Client, opts Options) *controller.Controller[domain.Jabatan, Form] {
	return controller.New(controller.Config[domain.Jabatan, Form]{
		Source:    NewService(client),
		Debounce:  opts.Debounce,
		NotifyTTL: opts.NotifyTTL,
		Messages: controller.Messages{
			FetchFailed:  "Gagal mengambil data jabatan",
			DetailFailed: "Gagal mengambil detail jabatan",
			CreateOK:     "Jabatan berhasil ditambahkan!",
			CreateFailed: "Gagal menambah jabatan",
			UpdateOK:     "Jabatan berhasil diperbarui!",
			UpdateFailed: "Gagal memperbarui jabatan",
			DeleteOK:     "Jabatan berhasil dihapus!",
			DeleteFailed: "Gagal menghapus jabatan",
		},
	})
}
