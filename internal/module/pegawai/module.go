// Package pegawai wires the employee collection screen. Employee rows carry
// their job title preloaded, so the list renders the title name without a
// second request.
package pegawai

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

// NewController assembles the employee list controller.
func NewController(client *api.Client, opts Options) *controller.Controller[domain.Pegawai, Form] {
	return controller.New(controller.Config[domain.Pegawai, Form]{
		Source:    NewService(client),
		Debounce:  opts.Debounce,
		NotifyTTL: opts.NotifyTTL,
		Messages: controller.Messages{
			FetchFailed:  "Gagal mengambil data pegawai",
			DetailFailed: "Gagal mengambil detail pegawai",
			CreateOK:     "Pegawai berhasil ditambahkan!",
			CreateFailed: "Gagal menambah pegawai",
			UpdateOK:     "Pegawai berhasil diperbarui!",
			UpdateFailed: "Gagal memperbarui pegawai",
			DeleteOK:     "Pegawai berhasil dihapus!",
			DeleteFailed: "Gagal menghapus pegawai",
		},
	})
}
