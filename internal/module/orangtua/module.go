// Package orangtua wires the parent/guardian collection screen.
package orangtua

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

// NewController assembles the parent list controller.
func NewController(client *api.Client, opts Options) *controller.Controller[domain.OrangTua, Form] {
	return controller.New(controller.Config[domain.OrangTua, Form]{
		Source:    NewService(client),
		Debounce:  opts.Debounce,
		NotifyTTL: opts.NotifyTTL,
		Messages: controller.Messages{
			FetchFailed:  "Gagal mengambil data orang tua",
			DetailFailed: "Gagal mengambil detail orang tua",
			CreateOK:     "Orang tua berhasil ditambahkan!",
			CreateFailed: "Gagal menambah orang tua",
			UpdateOK:     "Orang tua berhasil diperbarui!",
			UpdateFailed: "Gagal memperbarui orang tua",
			DeleteOK:     "Orang tua berhasil dihapus!",
			DeleteFailed: "Gagal menghapus orang tua",
		},
	})
}
