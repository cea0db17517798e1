// Package bukutamu wires the guest-log collection screen. Besides search,
// the list filters on visitor role and visit date.
package bukutamu

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

// NewController assembles the guest-log list controller.
func NewController(client *api.Client, opts Options) *controller.Controller[domain.BukuTamu, Form] {
	return controller.New(controller.Config[domain.BukuTamu, Form]{
		Source:    NewService(client),
		Debounce:  opts.Debounce,
		NotifyTTL: opts.NotifyTTL,
		Messages: controller.Messages{
			FetchFailed:  "Gagal mengambil data buku tamu",
			DetailFailed: "Gagal mengambil detail buku tamu",
			CreateOK:     "Data tamu berhasil ditambahkan!",
			CreateFailed: "Gagal menambah data tamu",
			UpdateOK:     "Data tamu berhasil diperbarui!",
			UpdateFailed: "Gagal memperbarui data tamu",
			DeleteOK:     "Data tamu berhasil dihapus!",
			DeleteFailed: "Gagal menghapus data tamu",
		},
	})
}

// WhatsAppLink builds the wa.me URL for a guest's contact number, used by
// the detail view. Returns "" when the contact holds no usable digits.
func WhatsAppLink(kontak string) string {
	number := domain.WhatsAppNumber(kontak)
	if number == "" {
		return ""
	}
	return "https://wa.me/" + number
}
