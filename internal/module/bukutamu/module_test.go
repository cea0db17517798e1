package bukutamu

import "testing"

func TestWhatsAppLink(t *testing.T) {
	tests := []struct {
		name   string
		kontak string
		want   string
	}{
		{"local number", "081234567890", "https://wa.me/6281234567890"},
		{"already country coded", "6281234567890", "https://wa.me/6281234567890"},
		{"formatted input", "0812-3456-7890", "https://wa.me/6281234567890"},
		{"no digits", "-", ""},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WhatsAppLink(tt.kontak); got != tt.want {
				t.Errorf("WhatsAppLink(%q) = %q, want %q", tt.kontak, got, tt.want)
			}
		})
	}
}
