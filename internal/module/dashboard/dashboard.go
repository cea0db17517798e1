// Package dashboard loads the landing-screen statistics and drives the
// manual attendance sync.
package dashboard

import (
	"context"
	"errors"
	"time"

	"github.com/sekolahdigital/tamuadmin/internal/api"
	"github.com/sekolahdigital/tamuadmin/internal/controller"
	"github.com/sekolahdigital/tamuadmin/internal/domain"
)

// DefaultNotifyTTL keeps dashboard notifications up a little longer than the
// list screens; sync feedback tends to be read, not glanced at.
const DefaultNotifyTTL = 5 * time.Second

// Service fetches dashboard data and triggers the manual sync.
type Service struct {
	client *api.Client
}

// NewService creates the dashboard backend adapter.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

// Fetch loads the counters and the latest guest entries.
func (s *Service) Fetch(ctx context.Context) (*domain.Dashboard, error) {
	var d domain.Dashboard
	if err := s.client.GetJSON(ctx, "dashboard", &d); err != nil {
		return nil, err
	}
	if d.RecentGuests == nil {
		d.RecentGuests = []domain.BukuTamu{}
	}
	return &d, nil
}

// SyncManual asks the backend to re-sync guest data from the attendance
// system and returns its status message.
func (s *Service) SyncManual(ctx context.Context) (string, error) {
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err := s.client.PostJSON(ctx, "sync-manual", nil, &resp); err != nil {
		return "", err
	}
	if !resp.Success {
		msg := resp.Message
		if msg == "" {
			msg = "Sinkronisasi gagal"
		}
		return "", domain.NewAppError(domain.CodeInternal, msg, nil)
	}
	return resp.Message, nil
}

// Screen bundles the dashboard service with its notification slot.
type Screen struct {
	svc      *Service
	notifier *controller.Notifier
}

// NewScreen creates the dashboard screen. A zero ttl uses DefaultNotifyTTL.
func NewScreen(client *api.Client, ttl time.Duration) *Screen {
	if ttl <= 0 {
		ttl = DefaultNotifyTTL
	}
	return &Screen{
		svc:      NewService(client),
		notifier: controller.NewNotifier(ttl),
	}
}

// Notifier exposes the notification slot for rendering and dismissal.
func (s *Screen) Notifier() *controller.Notifier { return s.notifier }

// Load fetches the dashboard, raising an error notification on failure.
func (s *Screen) Load(ctx context.Context) (*domain.Dashboard, error) {
	d, err := s.svc.Fetch(ctx)
	if err != nil {
		s.notifier.Show(domain.NotifyError, "Gagal mengambil data dashboard")
		return nil, err
	}
	return d, nil
}

// Sync runs the manual sync and reports the outcome as a notification.
func (s *Screen) Sync(ctx context.Context) error {
	msg, err := s.svc.SyncManual(ctx)
	if err != nil {
		text := "Sinkronisasi gagal"
		var appErr *domain.AppError
		if errors.As(err, &appErr) && appErr.Message != "" {
			text = appErr.Message
		}
		s.notifier.Show(domain.NotifyError, text)
		return err
	}
	if msg == "" {
		msg = "Sinkronisasi berhasil!"
	}
	s.notifier.Show(domain.NotifySuccess, msg)
	return nil
}
