package bukutamu

import (
	"context"

	"github.com/sekolahdigital/tamuadmin/internal/api"
	"github.com/sekolahdigital/tamuadmin/internal/domain"
	"github.com/sekolahdigital/tamuadmin/internal/validate"
)

// Resource is the collection path segment on the backend.
const Resource = "bukutamu"

// Filters accepted by the list endpoint. The date filter is named "date" on
// the wire even though the record field is "tanggal".
const (
	FilterRole = "role"
	FilterDate = "date"
)

// Service adapts the HTTP client to the controller's Source for guest entries.
type Service struct {
	client *api.Client
}

// NewService creates the guest-log backend adapter.
func NewService(client *api.Client) *Service {
	return &Service{client: client}
}

func (s *Service) List(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.BukuTamu], error) {
	return api.ListPage[domain.BukuTamu](ctx, s.client, Resource, q)
}

func (s *Service) Get(ctx context.Context, id int) (*domain.BukuTamu, error) {
	return api.GetDetail[domain.BukuTamu](ctx, s.client, Resource, id)
}

func (s *Service) Create(ctx context.Context, form Form) (string, error) {
	if err := validate.Struct(form); err != nil {
		return "", err
	}
	return s.client.Create(ctx, Resource, form)
}

func (s *Service) Update(ctx context.Context, id int, form Form) (string, error) {
	if err := validate.Struct(form); err != nil {
		return "", err
	}
	return s.client.Update(ctx, Resource, id, form)
}

func (s *Service) Delete(ctx context.Context, id int) (string, error) {
	return s.client.Delete(ctx, Resource, id)
}
