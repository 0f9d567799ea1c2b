package catalog

import "context"

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) ListAvailable(ctx context.Context) ([]HostelService, error) {
	return s.repo.ListAvailable(ctx)
}

func (s *Service) GetByName(ctx context.Context, name string) (*HostelService, error) {
	return s.repo.GetByName(ctx, name)
}

func (s *Service) GetByID(ctx context.Context, id int64) (*HostelService, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
