package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hostelflow/internal/database"
	"hostelflow/internal/domain/auth"
	"hostelflow/internal/domain/catalog"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db              *gorm.DB
	defaultPassword string
	log             *zap.Logger
}

// NewService takes the password new provider accounts are created with.
func NewService(db *gorm.DB, defaultPassword string, log *zap.Logger) *Service {
	return &Service{db: db, defaultPassword: defaultPassword, log: log}
}

// Create onboards a provider: identity, profile, catalog rows and links, all
// in one transaction. Unknown predefined ids are skipped; repeated ids in one
// request are linked once.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*CreateResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	hash, err := auth.HashPassword(s.defaultPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	result := &CreateResult{CreatedServices: []catalog.HostelService{}}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		users := auth.NewUserRepository(tx)
		providers := NewRepository(tx)
		services := catalog.NewRepository(tx)

		taken, err := users.ExistsByEmail(ctx, email)
		if err != nil {
			return err
		}
		if !taken {
			taken, err = providers.EmailTaken(ctx, email)
			if err != nil {
				return err
			}
		}
		if taken {
			return ErrEmailAlreadyExists
		}

		user := &auth.User{
			Email:             email,
			Username:          name,
			Name:              name,
			PasswordHash:      hash,
			IsServiceProvider: true,
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("create provider user: %w", err)
		}

		profile := &ServiceProvider{
			UserID:         user.ID,
			Name:           name,
			Email:          email,
			Phone:          strings.TrimSpace(req.Phone),
			Specialization: strings.TrimSpace(req.Specialization),
		}
		if err := providers.Create(ctx, profile); err != nil {
			return fmt.Errorf("create provider profile: %w", err)
		}

		for _, id := range dedupe(req.Services) {
			svc, created, ok, err := services.EnsurePredefined(ctx, id, name)
			if err != nil {
				return fmt.Errorf("ensure service %d: %w", id, err)
			}
			if !ok {
				s.log.Debug("skipping unknown predefined service", zap.Int64("service_id", id))
				continue
			}
			if created {
				result.CreatedServices = append(result.CreatedServices, *svc)
			}
			if err := providers.Link(ctx, profile.ID, svc.ID); err != nil {
				return fmt.Errorf("link service %d: %w", svc.ID, err)
			}
		}

		result.Provider = CreatedProvider{
			ID:     profile.ID,
			UserID: user.ID,
			Name:   name,
			Email:  email,
		}
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	s.log.Info("service provider created",
		zap.Int64("provider_id", result.Provider.ID),
		zap.Int64("user_id", result.Provider.UserID),
		zap.Int("new_services", len(result.CreatedServices)),
	)
	return result, nil
}

// Update applies a partial patch. A present service id list replaces the
// provider's links and must reference existing catalog rows.
func (s *Service) Update(ctx context.Context, id int64, req UpdateRequest) (*ProviderView, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := NewRepository(tx)

		p, err := providers.GetByID(ctx, id)
		if err != nil {
			return err
		}

		renamed := false
		if req.Name != nil {
			if n := strings.TrimSpace(*req.Name); n != p.Name {
				p.Name = n
				renamed = true
			}
		}
		if req.Email != nil {
			p.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.Phone != nil {
			p.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Specialization != nil {
			p.Specialization = strings.TrimSpace(*req.Specialization)
		}

		if err := providers.Save(ctx, p); err != nil {
			return err
		}

		if req.ServiceIDs != nil {
			ids := dedupe(*req.ServiceIDs)
			if len(ids) > 0 {
				n, err := catalog.NewRepository(tx).CountExisting(ctx, ids)
				if err != nil {
					return err
				}
				if n != int64(len(ids)) {
					return ErrUnknownService
				}
			}
			if err := providers.Unlink(ctx, p.ID); err != nil {
				return err
			}
			for _, sid := range ids {
				if err := providers.Link(ctx, p.ID, sid); err != nil {
					return err
				}
			}
		}

		if renamed {
			return providers.UpdateProviderName(ctx, p.ID, p.Name)
		}
		return nil
	})
	if err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	return s.Get(ctx, id)
}

// Delete removes the profile and its links. The identity is kept.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		providers := NewRepository(tx)
		if _, err := providers.GetByID(ctx, id); err != nil {
			return err
		}
		if err := providers.Unlink(ctx, id); err != nil {
			return err
		}
		return providers.Delete(ctx, id)
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*ProviderView, error) {
	repo := NewRepository(s.db)
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	offered, err := repo.OfferedServices(ctx, []int64{p.ID})
	if err != nil {
		return nil, err
	}
	return &ProviderView{ServiceProvider: *p, Services: orEmpty(offered[p.ID])}, nil
}

// List returns every provider with its offered services nested.
func (s *Service) List(ctx context.Context) ([]ProviderView, error) {
	repo := NewRepository(s.db)
	providers, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(providers))
	for _, p := range providers {
		ids = append(ids, p.ID)
	}
	offered, err := repo.OfferedServices(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ProviderView, 0, len(providers))
	for _, p := range providers {
		out = append(out, ProviderView{ServiceProvider: p, Services: orEmpty(offered[p.ID])})
	}
	return out, nil
}

// Profile returns the caller's own provider profile.
func (s *Service) Profile(ctx context.Context, userID int64) (*ProfileView, error) {
	p, err := NewRepository(s.db).GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	user, err := auth.NewUserRepository(s.db).GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}

	return &ProfileView{
		ID:             p.ID,
		User:           ProfileUser{ID: user.ID, Email: user.Email, Username: user.Username},
		Phone:          p.Phone,
		Specialization: p.Specialization,
	}, nil
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func orEmpty(s []OfferedService) []OfferedService {
	if s == nil {
		return []OfferedService{}
	}
	return s
}
