package catalog

import (
	"context"
	"errors"
	"strings"

	"temple/internal/domain"
	"temple/internal/pkg/validator"
	"temple/internal/repository"
)

var (
	ErrNotFound   = errors.New("ceremony type not found")
	ErrValidation = errors.New("invalid ceremony type fields")
)

type CeremonyRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.CeremonyType, error)
	ListActive(ctx context.Context) ([]domain.CeremonyType, error)
	ListAll(ctx context.Context) ([]domain.CeremonyType, error)
	Create(ctx context.Context, ct *domain.CeremonyType) error
	Update(ctx context.Context, ct *domain.CeremonyType) error
	Deactivate(ctx context.Context, id int64) error
}

type Service struct {
	ceremonies CeremonyRepo
}

func NewService(ceremonies CeremonyRepo) *Service {
	return &Service{ceremonies: ceremonies}
}

func (s *Service) ListActive(ctx context.Context) ([]domain.CeremonyType, error) {
	return s.ceremonies.ListActive(ctx)
}

func (s *Service) ListAll(ctx context.Context) ([]domain.CeremonyType, error) {
	return s.ceremonies.ListAll(ctx)
}

func (s *Service) Create(ctx context.Context, req CreateCeremonyRequest) (*domain.CeremonyType, error) {
	ct := &domain.CeremonyType{
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Description:     strings.TrimSpace(req.Description),
		IsActive:        true,
	}
	if fields := validator.Validate(ct); fields != nil {
		return nil, ErrValidation
	}
	if err := s.ceremonies.Create(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCeremonyRequest) (*domain.CeremonyType, error) {
	ct := &domain.CeremonyType{
		ID:              id,
		Name:            strings.TrimSpace(req.Name),
		DurationMinutes: req.DurationMinutes,
		Description:     strings.TrimSpace(req.Description),
	}
	if fields := validator.Validate(ct); fields != nil {
		return nil, ErrValidation
	}
	if err := s.ceremonies.Update(ctx, ct); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.ceremonies.GetByID(ctx, id)
}

// Deactivate soft-disables a ceremony type. Types referenced by
// bookings are never hard-deleted.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	err := s.ceremonies.Deactivate(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
