package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

type shedService struct {
	shedRepo repository.ShedRepository
}

func NewShedService(shedRepo repository.ShedRepository) ShedService {
	return &shedService{shedRepo: shedRepo}
}

func (s *shedService) CreateShed(ctx context.Context, name string) (*domain.Shed, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: shed name is required", domain.ErrInvalidArgument)
	}

	existing, err := s.shedRepo.GetByName(ctx, name)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing shed: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a shed named %q already exists", domain.ErrInvalidArgument, name)
	}

	shed := &domain.Shed{Name: name}
	if err := s.shedRepo.Create(ctx, shed); err != nil {
		return nil, fmt.Errorf("create shed: %w", err)
	}
	return shed, nil
}

func (s *shedService) GetShed(ctx context.Context, id int32) (*domain.Shed, error) {
	shed, err := s.shedRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("shed %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load shed %d: %w", id, err)
	}
	return shed, nil
}

func (s *shedService) ListSheds(ctx context.Context) ([]domain.Shed, error) {
	sheds, err := s.shedRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sheds: %w", err)
	}
	return sheds, nil
}
