package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

type observationService struct {
	obsRepo  repository.ObservationRepository
	itemRepo repository.ItemRepository
	now      func() time.Time
}

func NewObservationService(obsRepo repository.ObservationRepository, itemRepo repository.ItemRepository) ObservationService {
	return &observationService{
		obsRepo:  obsRepo,
		itemRepo: itemRepo,
		now:      time.Now,
	}
}

func (s *observationService) CreateObservation(ctx context.Context, actor domain.Actor, itemID int32, description string) (*domain.Observation, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: observation text is required", domain.ErrInvalidArgument)
	}

	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load item %d: %w", itemID, err)
	}

	obs := &domain.Observation{
		ItemID:      itemID,
		Description: description,
		UserID:      actor.UserID,
		UserName:    actor.DisplayName,
		Date:        s.now(),
	}
	if err := s.obsRepo.Create(ctx, obs); err != nil {
		return nil, fmt.Errorf("create observation: %w", err)
	}
	return obs, nil
}

func (s *observationService) ListByItem(ctx context.Context, itemID int32) ([]domain.Observation, error) {
	obs, err := s.obsRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list observations for item %d: %w", itemID, err)
	}
	return obs, nil
}
