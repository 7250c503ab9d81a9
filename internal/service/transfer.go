package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/logger"
	"shedstock-backend/internal/repository"
)

type transferService struct {
	tx           repository.Transactor
	movementRepo repository.MovementRepository
	itemRepo     repository.ItemRepository
	now          func() time.Time
}

func NewTransferService(tx repository.Transactor, movementRepo repository.MovementRepository,
	itemRepo repository.ItemRepository) TransferService {
	return &transferService{
		tx:           tx,
		movementRepo: movementRepo,
		itemRepo:     itemRepo,
		now:          time.Now,
	}
}

// Transfer moves quantity of an item from one shed to another as a
// single atomic unit. Stock merges into a compatible destination line
// when one exists; otherwise a new line is created, carrying the
// source's observations along with it.
func (s *transferService) Transfer(ctx context.Context, actor domain.Actor, itemID, fromShedID, toShedID, quantity int32) (*domain.Movement, error) {
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: transfer quantity must be positive, got %d", domain.ErrInvalidArgument, quantity)
	}
	if fromShedID == toShedID {
		return nil, fmt.Errorf("%w: source and destination shed are the same", domain.ErrInvalidArgument)
	}

	var movement *domain.Movement
	err := s.tx.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
		source, err := r.Items.GetByShedForUpdate(ctx, itemID, fromShedID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %d in shed %d: %w", itemID, fromShedID, domain.ErrNotFound)
			}
			return fmt.Errorf("load item %d in shed %d: %w", itemID, fromShedID, err)
		}

		if source.ActualAmount < quantity {
			return &domain.InsufficientStockError{
				ItemID:    source.ID,
				Requested: quantity,
				Available: source.ActualAmount,
			}
		}

		source.ActualAmount -= quantity
		source.TotalAmount -= quantity

		obsCount, err := r.Observations.CountByItem(ctx, source.ID)
		if err != nil {
			return fmt.Errorf("count observations for item %d: %w", source.ID, err)
		}
		annotated := obsCount > 0

		target, err := r.Items.FindTransferTarget(ctx, source.Name, source.Category, toShedID, annotated)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("find transfer target: %w", err)
		}

		if target != nil {
			target.ActualAmount += quantity
			target.TotalAmount += quantity
			if err := r.Items.UpdateAmounts(ctx, target); err != nil {
				return fmt.Errorf("update target item %d counters: %w", target.ID, err)
			}
		} else {
			target = &domain.Item{
				Name:         source.Name,
				Category:     source.Category,
				Description:  source.Description,
				Class:        source.Class,
				ShedID:       toShedID,
				TotalAmount:  quantity,
				ActualAmount: quantity,
				IsAvailable:  true,
				Status:       domain.ItemStatusActive,
			}
			if err := r.Items.Create(ctx, target); err != nil {
				return fmt.Errorf("create destination item: %w", err)
			}

			if annotated {
				obs, err := r.Observations.ListByItem(ctx, source.ID)
				if err != nil {
					return fmt.Errorf("list observations for item %d: %w", source.ID, err)
				}
				for i := range obs {
					clone := domain.Observation{
						ItemID:      target.ID,
						Description: obs[i].Description,
						UserID:      obs[i].UserID,
						UserName:    obs[i].UserName,
						Date:        obs[i].Date,
					}
					if err := r.Observations.Create(ctx, &clone); err != nil {
						return fmt.Errorf("clone observation onto item %d: %w", target.ID, err)
					}
				}
			}
		}

		if err := r.Items.UpdateAmounts(ctx, source); err != nil {
			return fmt.Errorf("update source item %d counters: %w", source.ID, err)
		}

		// A drained, annotated source has nothing left for its notes
		// to describe; they now live with the destination.
		if source.ActualAmount == 0 && annotated {
			if err := r.Observations.DeleteByItem(ctx, source.ID); err != nil {
				return fmt.Errorf("delete observations for drained item %d: %w", source.ID, err)
			}
		}

		movement = &domain.Movement{
			ItemID:     source.ID,
			ToItemID:   target.ID,
			ItemName:   source.Name,
			FromShedID: fromShedID,
			ToShedID:   toShedID,
			Quantity:   quantity,
			UserID:     actor.UserID,
			UserName:   actor.DisplayName,
			Date:       s.now(),
		}
		if err := r.Movements.Create(ctx, movement); err != nil {
			return fmt.Errorf("create movement record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Stock transferred",
		"item_id", itemID, "from_shed", fromShedID, "to_shed", toShedID,
		"quantity", quantity, "user_id", actor.UserID)
	return movement, nil
}

func (s *transferService) ListMovements(ctx context.Context) ([]domain.MovementDetails, error) {
	mvs, err := s.movementRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	return mvs, nil
}

func (s *transferService) ListMovementsByItem(ctx context.Context, itemID int32) ([]domain.MovementDetails, error) {
	if _, err := s.itemRepo.GetByID(ctx, itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load item %d: %w", itemID, err)
	}
	mvs, err := s.movementRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list movements for item %d: %w", itemID, err)
	}
	return mvs, nil
}
