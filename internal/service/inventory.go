package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/logger"
	"shedstock-backend/internal/repository"
)

type inventoryService struct {
	tx         repository.Transactor
	itemRepo   repository.ItemRepository
	shedRepo   repository.ShedRepository
	emailSvc   EmailService
	adminEmail string
	now        func() time.Time
}

func NewInventoryService(tx repository.Transactor, itemRepo repository.ItemRepository,
	shedRepo repository.ShedRepository, emailSvc EmailService, adminEmail string) InventoryService {
	return &inventoryService{
		tx:         tx,
		itemRepo:   itemRepo,
		shedRepo:   shedRepo,
		emailSvc:   emailSvc,
		adminEmail: adminEmail,
		now:        time.Now,
	}
}

// normalizeName lowercases the name and capitalizes its first letter,
// so "TALADRO" and "taladro" land on the same stock line.
func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	runes := []rune(name)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func (s *inventoryService) CreateItem(ctx context.Context, actor domain.Actor, req CreateItemRequest) (*domain.Item, error) {
	name := normalizeName(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: item name is required", domain.ErrInvalidArgument)
	}
	if req.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", domain.ErrInvalidArgument)
	}
	if !req.Class.Valid() {
		return nil, fmt.Errorf("%w: unknown item class %q", domain.ErrInvalidArgument, req.Class)
	}

	if _, err := s.shedRepo.GetByID(ctx, req.ShedID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("shed %d: %w", req.ShedID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load shed %d: %w", req.ShedID, err)
	}

	existing, err := s.itemRepo.GetActiveByName(ctx, name, req.ShedID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check existing item: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: an item named %q already exists in shed %d", domain.ErrInvalidArgument, name, req.ShedID)
	}

	item := &domain.Item{
		Name:         name,
		Category:     req.Category,
		Description:  req.Description,
		Class:        req.Class,
		ShedID:       req.ShedID,
		TotalAmount:  req.Quantity,
		ActualAmount: req.Quantity,
		IsAvailable:  true,
		Status:       domain.ItemStatusActive,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	logger.Info("Item created", "item_id", item.ID, "name", name, "shed_id", req.ShedID, "user_id", actor.UserID)
	return item, nil
}

func (s *inventoryService) GetItem(ctx context.Context, id int32) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load item %d: %w", id, err)
	}
	return item, nil
}

func (s *inventoryService) ListItems(ctx context.Context, f repository.ItemFilter, page, pageSize int32) ([]domain.Item, repository.Page, error) {
	items, count, err := s.itemRepo.List(ctx, f, page, pageSize)
	if err != nil {
		return nil, repository.Page{}, fmt.Errorf("list items: %w", err)
	}
	return items, NewPage(count, page, pageSize), nil
}

// AdjustStock applies a manual correction to both counters: goods
// bought, lost, or miscounted rather than withdrawn against a record.
func (s *inventoryService) AdjustStock(ctx context.Context, actor domain.Actor, itemID, delta int32) (*domain.Item, error) {
	if delta == 0 {
		return nil, fmt.Errorf("%w: adjustment delta cannot be zero", domain.ErrInvalidArgument)
	}

	var item *domain.Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
		var err error
		item, err = r.Items.GetByIDForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
			}
			return fmt.Errorf("load item %d: %w", itemID, err)
		}

		newTotal := item.TotalAmount + delta
		newActual := item.ActualAmount + delta
		if newTotal < 0 || newActual < 0 {
			return &domain.InsufficientStockError{
				ItemID:    item.ID,
				Requested: -delta,
				Available: item.ActualAmount,
			}
		}

		item.TotalAmount = newTotal
		item.ActualAmount = newActual
		if err := r.Items.UpdateAmounts(ctx, item); err != nil {
			return fmt.Errorf("update item %d counters: %w", item.ID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Stock adjusted", "item_id", itemID, "delta", delta, "user_id", actor.UserID)
	return item, nil
}

// DeleteItem soft-deletes an item: the row flips to DELETED and an
// immutable audit entry records who removed it and why. Only admins
// may delete, and only when nothing is out on site.
func (s *inventoryService) DeleteItem(ctx context.Context, actor domain.Actor, itemID int32, reason string) error {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("item %d: %w", itemID, domain.ErrNotFound)
		}
		return fmt.Errorf("load item %d: %w", itemID, err)
	}

	if !actor.IsAdmin() {
		if mailErr := s.emailSvc.SendUnauthorizedDeletionAlert(ctx, s.adminEmail, actor.DisplayName, item.Name, reason); mailErr != nil {
			logger.Error("Failed to send unauthorized deletion alert", "item_id", itemID, "error", mailErr)
		}
		return fmt.Errorf("%w: only admins can delete items", domain.ErrPermissionDenied)
	}

	if item.ActualAmount != item.TotalAmount {
		return fmt.Errorf("%w: item %d still has goods out on site", domain.ErrInvalidArgument, itemID)
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
		di := &domain.DeletedItem{
			ItemID:         item.ID,
			Name:           item.Name,
			Description:    item.Description,
			Category:       item.Category,
			DeletionReason: reason,
			DeletedBy:      actor.DisplayName,
			DeletedAt:      s.now(),
		}
		if err := r.Items.CreateDeletedItem(ctx, di); err != nil {
			return fmt.Errorf("create deletion audit entry: %w", err)
		}
		if err := r.Observations.DeleteByItem(ctx, item.ID); err != nil {
			return fmt.Errorf("delete observations for item %d: %w", item.ID, err)
		}
		if err := r.Items.SetStatus(ctx, item.ID, domain.ItemStatusDeleted); err != nil {
			return fmt.Errorf("mark item %d deleted: %w", item.ID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Item deleted", "item_id", itemID, "name", item.Name, "user_id", actor.UserID)
	return nil
}

func (s *inventoryService) ListDeletedItems(ctx context.Context, name, category string, page, pageSize int32) ([]domain.DeletedItem, repository.Page, error) {
	items, count, err := s.itemRepo.ListDeletedItems(ctx, name, category, page, pageSize)
	if err != nil {
		return nil, repository.Page{}, fmt.Errorf("list deleted items: %w", err)
	}
	return items, NewPage(count, page, pageSize), nil
}
