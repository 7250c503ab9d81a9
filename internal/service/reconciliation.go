package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/logger"
	"shedstock-backend/internal/repository"
)

type reconciliationService struct {
	tx         repository.Transactor
	recordRepo repository.StockRecordRepository
	now        func() time.Time
}

func NewReconciliationService(tx repository.Transactor, recordRepo repository.StockRecordRepository) ReconciliationService {
	return &reconciliationService{
		tx:         tx,
		recordRepo: recordRepo,
		now:        time.Now,
	}
}

// Withdraw takes quantity out of an item's physical stock and opens a
// withdrawal record. Consumable goods are gone for good: both counters
// drop and the record is born settled. Trackable goods keep the
// nominal total intact and carry the quantity as an outstanding
// balance until it is returned.
func (s *reconciliationService) Withdraw(ctx context.Context, actor domain.Actor, req WithdrawRequest) (*domain.StockRecord, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive, got %d", domain.ErrInvalidArgument, req.Amount)
	}

	takenBy := strings.TrimSpace(req.TakenBy)
	if takenBy == "" {
		takenBy = actor.DisplayName
	}

	var rec *domain.StockRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
		item, err := r.Items.GetByIDForUpdate(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %d: %w", req.ItemID, domain.ErrNotFound)
			}
			return fmt.Errorf("load item %d: %w", req.ItemID, err)
		}

		if item.ActualAmount < req.Amount {
			return &domain.InsufficientStockError{
				ItemID:    item.ID,
				Requested: req.Amount,
				Available: item.ActualAmount,
			}
		}

		now := s.now()
		rec = &domain.StockRecord{
			ItemID:   item.ID,
			UserID:   actor.UserID,
			UserName: actor.DisplayName,
			TakenBy:  takenBy,
			Action:   domain.StockActionWithdrawal,
			Amount:   req.Amount,
			Place:    req.Place,
			Date:     now,
		}

		item.ActualAmount -= req.Amount
		if item.Class == domain.ItemClassConsumable {
			// Never coming back: the nominal total drops too and the
			// record carries no outstanding balance.
			item.TotalAmount -= req.Amount
			rec.Settled = true
		} else {
			outstanding := req.Amount
			rec.AmountOutstanding = &outstanding
		}

		if err := r.Items.UpdateAmounts(ctx, item); err != nil {
			return fmt.Errorf("update item %d counters: %w", item.ID, err)
		}
		if err := r.Records.Create(ctx, rec); err != nil {
			return fmt.Errorf("create withdrawal record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Stock withdrawn",
		"item_id", req.ItemID, "amount", req.Amount, "place", req.Place,
		"taken_by", takenBy, "user_id", actor.UserID)
	return rec, nil
}

// Return hands quantity back and reconciles it against the item's
// outstanding withdrawals, oldest first. The longest-standing debt is
// always cleared before newer ones can be touched.
func (s *reconciliationService) Return(ctx context.Context, actor domain.Actor, req ReturnRequest) (*domain.StockRecord, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("%w: return amount must be positive, got %d", domain.ErrInvalidArgument, req.Amount)
	}

	returnedBy := strings.TrimSpace(req.ReturnedBy)
	if returnedBy == "" {
		returnedBy = actor.DisplayName
	}

	var rec *domain.StockRecord
	err := s.tx.WithinTx(ctx, func(ctx context.Context, r repository.Repos) error {
		item, err := r.Items.GetByIDForUpdate(ctx, req.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("item %d: %w", req.ItemID, domain.ErrNotFound)
			}
			return fmt.Errorf("load item %d: %w", req.ItemID, err)
		}

		pending, err := r.Records.ListPendingForUpdate(ctx, item.ID, req.Place)
		if err != nil {
			return fmt.Errorf("load pending withdrawals for item %d: %w", item.ID, err)
		}

		var totalOutstanding int32
		for i := range pending {
			totalOutstanding += pending[i].Outstanding()
		}
		if req.Amount > totalOutstanding {
			return &domain.ExcessReturnError{
				ItemID:      item.ID,
				Requested:   req.Amount,
				Outstanding: totalOutstanding,
				Place:       req.Place,
			}
		}

		now := s.now()

		// Only the physical count recovers; the nominal total never
		// moved when the trackable goods left.
		item.ActualAmount += req.Amount
		if err := r.Items.UpdateAmounts(ctx, item); err != nil {
			return fmt.Errorf("update item %d counters: %w", item.ID, err)
		}

		remaining := req.Amount
		for i := range pending {
			if remaining == 0 {
				break
			}
			p := &pending[i]
			outstanding := p.Outstanding()

			if remaining >= outstanding {
				remaining -= outstanding
				outstanding = 0
			} else {
				outstanding -= remaining
				remaining = 0
			}
			p.AmountOutstanding = &outstanding

			if outstanding == 0 {
				p.Settled = true
				settledAt := now
				p.SettledAt = &settledAt
			}

			if err := r.Records.UpdateReconciliation(ctx, p); err != nil {
				return fmt.Errorf("update withdrawal record %d: %w", p.ID, err)
			}
		}

		settledAt := now
		rec = &domain.StockRecord{
			ItemID:    item.ID,
			UserID:    actor.UserID,
			UserName:  actor.DisplayName,
			TakenBy:   returnedBy,
			Action:    domain.StockActionReturn,
			Amount:    req.Amount,
			Place:     req.Place,
			Settled:   true,
			SettledAt: &settledAt,
			Date:      now,
		}
		if err := r.Records.Create(ctx, rec); err != nil {
			return fmt.Errorf("create return record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Stock returned",
		"item_id", req.ItemID, "amount", req.Amount, "place", req.Place,
		"returned_by", returnedBy, "user_id", actor.UserID)
	return rec, nil
}

func (s *reconciliationService) ListOutstanding(ctx context.Context, f repository.PendingFilter, page, pageSize int32) ([]domain.StockRecordDetails, repository.Page, error) {
	recs, count, err := s.recordRepo.ListPending(ctx, f, page, pageSize)
	if err != nil {
		return nil, repository.Page{}, fmt.Errorf("list outstanding withdrawals: %w", err)
	}
	return recs, NewPage(count, page, pageSize), nil
}

func (s *reconciliationService) ListHistory(ctx context.Context, f domain.HistoryFilter, page, pageSize int32) ([]domain.StockRecordDetails, repository.Page, error) {
	recs, count, err := s.recordRepo.ListHistory(ctx, f, page, pageSize)
	if err != nil {
		return nil, repository.Page{}, fmt.Errorf("list history: %w", err)
	}
	return recs, NewPage(count, page, pageSize), nil
}

func (s *reconciliationService) ListByItem(ctx context.Context, itemID int32) ([]domain.StockRecord, error) {
	recs, err := s.recordRepo.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("list history for item %d: %w", itemID, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("no stock records for item %d: %w", itemID, domain.ErrNotFound)
	}
	return recs, nil
}

// DeliveryNote assembles the remito data for a batch of records.
// Records that no longer resolve are skipped, matching the lenient
// behavior of the paper-slip workflow.
func (s *reconciliationService) DeliveryNote(ctx context.Context, recordIDs []int32) (*domain.DeliveryNote, error) {
	if len(recordIDs) == 0 {
		return nil, fmt.Errorf("%w: no record ids given", domain.ErrInvalidArgument)
	}

	note := &domain.DeliveryNote{
		Reference: uuid.NewString(),
		IssuedAt:  s.now(),
	}
	for _, id := range recordIDs {
		d, err := s.recordRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				logger.Warn("Delivery note skipping unknown record", "record_id", id)
				continue
			}
			return nil, fmt.Errorf("load record %d: %w", id, err)
		}
		note.Lines = append(note.Lines, domain.DeliveryNoteLine{
			ItemName:    d.ItemName,
			HandedBy:    d.UserName,
			Amount:      d.Amount,
			Place:       d.Place,
			ShedName:    d.ShedName,
			WithdrawnAt: d.Date,
		})
	}
	if len(note.Lines) == 0 {
		return nil, fmt.Errorf("delivery note records: %w", domain.ErrNotFound)
	}
	return note, nil
}
