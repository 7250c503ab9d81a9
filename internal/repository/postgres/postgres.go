package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"shedstock-backend/internal/repository"

	_ "github.com/lib/pq"
)

// queryer is the subset of *sql.DB and *sql.Tx the repositories use,
// letting the same implementations run standalone or inside WithinTx.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type Store struct {
	db *sql.DB
	repository.ItemRepository
	repository.StockRecordRepository
	repository.MovementRepository
	repository.ObservationRepository
	repository.ShedRepository
	repository.UserRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                    db,
		ItemRepository:        NewItemRepository(db),
		StockRecordRepository: NewStockRecordRepository(db),
		MovementRepository:    NewMovementRepository(db),
		ObservationRepository: NewObservationRepository(db),
		ShedRepository:        NewShedRepository(db),
		UserRepository:        NewUserRepository(db),
	}
}

// WithinTx implements repository.Transactor. The repositories handed
// to fn share one transaction; FOR UPDATE locks taken there hold until
// commit or rollback.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, r repository.Repos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	repos := repository.Repos{
		Items:        NewItemRepository(tx),
		Records:      NewStockRecordRepository(tx),
		Movements:    NewMovementRepository(tx),
		Observations: NewObservationRepository(tx),
	}

	if err := fn(ctx, repos); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func offsetFor(page, pageSize int32) int32 {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
