package repository

import (
	"context"

	"shedstock-backend/internal/domain"
)

// Page carries the pagination envelope all listing endpoints return.
type Page struct {
	TotalRecords int32 `json:"total_records"`
	TotalPages   int32 `json:"total_pages"`
	CurrentPage  int32 `json:"current_page"`
	PageSize     int32 `json:"page_size"`
	HasNext      bool  `json:"has_next"`
	HasPrevious  bool  `json:"has_previous"`
}

// ItemFilter narrows item listings. Zero values mean "no filter".
type ItemFilter struct {
	Name     string
	Category string
	ShedID   int32
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int32) (*domain.Item, error)
	// GetByIDForUpdate takes a row lock; only valid inside a transaction.
	GetByIDForUpdate(ctx context.Context, id int32) (*domain.Item, error)
	// GetByShedForUpdate locks the item matching (id, shedID); the
	// transfer path addresses stock by location, not by id alone.
	GetByShedForUpdate(ctx context.Context, id, shedID int32) (*domain.Item, error)
	GetActiveByName(ctx context.Context, name string, shedID int32) (*domain.Item, error)
	// FindTransferTarget locks the active item in toShedID matching the
	// source's name and category and the same annotation-presence state.
	FindTransferTarget(ctx context.Context, name, category string, toShedID int32, annotated bool) (*domain.Item, error)
	UpdateAmounts(ctx context.Context, item *domain.Item) error
	SetStatus(ctx context.Context, id int32, status domain.ItemStatus) error
	List(ctx context.Context, f ItemFilter, page, pageSize int32) ([]domain.Item, int32, error)
	CreateDeletedItem(ctx context.Context, di *domain.DeletedItem) error
	ListDeletedItems(ctx context.Context, name, category string, page, pageSize int32) ([]domain.DeletedItem, int32, error)
}

// PendingFilter narrows the outstanding-withdrawal listing.
type PendingFilter struct {
	TakenBy string
	Place   string
}

type StockRecordRepository interface {
	Create(ctx context.Context, rec *domain.StockRecord) error
	GetByID(ctx context.Context, id int32) (*domain.StockRecordDetails, error)
	// ListPendingForUpdate locks the unsettled withdrawal records for
	// one item, oldest first, optionally restricted to one place.
	// Only valid inside a transaction: the FIFO walk must serialize.
	ListPendingForUpdate(ctx context.Context, itemID int32, place string) ([]domain.StockRecord, error)
	// UpdateReconciliation persists the outstanding/settled fields
	// mutated by a return's FIFO walk.
	UpdateReconciliation(ctx context.Context, rec *domain.StockRecord) error
	ListPending(ctx context.Context, f PendingFilter, page, pageSize int32) ([]domain.StockRecordDetails, int32, error)
	ListHistory(ctx context.Context, f domain.HistoryFilter, page, pageSize int32) ([]domain.StockRecordDetails, int32, error)
	ListByItem(ctx context.Context, itemID int32) ([]domain.StockRecord, error)
}

type MovementRepository interface {
	Create(ctx context.Context, m *domain.Movement) error
	List(ctx context.Context) ([]domain.MovementDetails, error)
	// ListByItem covers every item sharing the given item's name and
	// category, so a line's movements survive transfers between sheds.
	ListByItem(ctx context.Context, itemID int32) ([]domain.MovementDetails, error)
}

type ObservationRepository interface {
	Create(ctx context.Context, obs *domain.Observation) error
	ListByItem(ctx context.Context, itemID int32) ([]domain.Observation, error)
	CountByItem(ctx context.Context, itemID int32) (int32, error)
	DeleteByItem(ctx context.Context, itemID int32) error
}

type ShedRepository interface {
	Create(ctx context.Context, shed *domain.Shed) error
	GetByID(ctx context.Context, id int32) (*domain.Shed, error)
	GetByName(ctx context.Context, name string) (*domain.Shed, error)
	List(ctx context.Context) ([]domain.Shed, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error)
	SetStatus(ctx context.Context, id int32, status domain.UserStatus) error
}

// Repos bundles the repositories a transactional unit of work sees.
// Inside WithinTx every repository is bound to the same database
// transaction, so row locks taken by one are held for all.
type Repos struct {
	Items        ItemRepository
	Records      StockRecordRepository
	Movements    MovementRepository
	Observations ObservationRepository
}

// Transactor runs fn inside a single database transaction and rolls
// everything back if fn returns an error. Partial application of a
// ledger mutation must never be observable.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
