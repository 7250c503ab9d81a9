package service

import (
	"context"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

// WithdrawRequest carries the parameters of a stock withdrawal.
// TakenBy optionally names the person who physically took the goods;
// blank means the acting user themselves.
type WithdrawRequest struct {
	ItemID  int32
	Amount  int32
	Place   string
	TakenBy string
}

// ReturnRequest carries the parameters of a stock return. Place, when
// set, restricts reconciliation to withdrawals made to that place.
type ReturnRequest struct {
	ItemID     int32
	Amount     int32
	Place      string
	ReturnedBy string
}

type ReconciliationService interface {
	Withdraw(ctx context.Context, actor domain.Actor, req WithdrawRequest) (*domain.StockRecord, error)
	Return(ctx context.Context, actor domain.Actor, req ReturnRequest) (*domain.StockRecord, error)
	ListOutstanding(ctx context.Context, f repository.PendingFilter, page, pageSize int32) ([]domain.StockRecordDetails, repository.Page, error)
	ListHistory(ctx context.Context, f domain.HistoryFilter, page, pageSize int32) ([]domain.StockRecordDetails, repository.Page, error)
	ListByItem(ctx context.Context, itemID int32) ([]domain.StockRecord, error)
	DeliveryNote(ctx context.Context, recordIDs []int32) (*domain.DeliveryNote, error)
}

// CreateItemRequest carries the parameters of item creation.
type CreateItemRequest struct {
	Name        string
	Description string
	Category    string
	Class       domain.ItemClass
	ShedID      int32
	Quantity    int32
}

type InventoryService interface {
	CreateItem(ctx context.Context, actor domain.Actor, req CreateItemRequest) (*domain.Item, error)
	GetItem(ctx context.Context, id int32) (*domain.Item, error)
	ListItems(ctx context.Context, f repository.ItemFilter, page, pageSize int32) ([]domain.Item, repository.Page, error)
	AdjustStock(ctx context.Context, actor domain.Actor, itemID, delta int32) (*domain.Item, error)
	DeleteItem(ctx context.Context, actor domain.Actor, itemID int32, reason string) error
	ListDeletedItems(ctx context.Context, name, category string, page, pageSize int32) ([]domain.DeletedItem, repository.Page, error)
}

type TransferService interface {
	Transfer(ctx context.Context, actor domain.Actor, itemID, fromShedID, toShedID, quantity int32) (*domain.Movement, error)
	ListMovements(ctx context.Context) ([]domain.MovementDetails, error)
	ListMovementsByItem(ctx context.Context, itemID int32) ([]domain.MovementDetails, error)
}

type ShedService interface {
	CreateShed(ctx context.Context, name string) (*domain.Shed, error)
	GetShed(ctx context.Context, id int32) (*domain.Shed, error)
	ListSheds(ctx context.Context) ([]domain.Shed, error)
}

type ObservationService interface {
	CreateObservation(ctx context.Context, actor domain.Actor, itemID int32, description string) (*domain.Observation, error)
	ListByItem(ctx context.Context, itemID int32) ([]domain.Observation, error)
}

type AuthService interface {
	SignUp(ctx context.Context, name, surname, email, password string) (*domain.User, error)
	LogIn(ctx context.Context, email, password string) (string, error)
	GetUser(ctx context.Context, id int32) (*domain.User, error)
	ListUsers(ctx context.Context, page, pageSize int32) ([]domain.User, repository.Page, error)
}

type EmailService interface {
	SendPendingItemsNotification(ctx context.Context, to, body string, count int) error
	SendUnauthorizedDeletionAlert(ctx context.Context, to, userName, itemName, reason string) error
}

// NewPage builds the pagination envelope the API emits with every list.
func NewPage(totalRecords, page, pageSize int32) repository.Page {
	if pageSize < 1 {
		pageSize = 1
	}
	totalPages := (totalRecords + pageSize - 1) / pageSize
	return repository.Page{
		TotalRecords: totalRecords,
		TotalPages:   totalPages,
		CurrentPage:  page,
		PageSize:     pageSize,
		HasNext:      page < totalPages,
		HasPrevious:  page > 1,
	}
}
