package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

// fakeTransactor runs the unit of work directly against the given
// repositories, standing in for a real database transaction.
type fakeTransactor struct {
	repos repository.Repos
}

func (t *fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context, r repository.Repos) error) error {
	return fn(ctx, t.repos)
}

// MockItemRepo
type MockItemRepo struct {
	mock.Mock
}

func (m *MockItemRepo) Create(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) GetByShedForUpdate(ctx context.Context, id, shedID int32) (*domain.Item, error) {
	args := m.Called(ctx, id, shedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) GetActiveByName(ctx context.Context, name string, shedID int32) (*domain.Item, error) {
	args := m.Called(ctx, name, shedID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) FindTransferTarget(ctx context.Context, name, category string, toShedID int32, annotated bool) (*domain.Item, error) {
	args := m.Called(ctx, name, category, toShedID, annotated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}
func (m *MockItemRepo) UpdateAmounts(ctx context.Context, item *domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}
func (m *MockItemRepo) SetStatus(ctx context.Context, id int32, status domain.ItemStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockItemRepo) List(ctx context.Context, f repository.ItemFilter, page, pageSize int32) ([]domain.Item, int32, error) {
	args := m.Called(ctx, f, page, pageSize)
	return args.Get(0).([]domain.Item), args.Get(1).(int32), args.Error(2)
}
func (m *MockItemRepo) CreateDeletedItem(ctx context.Context, di *domain.DeletedItem) error {
	args := m.Called(ctx, di)
	return args.Error(0)
}
func (m *MockItemRepo) ListDeletedItems(ctx context.Context, name, category string, page, pageSize int32) ([]domain.DeletedItem, int32, error) {
	args := m.Called(ctx, name, category, page, pageSize)
	return args.Get(0).([]domain.DeletedItem), args.Get(1).(int32), args.Error(2)
}

// MockStockRecordRepo
type MockStockRecordRepo struct {
	mock.Mock
}

func (m *MockStockRecordRepo) Create(ctx context.Context, rec *domain.StockRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockStockRecordRepo) GetByID(ctx context.Context, id int32) (*domain.StockRecordDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockRecordDetails), args.Error(1)
}
func (m *MockStockRecordRepo) ListPendingForUpdate(ctx context.Context, itemID int32, place string) ([]domain.StockRecord, error) {
	args := m.Called(ctx, itemID, place)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockRecord), args.Error(1)
}
func (m *MockStockRecordRepo) UpdateReconciliation(ctx context.Context, rec *domain.StockRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
func (m *MockStockRecordRepo) ListPending(ctx context.Context, f repository.PendingFilter, page, pageSize int32) ([]domain.StockRecordDetails, int32, error) {
	args := m.Called(ctx, f, page, pageSize)
	return args.Get(0).([]domain.StockRecordDetails), args.Get(1).(int32), args.Error(2)
}
func (m *MockStockRecordRepo) ListHistory(ctx context.Context, f domain.HistoryFilter, page, pageSize int32) ([]domain.StockRecordDetails, int32, error) {
	args := m.Called(ctx, f, page, pageSize)
	return args.Get(0).([]domain.StockRecordDetails), args.Get(1).(int32), args.Error(2)
}
func (m *MockStockRecordRepo) ListByItem(ctx context.Context, itemID int32) ([]domain.StockRecord, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockRecord), args.Error(1)
}

// MockMovementRepo
type MockMovementRepo struct {
	mock.Mock
}

func (m *MockMovementRepo) Create(ctx context.Context, mv *domain.Movement) error {
	args := m.Called(ctx, mv)
	return args.Error(0)
}
func (m *MockMovementRepo) List(ctx context.Context) ([]domain.MovementDetails, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MovementDetails), args.Error(1)
}
func (m *MockMovementRepo) ListByItem(ctx context.Context, itemID int32) ([]domain.MovementDetails, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.MovementDetails), args.Error(1)
}

// MockObservationRepo
type MockObservationRepo struct {
	mock.Mock
}

func (m *MockObservationRepo) Create(ctx context.Context, obs *domain.Observation) error {
	args := m.Called(ctx, obs)
	return args.Error(0)
}
func (m *MockObservationRepo) ListByItem(ctx context.Context, itemID int32) ([]domain.Observation, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).([]domain.Observation), args.Error(1)
}
func (m *MockObservationRepo) CountByItem(ctx context.Context, itemID int32) (int32, error) {
	args := m.Called(ctx, itemID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockObservationRepo) DeleteByItem(ctx context.Context, itemID int32) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// MockShedRepo
type MockShedRepo struct {
	mock.Mock
}

func (m *MockShedRepo) Create(ctx context.Context, shed *domain.Shed) error {
	args := m.Called(ctx, shed)
	return args.Error(0)
}
func (m *MockShedRepo) GetByID(ctx context.Context, id int32) (*domain.Shed, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shed), args.Error(1)
}
func (m *MockShedRepo) GetByName(ctx context.Context, name string) (*domain.Shed, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shed), args.Error(1)
}
func (m *MockShedRepo) List(ctx context.Context) ([]domain.Shed, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Shed), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.User), args.Get(1).(int32), args.Error(2)
}
func (m *MockUserRepo) SetStatus(ctx context.Context, id int32, status domain.UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendPendingItemsNotification(ctx context.Context, to, body string, count int) error {
	args := m.Called(ctx, to, body, count)
	return args.Error(0)
}
func (m *MockEmailService) SendUnauthorizedDeletionAlert(ctx context.Context, to, userName, itemName, reason string) error {
	args := m.Called(ctx, to, userName, itemName, reason)
	return args.Error(0)
}
