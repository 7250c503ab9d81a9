package jobs

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shedstock-backend/internal/config"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendPendingItemsNotification(ctx context.Context, to, body string, count int) error {
	args := m.Called(ctx, to, body, count)
	return args.Error(0)
}
func (m *mockEmailService) SendUnauthorizedDeletionAlert(ctx context.Context, to, userName, itemName, reason string) error {
	args := m.Called(ctx, to, userName, itemName, reason)
	return args.Error(0)
}

var fixedNow = time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)

func newJobFixture(t *testing.T) (*JobRunner, sqlmock.Sqlmock, *mockEmailService) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	emailSvc := new(mockEmailService)
	cfg := &config.Config{
		Notifier: config.NotifierConfig{
			ThresholdDays: 60,
			AdminEmail:    "admin@shedstock.local",
		},
	}
	jr := NewJobRunner(db, emailSvc, cfg)
	jr.now = func() time.Time { return fixedNow }
	return jr, dbMock, emailSvc
}

func pendingColumns() []string {
	return []string{"id", "name", "category", "taken_by", "date", "amount_outstanding", "place"}
}

func TestNotifyPendingWithdrawalsSendsAndStamps(t *testing.T) {
	jr, dbMock, emailSvc := newJobFixture(t)
	threshold := fixedNow.AddDate(0, 0, -60)

	withdrawnAt := fixedNow.AddDate(0, 0, -90)
	rows := sqlmock.NewRows(pendingColumns()).
		AddRow(int32(11), "Taladro", "Herramientas", "Pedro Ruiz", withdrawnAt, int32(2), "Obra Norte").
		AddRow(int32(12), "Pala", "Herramientas", "Ana Gomez", withdrawnAt, int32(1), "")

	dbMock.ExpectQuery("SELECT r.id, i.name").
		WithArgs(threshold).
		WillReturnRows(rows)
	emailSvc.On("SendPendingItemsNotification", mock.Anything, "admin@shedstock.local",
		mock.MatchedBy(func(body string) bool {
			return strings.Contains(body, "Taladro") && strings.Contains(body, "Pedro Ruiz") &&
				strings.Contains(body, "Days pending: 90") && strings.Contains(body, "not specified")
		}), 2).Return(nil)
	dbMock.ExpectExec("UPDATE stock_records SET last_notified").
		WithArgs(fixedNow, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	jr.NotifyPendingWithdrawals()

	emailSvc.AssertExpectations(t)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestNotifyPendingWithdrawalsNothingToReport(t *testing.T) {
	jr, dbMock, emailSvc := newJobFixture(t)

	dbMock.ExpectQuery("SELECT r.id, i.name").
		WillReturnRows(sqlmock.NewRows(pendingColumns()))

	jr.NotifyPendingWithdrawals()

	emailSvc.AssertNotCalled(t, "SendPendingItemsNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestNotifyPendingWithdrawalsSendFailureSkipsStamp(t *testing.T) {
	jr, dbMock, emailSvc := newJobFixture(t)

	withdrawnAt := fixedNow.AddDate(0, 0, -70)
	dbMock.ExpectQuery("SELECT r.id, i.name").
		WillReturnRows(sqlmock.NewRows(pendingColumns()).
			AddRow(int32(5), "Carretilla", "", "Ana Gomez", withdrawnAt, int32(1), ""))
	emailSvc.On("SendPendingItemsNotification", mock.Anything, mock.Anything, mock.Anything, 1).
		Return(errors.New("smtp unreachable"))

	jr.NotifyPendingWithdrawals()

	// No UPDATE expected: the record must qualify again next tick.
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestNotifyPendingWithdrawalsQueryFailure(t *testing.T) {
	jr, dbMock, emailSvc := newJobFixture(t)

	dbMock.ExpectQuery("SELECT r.id, i.name").WillReturnError(errors.New("connection refused"))

	jr.NotifyPendingWithdrawals()

	emailSvc.AssertNotCalled(t, "SendPendingItemsNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
