package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

func newRecordFixture(t *testing.T) (repository.StockRecordRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewStockRecordRepository(db), dbMock
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "item_id", "user_id", "user_name", "taken_by", "action",
		"amount", "amount_outstanding", "place", "settled", "settled_at", "last_notified", "date"})
}

func TestListPendingForUpdateOrdersOldestFirst(t *testing.T) {
	repo, dbMock := newRecordFixture(t)

	day1 := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	dbMock.ExpectQuery(`SELECT .+ FROM stock_records\s+WHERE item_id = \$1 AND action = \$2 AND settled = FALSE ORDER BY date ASC FOR UPDATE`).
		WithArgs(int32(1), string(domain.StockActionWithdrawal)).
		WillReturnRows(recordRows().
			AddRow(int32(11), int32(1), int32(7), "Ana Gomez", "Pedro Ruiz", "WITHDRAWAL",
				int32(5), int32(5), "Obra Norte", false, nil, nil, day1).
			AddRow(int32(12), int32(1), int32(7), "Ana Gomez", "", "WITHDRAWAL",
				int32(3), int32(2), "", false, nil, nil, day2))

	recs, err := repo.ListPendingForUpdate(context.Background(), 1, "")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int32(11), recs[0].ID)
	assert.Equal(t, int32(5), recs[0].Outstanding())
	assert.Equal(t, int32(2), recs[1].Outstanding())
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestListPendingForUpdateScopedToPlace(t *testing.T) {
	repo, dbMock := newRecordFixture(t)

	dbMock.ExpectQuery(`SELECT .+ FROM stock_records\s+WHERE item_id = \$1 AND action = \$2 AND settled = FALSE AND place = \$3 ORDER BY date ASC FOR UPDATE`).
		WithArgs(int32(1), string(domain.StockActionWithdrawal), "Obra Sur").
		WillReturnRows(recordRows())

	recs, err := repo.ListPendingForUpdate(context.Background(), 1, "Obra Sur")
	require.NoError(t, err)
	assert.Empty(t, recs)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestUpdateReconciliation(t *testing.T) {
	repo, dbMock := newRecordFixture(t)

	settledAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	outstanding := int32(0)
	dbMock.ExpectExec(`UPDATE stock_records SET amount_outstanding = \$1, settled = \$2, settled_at = \$3 WHERE id = \$4`).
		WithArgs(int32(0), true, settledAt, int32(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateReconciliation(context.Background(), &domain.StockRecord{
		ID: 11, AmountOutstanding: &outstanding, Settled: true, SettledAt: &settledAt,
	})
	require.NoError(t, err)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCreateWithdrawalRecord(t *testing.T) {
	repo, dbMock := newRecordFixture(t)

	date := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	outstanding := int32(4)
	dbMock.ExpectQuery(`INSERT INTO stock_records`).
		WithArgs(int32(1), int32(7), "Ana Gomez", "Pedro Ruiz", string(domain.StockActionWithdrawal),
			int32(4), int32(4), "Obra Norte", false, nil, nil, date).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(20)))

	rec := &domain.StockRecord{
		ItemID: 1, UserID: 7, UserName: "Ana Gomez", TakenBy: "Pedro Ruiz",
		Action: domain.StockActionWithdrawal, Amount: 4, AmountOutstanding: &outstanding,
		Place: "Obra Norte", Date: date,
	}
	require.NoError(t, repo.Create(context.Background(), rec))
	assert.Equal(t, int32(20), rec.ID)
}

func TestListHistoryMonthYearFilter(t *testing.T) {
	repo, dbMock := newRecordFixture(t)

	dbMock.ExpectQuery(`SELECT count\(\*\) FROM`).
		WithArgs("%taladro%", 3, 2026).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(0)))
	dbMock.ExpectQuery(`EXTRACT\(MONTH FROM r.date\) = \$2 AND EXTRACT\(YEAR FROM r.date\) = \$3 ORDER BY r.date DESC LIMIT \$4 OFFSET \$5`).
		WithArgs("%taladro%", 3, 2026, int32(50), int32(0)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "item_id", "user_id", "user_name", "taken_by",
			"action", "amount", "amount_outstanding", "place", "settled", "settled_at",
			"last_notified", "date", "name", "category", "shed_id", "shed_name"}))

	recs, count, err := repo.ListHistory(context.Background(),
		domain.HistoryFilter{ItemName: "taladro", Month: 3, Year: 2026}, 1, 50)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, recs)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
