package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

func newItemFixture(t *testing.T) (repository.ItemRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewItemRepository(db), dbMock
}

func itemRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "category", "description", "class", "shed_id",
		"total_amount", "actual_amount", "is_available", "status", "created_on"})
}

func TestItemGetByIDForUpdateLocksRow(t *testing.T) {
	repo, dbMock := newItemFixture(t)

	dbMock.ExpectQuery(`SELECT .+ FROM items WHERE id = \$1 FOR UPDATE`).
		WithArgs(int32(1)).
		WillReturnRows(itemRows().AddRow(int32(1), "Taladro", "Herramientas", "", "TRACKABLE",
			int32(1), int32(10), int32(8), true, "ACTIVE", time.Now()))

	it, err := repo.GetByIDForUpdate(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemClassTrackable, it.Class)
	assert.Equal(t, int32(8), it.ActualAmount)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestItemFindTransferTargetMatchesAnnotationPresence(t *testing.T) {
	repo, dbMock := newItemFixture(t)

	dbMock.ExpectQuery(`SELECT .+ FROM items\s+WHERE name = \$1 AND category = \$2 AND shed_id = \$3 AND status = \$4\s+AND \(EXISTS`).
		WithArgs("Pala", "Herramientas", int32(2), string(domain.ItemStatusActive), true).
		WillReturnRows(itemRows().AddRow(int32(5), "Pala", "Herramientas", "", "TRACKABLE",
			int32(2), int32(3), int32(3), true, "ACTIVE", time.Now()))

	it, err := repo.FindTransferTarget(context.Background(), "Pala", "Herramientas", 2, true)
	require.NoError(t, err)
	assert.Equal(t, int32(5), it.ID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestItemFindTransferTargetNoMatch(t *testing.T) {
	repo, dbMock := newItemFixture(t)

	dbMock.ExpectQuery(`SELECT .+ FROM items`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindTransferTarget(context.Background(), "Pala", "", 2, false)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestItemUpdateAmountsMissingRow(t *testing.T) {
	repo, dbMock := newItemFixture(t)

	dbMock.ExpectExec(`UPDATE items SET total_amount = \$1, actual_amount = \$2, is_available = \$3 WHERE id = \$4`).
		WithArgs(int32(10), int32(7), true, int32(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateAmounts(context.Background(), &domain.Item{
		ID: 99, TotalAmount: 10, ActualAmount: 7, IsAvailable: true,
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestItemListFiltersAndPaginates(t *testing.T) {
	repo, dbMock := newItemFixture(t)

	dbMock.ExpectQuery(`SELECT count\(\*\) FROM`).
		WithArgs(string(domain.ItemStatusActive), "%tal%", int32(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int32(1)))
	dbMock.ExpectQuery(`SELECT .+ FROM items WHERE status = \$1 AND name ILIKE \$2 AND shed_id = \$3 ORDER BY name ASC LIMIT \$4 OFFSET \$5`).
		WithArgs(string(domain.ItemStatusActive), "%tal%", int32(1), int32(50), int32(0)).
		WillReturnRows(itemRows().AddRow(int32(1), "Taladro", "Herramientas", "", "TRACKABLE",
			int32(1), int32(10), int32(8), true, "ACTIVE", time.Now()))

	items, count, err := repo.List(context.Background(), repository.ItemFilter{Name: "tal", ShedID: 1}, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int32(1), count)
	require.Len(t, items, 1)
	assert.Equal(t, "Taladro", items[0].Name)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestItemCreateDeletedItem(t *testing.T) {
	repo, dbMock := newItemFixture(t)
	deletedAt := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	dbMock.ExpectQuery(`INSERT INTO deleted_items`).
		WithArgs(int32(1), "Taladro", "", "Herramientas", "obsoleto", "Marta Diaz", deletedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int32(3)))

	di := &domain.DeletedItem{ItemID: 1, Name: "Taladro", Category: "Herramientas",
		DeletionReason: "obsoleto", DeletedBy: "Marta Diaz", DeletedAt: deletedAt}
	require.NoError(t, repo.CreateDeletedItem(context.Background(), di))
	assert.Equal(t, int32(3), di.ID)
}
