package postgres

import (
	"context"
	"fmt"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

type stockRecordRepository struct {
	db queryer
}

func NewStockRecordRepository(db queryer) repository.StockRecordRepository {
	return &stockRecordRepository{db: db}
}

const recordColumns = `id, item_id, user_id, user_name, taken_by, action, amount, amount_outstanding, place, settled, settled_at, last_notified, date`

func scanRecord(row interface{ Scan(...interface{}) error }) (*domain.StockRecord, error) {
	rec := &domain.StockRecord{}
	err := row.Scan(&rec.ID, &rec.ItemID, &rec.UserID, &rec.UserName, &rec.TakenBy, &rec.Action,
		&rec.Amount, &rec.AmountOutstanding, &rec.Place, &rec.Settled, &rec.SettledAt,
		&rec.LastNotified, &rec.Date)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *stockRecordRepository) Create(ctx context.Context, rec *domain.StockRecord) error {
	query := `INSERT INTO stock_records (item_id, user_id, user_name, taken_by, action, amount, amount_outstanding, place, settled, settled_at, last_notified, date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	return r.db.QueryRowContext(ctx, query, rec.ItemID, rec.UserID, rec.UserName, rec.TakenBy,
		rec.Action, rec.Amount, rec.AmountOutstanding, rec.Place, rec.Settled, rec.SettledAt,
		rec.LastNotified, rec.Date).Scan(&rec.ID)
}

func (r *stockRecordRepository) GetByID(ctx context.Context, id int32) (*domain.StockRecordDetails, error) {
	query := `SELECT r.id, r.item_id, r.user_id, r.user_name, r.taken_by, r.action, r.amount,
	                 r.amount_outstanding, r.place, r.settled, r.settled_at, r.last_notified, r.date,
	                 i.name, i.category, i.shed_id, s.name
	          FROM stock_records r
	          JOIN items i ON r.item_id = i.id
	          JOIN sheds s ON i.shed_id = s.id
	          WHERE r.id = $1`
	d := &domain.StockRecordDetails{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.ItemID, &d.UserID, &d.UserName, &d.TakenBy, &d.Action, &d.Amount,
		&d.AmountOutstanding, &d.Place, &d.Settled, &d.SettledAt, &d.LastNotified, &d.Date,
		&d.ItemName, &d.ItemCategory, &d.ShedID, &d.ShedName)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *stockRecordRepository) ListPendingForUpdate(ctx context.Context, itemID int32, place string) ([]domain.StockRecord, error) {
	// Oldest debt first: the return walk credits these in order.
	query := `SELECT ` + recordColumns + ` FROM stock_records
	          WHERE item_id = $1 AND action = $2 AND settled = FALSE`
	args := []interface{}{itemID, domain.StockActionWithdrawal}
	if place != "" {
		args = append(args, place)
		query += fmt.Sprintf(" AND place = $%d", len(args))
	}
	query += " ORDER BY date ASC FOR UPDATE"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.StockRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}

func (r *stockRecordRepository) UpdateReconciliation(ctx context.Context, rec *domain.StockRecord) error {
	query := `UPDATE stock_records SET amount_outstanding = $1, settled = $2, settled_at = $3 WHERE id = $4`
	_, err := r.db.ExecContext(ctx, query, rec.AmountOutstanding, rec.Settled, rec.SettledAt, rec.ID)
	return err
}

func (r *stockRecordRepository) ListPending(ctx context.Context, f repository.PendingFilter, page, pageSize int32) ([]domain.StockRecordDetails, int32, error) {
	query := `SELECT r.id, r.item_id, r.user_id, r.user_name, r.taken_by, r.action, r.amount,
	                 r.amount_outstanding, r.place, r.settled, r.settled_at, r.last_notified, r.date,
	                 i.name, i.category, i.shed_id, s.name
	          FROM stock_records r
	          JOIN items i ON r.item_id = i.id
	          JOIN sheds s ON i.shed_id = s.id
	          WHERE r.settled = FALSE AND r.action = $1`
	args := []interface{}{domain.StockActionWithdrawal}

	if f.TakenBy != "" {
		args = append(args, "%"+f.TakenBy+"%")
		query += fmt.Sprintf(" AND (r.taken_by ILIKE $%d OR r.user_name ILIKE $%d)", len(args), len(args))
	}
	if f.Place != "" {
		args = append(args, "%"+f.Place+"%")
		query += fmt.Sprintf(" AND r.place ILIKE $%d", len(args))
	}

	return r.listDetails(ctx, query, args, page, pageSize)
}

func (r *stockRecordRepository) ListHistory(ctx context.Context, f domain.HistoryFilter, page, pageSize int32) ([]domain.StockRecordDetails, int32, error) {
	query := `SELECT r.id, r.item_id, r.user_id, r.user_name, r.taken_by, r.action, r.amount,
	                 r.amount_outstanding, r.place, r.settled, r.settled_at, r.last_notified, r.date,
	                 i.name, i.category, i.shed_id, s.name
	          FROM stock_records r
	          JOIN items i ON r.item_id = i.id
	          JOIN sheds s ON i.shed_id = s.id
	          WHERE 1=1`
	var args []interface{}

	if f.ItemName != "" {
		args = append(args, "%"+f.ItemName+"%")
		query += fmt.Sprintf(" AND i.name ILIKE $%d", len(args))
	}
	if f.UserName != "" {
		args = append(args, "%"+f.UserName+"%")
		query += fmt.Sprintf(" AND r.user_name ILIKE $%d", len(args))
	}
	if f.TakenBy != "" {
		args = append(args, "%"+f.TakenBy+"%")
		query += fmt.Sprintf(" AND (r.taken_by ILIKE $%d OR r.user_name ILIKE $%d)", len(args), len(args))
	}
	if f.Place != "" {
		args = append(args, "%"+f.Place+"%")
		query += fmt.Sprintf(" AND r.place ILIKE $%d", len(args))
	}
	if f.Action != "" {
		args = append(args, f.Action)
		query += fmt.Sprintf(" AND r.action = $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, "%"+f.Category+"%")
		query += fmt.Sprintf(" AND i.category ILIKE $%d", len(args))
	}
	if f.ShedID != 0 {
		args = append(args, f.ShedID)
		query += fmt.Sprintf(" AND i.shed_id = $%d", len(args))
	}
	if f.Month != 0 && f.Year != 0 {
		args = append(args, f.Month)
		query += fmt.Sprintf(" AND EXTRACT(MONTH FROM r.date) = $%d", len(args))
		args = append(args, f.Year)
		query += fmt.Sprintf(" AND EXTRACT(YEAR FROM r.date) = $%d", len(args))
	}

	return r.listDetails(ctx, query, args, page, pageSize)
}

func (r *stockRecordRepository) listDetails(ctx context.Context, query string, args []interface{}, page, pageSize int32) ([]domain.StockRecordDetails, int32, error) {
	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, offsetFor(page, pageSize))
	query += fmt.Sprintf(" ORDER BY r.date DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var recs []domain.StockRecordDetails
	for rows.Next() {
		var d domain.StockRecordDetails
		if err := rows.Scan(&d.ID, &d.ItemID, &d.UserID, &d.UserName, &d.TakenBy, &d.Action, &d.Amount,
			&d.AmountOutstanding, &d.Place, &d.Settled, &d.SettledAt, &d.LastNotified, &d.Date,
			&d.ItemName, &d.ItemCategory, &d.ShedID, &d.ShedName); err != nil {
			return nil, 0, err
		}
		recs = append(recs, d)
	}
	return recs, count, rows.Err()
}

func (r *stockRecordRepository) ListByItem(ctx context.Context, itemID int32) ([]domain.StockRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM stock_records WHERE item_id = $1 ORDER BY date DESC`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.StockRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, *rec)
	}
	return recs, rows.Err()
}
