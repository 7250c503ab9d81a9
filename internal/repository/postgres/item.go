package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

type itemRepository struct {
	db queryer
}

func NewItemRepository(db queryer) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, name, category, description, class, shed_id, total_amount, actual_amount, is_available, status, created_on`

func scanItem(row interface{ Scan(...interface{}) error }) (*domain.Item, error) {
	it := &domain.Item{}
	err := row.Scan(&it.ID, &it.Name, &it.Category, &it.Description, &it.Class, &it.ShedID,
		&it.TotalAmount, &it.ActualAmount, &it.IsAvailable, &it.Status, &it.CreatedOn)
	if err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (name, category, description, class, shed_id, total_amount, actual_amount, is_available, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	return r.db.QueryRowContext(ctx, query, it.Name, it.Category, it.Description, it.Class, it.ShedID,
		it.TotalAmount, it.ActualAmount, it.IsAvailable, it.Status, time.Now()).Scan(&it.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int32) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	return scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *itemRepository) GetByIDForUpdate(ctx context.Context, id int32) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 FOR UPDATE`
	return scanItem(r.db.QueryRowContext(ctx, query, id))
}

func (r *itemRepository) GetByShedForUpdate(ctx context.Context, id, shedID int32) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1 AND shed_id = $2 FOR UPDATE`
	return scanItem(r.db.QueryRowContext(ctx, query, id, shedID))
}

func (r *itemRepository) GetActiveByName(ctx context.Context, name string, shedID int32) (*domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE name = $1 AND shed_id = $2 AND status = $3`
	return scanItem(r.db.QueryRowContext(ctx, query, name, shedID, domain.ItemStatusActive))
}

func (r *itemRepository) FindTransferTarget(ctx context.Context, name, category string, toShedID int32, annotated bool) (*domain.Item, error) {
	// Annotation presence is part of the match key: an annotated line
	// never merges into a clean one, and vice versa.
	query := `SELECT ` + itemColumns + ` FROM items
	          WHERE name = $1 AND category = $2 AND shed_id = $3 AND status = $4
	            AND (EXISTS (SELECT 1 FROM observations o WHERE o.item_id = items.id)) = $5
	          FOR UPDATE`
	return scanItem(r.db.QueryRowContext(ctx, query, name, category, toShedID, domain.ItemStatusActive, annotated))
}

func (r *itemRepository) UpdateAmounts(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET total_amount = $1, actual_amount = $2, is_available = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, it.TotalAmount, it.ActualAmount, it.IsAvailable, it.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *itemRepository) SetStatus(ctx context.Context, id int32, status domain.ItemStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE items SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (r *itemRepository) List(ctx context.Context, f repository.ItemFilter, page, pageSize int32) ([]domain.Item, int32, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE status = $1`
	args := []interface{}{domain.ItemStatusActive}

	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if f.Category != "" {
		args = append(args, "%"+f.Category+"%")
		query += fmt.Sprintf(" AND category ILIKE $%d", len(args))
	}
	if f.ShedID != 0 {
		args = append(args, f.ShedID)
		query += fmt.Sprintf(" AND shed_id = $%d", len(args))
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, offsetFor(page, pageSize))
	query += fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *it)
	}
	return items, count, rows.Err()
}

func (r *itemRepository) CreateDeletedItem(ctx context.Context, di *domain.DeletedItem) error {
	query := `INSERT INTO deleted_items (item_id, name, description, category, deletion_reason, deleted_by, deleted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	return r.db.QueryRowContext(ctx, query, di.ItemID, di.Name, di.Description, di.Category,
		di.DeletionReason, di.DeletedBy, di.DeletedAt).Scan(&di.ID)
}

func (r *itemRepository) ListDeletedItems(ctx context.Context, name, category string, page, pageSize int32) ([]domain.DeletedItem, int32, error) {
	query := `SELECT id, item_id, name, description, category, deletion_reason, deleted_by, deleted_at FROM deleted_items WHERE 1=1`
	var args []interface{}

	if name != "" {
		args = append(args, "%"+name+"%")
		query += fmt.Sprintf(" AND name ILIKE $%d", len(args))
	}
	if category != "" {
		args = append(args, "%"+category+"%")
		query += fmt.Sprintf(" AND category ILIKE $%d", len(args))
	}

	var count int32
	countQuery := "SELECT count(*) FROM (" + query + ") AS sub"
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&count); err != nil {
		return nil, 0, err
	}

	args = append(args, pageSize, offsetFor(page, pageSize))
	query += fmt.Sprintf(" ORDER BY deleted_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []domain.DeletedItem
	for rows.Next() {
		var di domain.DeletedItem
		if err := rows.Scan(&di.ID, &di.ItemID, &di.Name, &di.Description, &di.Category,
			&di.DeletionReason, &di.DeletedBy, &di.DeletedAt); err != nil {
			return nil, 0, err
		}
		items = append(items, di)
	}
	return items, count, rows.Err()
}
