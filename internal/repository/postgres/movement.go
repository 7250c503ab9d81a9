package postgres

import (
	"context"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

type movementRepository struct {
	db queryer
}

func NewMovementRepository(db queryer) repository.MovementRepository {
	return &movementRepository{db: db}
}

func (r *movementRepository) Create(ctx context.Context, m *domain.Movement) error {
	query := `INSERT INTO movements (item_id, to_item_id, item_name, from_shed_id, to_shed_id, quantity, user_id, user_name, date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	return r.db.QueryRowContext(ctx, query, m.ItemID, m.ToItemID, m.ItemName, m.FromShedID,
		m.ToShedID, m.Quantity, m.UserID, m.UserName, m.Date).Scan(&m.ID)
}

const movementSelect = `SELECT m.id, m.item_id, m.to_item_id, m.item_name, m.from_shed_id, m.to_shed_id,
	       m.quantity, m.user_id, m.user_name, m.date, fs.name, ts.name
	FROM movements m
	JOIN sheds fs ON m.from_shed_id = fs.id
	JOIN sheds ts ON m.to_shed_id = ts.id`

func (r *movementRepository) List(ctx context.Context) ([]domain.MovementDetails, error) {
	rows, err := r.db.QueryContext(ctx, movementSelect+` ORDER BY m.date DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (r *movementRepository) ListByItem(ctx context.Context, itemID int32) ([]domain.MovementDetails, error) {
	// Transfers spawn sibling item rows in other sheds; the history of
	// a line is the union over every row sharing its name and category.
	query := movementSelect + `
	WHERE m.item_id IN (
		SELECT i2.id FROM items i2
		JOIN items i1 ON i1.name = i2.name AND i1.category = i2.category
		WHERE i1.id = $1
	)
	ORDER BY m.date DESC`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows interface {
	Next() bool
	Scan(...interface{}) error
	Err() error
}) ([]domain.MovementDetails, error) {
	var mvs []domain.MovementDetails
	for rows.Next() {
		var d domain.MovementDetails
		if err := rows.Scan(&d.ID, &d.ItemID, &d.ToItemID, &d.ItemName, &d.FromShedID, &d.ToShedID,
			&d.Quantity, &d.UserID, &d.UserName, &d.Date, &d.FromShedName, &d.ToShedName); err != nil {
			return nil, err
		}
		mvs = append(mvs, d)
	}
	return mvs, rows.Err()
}
