package postgres

import (
	"context"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

type observationRepository struct {
	db queryer
}

func NewObservationRepository(db queryer) repository.ObservationRepository {
	return &observationRepository{db: db}
}

func (r *observationRepository) Create(ctx context.Context, obs *domain.Observation) error {
	query := `INSERT INTO observations (item_id, description, user_id, user_name, date)
	          VALUES ($1, $2, $3, $4, $5) RETURNING id`
	return r.db.QueryRowContext(ctx, query, obs.ItemID, obs.Description, obs.UserID, obs.UserName, obs.Date).Scan(&obs.ID)
}

func (r *observationRepository) ListByItem(ctx context.Context, itemID int32) ([]domain.Observation, error) {
	query := `SELECT id, item_id, description, user_id, user_name, date FROM observations WHERE item_id = $1 ORDER BY date ASC`
	rows, err := r.db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var obs []domain.Observation
	for rows.Next() {
		var o domain.Observation
		if err := rows.Scan(&o.ID, &o.ItemID, &o.Description, &o.UserID, &o.UserName, &o.Date); err != nil {
			return nil, err
		}
		obs = append(obs, o)
	}
	return obs, rows.Err()
}

func (r *observationRepository) CountByItem(ctx context.Context, itemID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM observations WHERE item_id = $1`, itemID).Scan(&count)
	return count, err
}

func (r *observationRepository) DeleteByItem(ctx context.Context, itemID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM observations WHERE item_id = $1`, itemID)
	return err
}
