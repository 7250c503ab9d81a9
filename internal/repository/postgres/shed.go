package postgres

import (
	"context"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

type shedRepository struct {
	db queryer
}

func NewShedRepository(db queryer) repository.ShedRepository {
	return &shedRepository{db: db}
}

func (r *shedRepository) Create(ctx context.Context, shed *domain.Shed) error {
	return r.db.QueryRowContext(ctx, `INSERT INTO sheds (name) VALUES ($1) RETURNING id`, shed.Name).Scan(&shed.ID)
}

func (r *shedRepository) GetByID(ctx context.Context, id int32) (*domain.Shed, error) {
	shed := &domain.Shed{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM sheds WHERE id = $1`, id).Scan(&shed.ID, &shed.Name)
	if err != nil {
		return nil, err
	}
	return shed, nil
}

func (r *shedRepository) GetByName(ctx context.Context, name string) (*domain.Shed, error) {
	shed := &domain.Shed{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM sheds WHERE name = $1`, name).Scan(&shed.ID, &shed.Name)
	if err != nil {
		return nil, err
	}
	return shed, nil
}

func (r *shedRepository) List(ctx context.Context) ([]domain.Shed, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM sheds ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheds []domain.Shed
	for rows.Next() {
		var s domain.Shed
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		sheds = append(sheds, s)
	}
	return sheds, rows.Err()
}
