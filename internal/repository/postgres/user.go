package postgres

import (
	"context"

	"shedstock-backend/internal/domain"
	"shedstock-backend/internal/repository"
)

type userRepository struct {
	db queryer
}

func NewUserRepository(db queryer) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, name, surname, email, password, role, status`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (name, surname, email, password, role, status)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	return r.db.QueryRowContext(ctx, query, u.Name, u.Surname, u.Email, u.Password, u.Role, u.Status).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Password, &u.Role, &u.Status)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email).
		Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Password, &u.Role, &u.Status)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) List(ctx context.Context, page, pageSize int32) ([]domain.User, int32, error) {
	var count int32
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Surname, &u.Email, &u.Password, &u.Role, &u.Status); err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, count, rows.Err()
}

func (r *userRepository) SetStatus(ctx context.Context, id int32, status domain.UserStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET status = $1 WHERE id = $2`, status, id)
	return err
}
