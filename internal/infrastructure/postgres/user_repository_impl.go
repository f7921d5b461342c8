package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	"github.com/oksasatya/user-management-api/internal/domain/repository"
)

const uniqueViolation = "23505"

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Age, &u.Role,
		&u.IsActive, &u.LastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, age, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`, u.Name, u.Email, u.PasswordHash, u.Age, u.Role, u.IsActive)

	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+selectUserCols+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+selectUserCols+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, age = $3, is_active = $4, updated_at = $5
		WHERE id = $6
	`, u.Name, u.Email, u.Age, u.IsActive, u.UpdatedAt, u.ID)
	if err != nil {
		return mapPgError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdatePassword(id, hash string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET password_hash = $1, updated_at = now()
		WHERE id = $2
	`, hash, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetLastLogin(id string, t time.Time) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		UPDATE users
		SET last_login = $1
		WHERE id = $2
	`, t, id)
	return err
}

func (r *UserRepository) Deactivate(id string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		UPDATE users
		SET is_active = FALSE, updated_at = now()
		WHERE id = $1
		RETURNING `+selectUserCols+`
	`, id))
}

func (r *UserRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(q repository.ListQuery) ([]*entity.User, int64, error) {
	ctx := context.Background()

	sql, args, err := buildListSQL(q)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]*entity.User, 0, q.Limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	countSQL, countArgs, err := buildCountSQL(q)
	if err != nil {
		return nil, 0, err
	}
	var total int64
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
