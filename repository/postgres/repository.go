// Package postgres implements the gatehouse UserRepository on PostgreSQL via pgx.
// Email uniqueness is enforced by a unique constraint; the violation is translated to
// [gatehouse.ErrDuplicateEmail] at this boundary so the core never sees driver errors
// for that case.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gatehouselabs/gatehouse"
)

// querier is the subset of pgxpool.Pool the repository needs. It is satisfied by both
// *pgxpool.Pool and pgxmock pools.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository implements gatehouse.UserRepository using PostgreSQL.
type Repository struct {
	db querier
}

// NewRepository creates a Repository over the given pool.
func NewRepository(db querier) *Repository {
	return &Repository{db: db}
}

// Save inserts user and returns the stored record with database-assigned timestamps.
func (r *Repository) Save(ctx context.Context, user gatehouse.User) (gatehouse.User, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO users (id, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING id, email, password_hash, created_at, updated_at`,
		user.ID, user.Email, user.PasswordHash)

	stored, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return gatehouse.User{}, fmt.Errorf("%w: %s", gatehouse.ErrDuplicateEmail, user.Email)
		}
		return gatehouse.User{}, fmt.Errorf("insert user: %w", err)
	}
	return stored, nil
}

// FindByEmail returns the user registered under email, compared case-sensitively.
func (r *Repository) FindByEmail(ctx context.Context, email string) (gatehouse.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM users
		 WHERE email = $1`,
		email)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return gatehouse.User{}, gatehouse.ErrUserNotFound
	}
	if err != nil {
		return gatehouse.User{}, fmt.Errorf("select user by email: %w", err)
	}
	return user, nil
}

// FindByID returns the user with the given id.
func (r *Repository) FindByID(ctx context.Context, id string) (gatehouse.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, created_at, updated_at
		 FROM users
		 WHERE id = $1`,
		id)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return gatehouse.User{}, gatehouse.ErrUserNotFound
	}
	if err != nil {
		return gatehouse.User{}, fmt.Errorf("select user by id: %w", err)
	}
	return user, nil
}

func scanUser(row pgx.Row) (gatehouse.User, error) {
	var user gatehouse.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt)
	return user, err
}
