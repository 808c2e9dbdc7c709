package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatehouselabs/gatehouse"
)

func userRows(now time.Time) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
		AddRow("u-1", "a@x.com", "$argon2id$hash", now, now)
}

func TestSave(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("u-1", "a@x.com", "$argon2id$hash").
					WillReturnRows(userRows(now))
			},
		},
		{
			name: "duplicate email translated",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("u-1", "a@x.com", "$argon2id$hash").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_email_unique"})
			},
			wantErr: gatehouse.ErrDuplicateEmail,
		},
		{
			name: "infrastructure error passes through",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("u-1", "a@x.com", "$argon2id$hash").
					WillReturnError(errors.New("connection refused"))
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewRepository(mock)
			stored, err := repo.Save(context.Background(), gatehouse.User{
				ID:           "u-1",
				Email:        "a@x.com",
				PasswordHash: "$argon2id$hash",
			})

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
				assert.Equal(t, "u-1", stored.ID)
				assert.False(t, stored.CreatedAt.IsZero())
			case errors.Is(tt.wantErr, gatehouse.ErrDuplicateEmail):
				require.ErrorIs(t, err, gatehouse.ErrDuplicateEmail)
			default:
				require.Error(t, err)
				assert.NotErrorIs(t, err, gatehouse.ErrDuplicateEmail)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFindByEmail(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, created_at, updated_at`).
			WithArgs("a@x.com").
			WillReturnRows(userRows(now))

		repo := NewRepository(mock)
		user, err := repo.FindByEmail(context.Background(), "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.Equal(t, "a@x.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent maps to ErrUserNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, created_at, updated_at`).
			WithArgs("nobody@x.com").
			WillReturnError(pgx.ErrNoRows)

		repo := NewRepository(mock)
		_, err = repo.FindByEmail(context.Background(), "nobody@x.com")
		require.ErrorIs(t, err, gatehouse.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindByID(t *testing.T) {
	now := time.Now()

	t.Run("found", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, created_at, updated_at`).
			WithArgs("u-1").
			WillReturnRows(userRows(now))

		repo := NewRepository(mock)
		user, err := repo.FindByID(context.Background(), "u-1")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", user.Email)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent maps to ErrUserNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, email, password_hash, created_at, updated_at`).
			WithArgs("missing").
			WillReturnError(pgx.ErrNoRows)

		repo := NewRepository(mock)
		_, err = repo.FindByID(context.Background(), "missing")
		require.ErrorIs(t, err, gatehouse.ErrUserNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
