package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iamfelixjp/jobbers-app/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint violations.
const pgUniqueViolation = "23505"

// UserStore persists user accounts. The service layer depends on this
// interface so it can be exercised in tests without a database.
type UserStore interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) (*User, error)
}

// PgxUserStore is the PostgreSQL implementation of UserStore.
type PgxUserStore struct {
	db *pgxpool.Pool
}

// NewPgxUserStore creates a new PgxUserStore.
func NewPgxUserStore(db *pgxpool.Pool) *PgxUserStore {
	return &PgxUserStore{db: db}
}

var _ UserStore = (*PgxUserStore)(nil)

// Create inserts a new account. IDs are generated application-side so the
// caller gets an opaque string identifier back. Email uniqueness is enforced
// by the database constraint.
func (s *PgxUserStore) Create(ctx context.Context, user *User) (*User, error) {
	user.ID = uuid.NewString()
	query := `INSERT INTO users (id, name, last_name, email, password, location)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING created_at, updated_at`
	err := s.db.QueryRow(ctx, query,
		user.ID, user.Name, user.LastName, user.Email, user.HashedPassword, user.Location,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isEmailConflict(err) {
			return nil, apperror.NewConflictError("email already in use", nil)
		}
		return nil, apperror.NewDatabaseError("failed to create user", err)
	}
	return user, nil
}

// GetByEmail looks up an account by email address.
func (s *PgxUserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, name, last_name, email, password, location, created_at, updated_at
	          FROM users WHERE email = $1`
	var user User
	err := s.db.QueryRow(ctx, query, strings.ToLower(email)).Scan(
		&user.ID, &user.Name, &user.LastName, &user.Email,
		&user.HashedPassword, &user.Location, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with email '%s' not found", email), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by email", err)
	}
	return &user, nil
}

// GetByID looks up an account by id.
func (s *PgxUserStore) GetByID(ctx context.Context, id string) (*User, error) {
	query := `SELECT id, name, last_name, email, password, location, created_at, updated_at
	          FROM users WHERE id = $1`
	var user User
	err := s.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Name, &user.LastName, &user.Email,
		&user.HashedPassword, &user.Location, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id '%s' not found", id), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get user by id", err)
	}
	return &user, nil
}

// Update overwrites the mutable profile fields of an account.
func (s *PgxUserStore) Update(ctx context.Context, user *User) (*User, error) {
	query := `UPDATE users
	          SET name = $2, last_name = $3, email = $4, location = $5, updated_at = now()
	          WHERE id = $1
	          RETURNING updated_at`
	err := s.db.QueryRow(ctx, query,
		user.ID, user.Name, user.LastName, user.Email, user.Location,
	).Scan(&user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("user with id '%s' not found", user.ID), nil)
		}
		if isEmailConflict(err) {
			return nil, apperror.NewConflictError("email already in use", nil)
		}
		return nil, apperror.NewDatabaseError("failed to update user", err)
	}
	return user, nil
}

// isEmailConflict reports whether err is a unique violation on the email column.
func isEmailConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgUniqueViolation &&
		strings.Contains(pgErr.ConstraintName, "email")
}
