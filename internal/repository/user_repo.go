package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/ivandex16/teslo-shop-curso-nest/internal/model"

	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	DB DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `id, email, full_name, is_active, roles, created_at`

func (r *UserRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.DB.Begin(ctx)
}

// CreateUser inserts u and fills in its id, active flag, roles and created_at.
// The email is normalized here so no write path can skip it.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	return r.createUser(ctx, r.DB, u)
}

// CreateUserTx is CreateUser inside the caller's transaction.
func (r *UserRepository) CreateUserTx(ctx context.Context, tx pgx.Tx, u *model.User) error {
	return r.createUser(ctx, tx, u)
}

func (r *UserRepository) createUser(ctx context.Context, q DB, u *model.User) error {
	u.Email = model.NormalizeEmail(u.Email)
	if len(u.Roles) == 0 {
		u.Roles = []string{model.RoleUser}
	}
	query := `INSERT INTO users (email, password, full_name, roles)
		VALUES ($1, $2, $3, $4)
		RETURNING id, is_active, created_at`
	if err := q.QueryRow(ctx, query, u.Email, u.PasswordHash, u.FullName, u.Roles).
		Scan(&u.ID, &u.IsActive, &u.CreatedAt); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail is the only read that returns the password hash.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT ` + userColumns + `, password FROM users WHERE email=$1`
	err := r.DB.QueryRow(ctx, query, model.NormalizeEmail(email)).
		Scan(&u.ID, &u.Email, &u.FullName, &u.IsActive, &u.Roles, &u.CreatedAt, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	err := r.DB.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.FullName, &u.IsActive, &u.Roles, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// DeleteAllTx wipes the users table. Only the seed uses it.
func (r *UserRepository) DeleteAllTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `DELETE FROM users`); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}
