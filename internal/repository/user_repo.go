package repository

import (
	"context"
	"errors"
	"time"

	"GameMarketAPI/internal/apperr"
	"GameMarketAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	DB pgdb
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// CreateUser inserts a new user and returns the generated id.
func (r *UserRepository) CreateUser(ctx context.Context, email, passwordHash, role string) (uuid.UUID, error) {
	id := uuid.New()
	query := `INSERT INTO users (id, email, passwordhash, role, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.DB.Exec(ctx, query, id, email, passwordHash, role, time.Now()); err != nil {
		return uuid.Nil, storeErr("create user", err)
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, passwordhash, role, created_at, deleted_at FROM users WHERE email=$1`
	err := r.DB.QueryRow(ctx, query, email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "User was not found.")
	}
	if err != nil {
		return nil, storeErr("get user", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, passwordhash, role, created_at, deleted_at FROM users WHERE id=$1`
	err := r.DB.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.DeletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.New(apperr.NotFound, "User was not found.")
	}
	if err != nil {
		return nil, storeErr("get user", err)
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, storeErr("email exists", err)
	}
	return exists, nil
}
