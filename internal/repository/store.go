package repository

import (
	"context"

	"GameMarketAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CatalogStore is the persistence boundary for products and their ratings.
// Get methods return (nil, nil) when the row does not exist or is soft
// deleted; callers decide which error kind that becomes.
type CatalogStore interface {
	GetProduct(ctx context.Context, id int64) (*model.Product, error)
	// GetProductForUpdate locks the product row for the rest of the
	// transaction, serializing writers of the same product.
	// includeDeleted also matches soft-deleted rows.
	GetProductForUpdate(ctx context.Context, id int64, includeDeleted bool) (*model.Product, error)
	CreateProduct(ctx context.Context, p *model.Product) (int64, error)
	SaveProduct(ctx context.Context, p *model.Product) error
	GetRatings(ctx context.Context, productID int64) ([]model.ProductRating, error)
	InsertRating(ctx context.Context, r *model.ProductRating) error
	DeleteRating(ctx context.Context, id uuid.UUID) error
	QueryProducts(ctx context.Context, q model.ProductQuery) ([]model.Product, int, error)
	SearchProducts(ctx context.Context, term string, limit, offset int) ([]model.Product, error)
	TopPlatforms(ctx context.Context, limit int) ([]model.TopPlatform, error)

	// InTx runs fn against a store bound to a single transaction. The
	// transaction commits only if fn returns nil.
	InTx(ctx context.Context, fn func(CatalogStore) error) error
}

// OrderStore is the persistence boundary for orders and their items.
type OrderStore interface {
	GetOrder(ctx context.Context, id int64) (*model.Order, error)
	// GetOrderForUpdate locks the order row for the rest of the
	// transaction. Every mutating path reads through this so the IsPaid
	// check and the write that follows see the same committed row.
	GetOrderForUpdate(ctx context.Context, id int64) (*model.Order, error)
	SaveOrder(ctx context.Context, o *model.Order) error
	DeleteOrder(ctx context.Context, o *model.Order) error
	ListOrdersForUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	InTx(ctx context.Context, fn func(OrderStore) error) error
}

// pgdb is the subset of pgx both *pgxpool.Pool and pgx.Tx satisfy, so a
// repository works the same inside and outside a transaction.
type pgdb interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}
