package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           uuid PRIMARY KEY,
		email        text NOT NULL UNIQUE,
		passwordhash text NOT NULL,
		role         text NOT NULL DEFAULT 'user',
		created_at   timestamptz NOT NULL DEFAULT now(),
		deleted_at   timestamptz
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          bigserial PRIMARY KEY,
		name        text NOT NULL,
		genre       text NOT NULL DEFAULT '',
		platform    int NOT NULL,
		rating      int NOT NULL,
		price       double precision NOT NULL CHECK (price >= 0),
		totalrating double precision NOT NULL DEFAULT 0,
		is_deleted  boolean NOT NULL DEFAULT false,
		created_at  timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS product_ratings (
		id        uuid PRIMARY KEY,
		productid bigint NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		userid    uuid NOT NULL REFERENCES users(id),
		rating    int NOT NULL CHECK (rating BETWEEN 1 AND 10),
		UNIQUE (productid, userid)
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id           bigserial PRIMARY KEY,
		userid       uuid NOT NULL REFERENCES users(id),
		creationdate timestamptz NOT NULL DEFAULT now(),
		ispaid       boolean NOT NULL DEFAULT false,
		status       text NOT NULL DEFAULT 'Pending'
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		orderid   bigint NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
		productid bigint NOT NULL REFERENCES products(id),
		quantity  int NOT NULL CHECK (quantity > 0),
		price     double precision NOT NULL,
		PRIMARY KEY (orderid, productid)
	)`,
}

// Migrate applies the schema. Statements are idempotent, the process entry
// point runs this on every start.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Seed inserts an initial catalog when the products table is empty.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		name     string
		genre    string
		platform int
		rating   int
		price    float64
	}{
		{"Starfall Tactics", "Strategy", 1, 2, 39.99},
		{"Neon Drift", "Racing", 1, 1, 19.99},
		{"Crypt of Echoes", "Horror", 3, 4, 24.99},
		{"Meadow Keeper", "Simulation", 2, 1, 14.99},
		{"Iron Vanguard", "Shooter", 1, 3, 59.99},
		{"Pocket Alchemist", "Puzzle", 4, 1, 4.99},
	}
	for _, p := range seed {
		_, err := pool.Exec(ctx,
			`INSERT INTO products (name, genre, platform, rating, price) VALUES ($1, $2, $3, $4, $5)`,
			p.name, p.genre, p.platform, p.rating, p.price)
		if err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}
