package pagetest

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedPostgres rebuilds the users and orders tables from the dataset. Inserts
// ride a single batch round trip.
func SeedPostgres(ctx context.Context, pool *pgxpool.Pool, dataset Dataset) error {
	ddl := []string{
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS users`,
		`CREATE TABLE users (id BIGINT PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE orders (id BIGINT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users (id), name TEXT NOT NULL)`,
		`CREATE INDEX orders_user_id_idx ON orders (user_id)`,
	}
	for _, stmt := range ddl {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("prepare schema: %w", err)
		}
	}

	batch := &pgx.Batch{}
	for _, u := range dataset.Users {
		batch.Queue(`INSERT INTO users (id, name) VALUES ($1, $2)`, u.ID, u.Name)
	}
	for _, o := range dataset.Orders() {
		batch.Queue(`INSERT INTO orders (id, user_id, name) VALUES ($1, $2, $3)`, o.ID, o.UserID, o.Name)
	}

	if err := pool.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("seed rows: %w", err)
	}

	return nil
}
