package pagetest

import (
	"context"
	"database/sql"
	"fmt"
)

// SeedSQLite rebuilds the users and orders tables from the dataset over a
// plain database/sql handle. The same file can then be opened through gorm or
// queried directly.
func SeedSQLite(ctx context.Context, db *sql.DB, dataset Dataset) error {
	ddl := []string{
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS users`,
		`CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL)`,
		`CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER NOT NULL, name TEXT NOT NULL)`,
		`CREATE INDEX orders_user_id_idx ON orders (user_id)`,
	}
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("prepare schema: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, u := range dataset.Users {
		if _, err := tx.ExecContext(ctx, `INSERT INTO users (id, name) VALUES (?, ?)`, u.ID, u.Name); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	for _, o := range dataset.Orders() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO orders (id, user_id, name) VALUES (?, ?, ?)`, o.ID, o.UserID, o.Name); err != nil {
			return fmt.Errorf("seed orders: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed transaction: %w", err)
	}

	return nil
}
