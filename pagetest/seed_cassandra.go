package pagetest

import (
	"context"
	"fmt"

	"github.com/gocql/gocql"
)

// SeedCassandra rebuilds the users_by_bucket table from the dataset.
// Cassandra selects need a partition key, so the fixture keeps every user in
// bucket 0: one SELECT then pages through all of them in clustering order.
// The session must not be bound to a keyspace; statements qualify their own.
func SeedCassandra(ctx context.Context, session *gocql.Session, keyspace string, dataset Dataset) error {
	ddl := []string{
		fmt.Sprintf(
			`CREATE KEYSPACE IF NOT EXISTS %s WITH replication = {'class': 'SimpleStrategy', 'replication_factor': 1}`,
			keyspace,
		),
		fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s.users_by_bucket (bucket int, id int, name text, PRIMARY KEY (bucket, id))`,
			keyspace,
		),
		fmt.Sprintf(`TRUNCATE %s.users_by_bucket`, keyspace),
	}
	for _, stmt := range ddl {
		if err := session.Query(stmt).WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("prepare schema: %w", err)
		}
	}

	insert := fmt.Sprintf(`INSERT INTO %s.users_by_bucket (bucket, id, name) VALUES (0, ?, ?)`, keyspace)
	for _, u := range dataset.Users {
		if err := session.Query(insert, u.ID, u.Name).WithContext(ctx).Exec(); err != nil {
			return fmt.Errorf("seed rows: %w", err)
		}
	}

	return nil
}
