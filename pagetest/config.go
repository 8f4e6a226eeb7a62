package pagetest

import (
	"testing"

	"github.com/spf13/viper"
)

// Config points the integration tests at real stores. Every field is
// optional: an empty value skips the tests that need it.
type Config struct {
	PostgresDSN       string
	MongoURI          string
	MongoDatabase     string
	CassandraHost     string
	CassandraKeyspace string
}

// LoadConfig reads the store endpoints from PAGEKIT_* environment variables.
func LoadConfig() Config {
	v := viper.New()
	v.SetEnvPrefix("pagekit")
	v.AutomaticEnv()

	v.SetDefault("postgres_dsn", "")
	v.SetDefault("mongo_uri", "")
	v.SetDefault("mongo_database", "pagekit_test")
	v.SetDefault("cassandra_host", "")
	v.SetDefault("cassandra_keyspace", "pagekit_test")

	return Config{
		PostgresDSN:       v.GetString("postgres_dsn"),
		MongoURI:          v.GetString("mongo_uri"),
		MongoDatabase:     v.GetString("mongo_database"),
		CassandraHost:     v.GetString("cassandra_host"),
		CassandraKeyspace: v.GetString("cassandra_keyspace"),
	}
}

// RequirePostgres returns the postgres DSN or skips the test.
func (c Config) RequirePostgres(tb testing.TB) string {
	tb.Helper()
	if c.PostgresDSN == "" {
		tb.Skip("PAGEKIT_POSTGRES_DSN not set")
	}

	return c.PostgresDSN
}

// RequireMongo returns the mongo URI or skips the test.
func (c Config) RequireMongo(tb testing.TB) string {
	tb.Helper()
	if c.MongoURI == "" {
		tb.Skip("PAGEKIT_MONGO_URI not set")
	}

	return c.MongoURI
}

// RequireCassandra returns the cassandra host or skips the test.
func (c Config) RequireCassandra(tb testing.TB) string {
	tb.Helper()
	if c.CassandraHost == "" {
		tb.Skip("PAGEKIT_CASSANDRA_HOST not set")
	}

	return c.CassandraHost
}
