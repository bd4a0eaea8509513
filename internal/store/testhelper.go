package store

import (
	"fmt"
	"os"
	"testing"

	"statsync-server/internal/observability"

	"github.com/jmoiron/sqlx"
)

// TestDB wraps a test database instance
type TestDB struct {
	db     *sqlx.DB
	logger *observability.Logger
	Store  Store
}

// SetupTestDB connects to the PostgreSQL instance described by the TEST_DB_*
// environment variables. Tests are skipped when no database is reachable so
// the suite stays runnable without infrastructure.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbHost := os.Getenv("TEST_DB_HOST")
	dbPort := os.Getenv("TEST_DB_PORT")
	dbUser := os.Getenv("TEST_DB_USER")
	dbPass := os.Getenv("TEST_DB_PASSWORD")
	dbName := os.Getenv("TEST_DB_NAME")

	// Defaults match docker-compose.services.yml
	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "statsync_user"
	}
	if dbPass == "" {
		dbPass = "statsync_password"
	}
	if dbName == "" {
		dbName = "statsync_db"
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	db, err := sqlx.Open("pgx", connStr)
	if err != nil {
		t.Skipf("skipping: failed to open test database: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: test database not reachable: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	// Migrations are handled by Flyway in docker-compose.services.yml

	logger := observability.NewLogger()
	return &TestDB{
		db:     db,
		logger: logger,
		Store:  Store{db: db, logger: logger},
	}
}
