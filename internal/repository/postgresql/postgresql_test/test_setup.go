package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
)

// TestDatabaseSetup holds a connection to a disposable database with the schema applied.
type TestDatabaseSetup struct {
	DB  *database.DB
	Loc *time.Location
}

// NewTestDatabase connects to TEST_DATABASE_URL. It returns nil, nil when the variable is
// unset so callers can skip.
func NewTestDatabase() (*TestDatabaseSetup, error) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		return nil, nil
	}

	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		return nil, err
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{
		MaxConns: 10,
		TimeZone: loc.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	setup := &TestDatabaseSetup{DB: db, Loc: loc}
	if err := setup.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return setup, nil
}

func (t *TestDatabaseSetup) migrate(ctx context.Context) error {
	_, file, _, _ := runtime.Caller(0)
	path := filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "0001_attendance_core.up.sql")

	schema, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema: %w", err)
	}
	if _, err := t.DB.Exec(ctx, string(schema)); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// TruncateAllTables clears every attendance-core table.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"regularizations",
		"attendances",
		"wfh_requests",
		"leave_grants",
		"holidays",
		"offices",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

// CreateEmployee inserts an active employee and returns its id.
func (t *TestDatabaseSetup) CreateEmployee(ctx context.Context, name, department, joiningDate string) (string, error) {
	var id string
	err := t.DB.QueryRow(ctx, `
		INSERT INTO employees (full_name, department, joining_date)
		VALUES ($1, $2, $3::date)
		RETURNING id
	`, name, department, joiningDate).Scan(&id)
	return id, err
}

// Close closes the database connection
func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}
