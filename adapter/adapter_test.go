package adapter

import (
	"context"
	"testing"
	"time"

	"github.com/sqlspec-go/sqlspec/param"
)

// TestAdapter_Interface ensures all adapters implement the Adapter interface.
func TestAdapter_Interface(t *testing.T) {
	var _ Adapter = (*SQLiteAdapter)(nil)
	var _ Adapter = (*PostgresAdapter)(nil)
	var _ Adapter = (*MySQLAdapter)(nil)
}

// TestConfig_Defaults tests default configuration.
func TestConfig_Defaults(t *testing.T) {
	config := DefaultConfig()

	if config.Host != "localhost" {
		t.Errorf("Expected host 'localhost', got '%s'", config.Host)
	}
	if config.Port != 5432 {
		t.Errorf("Expected port 5432, got %d", config.Port)
	}
	if config.MaxOpenConns != 25 {
		t.Errorf("Expected MaxOpenConns 25, got %d", config.MaxOpenConns)
	}
	if config.ConnMaxLifetime != 5*time.Minute {
		t.Errorf("Expected ConnMaxLifetime 5m, got %v", config.ConnMaxLifetime)
	}
}

// TestSQLiteAdapter_Stub exercises the no-CGO build path: Open and the
// firewall-contract methods all fail closed with ErrSQLiteNotAvailable
// rather than silently accepting a connection that was never made.
func TestSQLiteAdapter_Stub(t *testing.T) {
	ctx := context.Background()
	a := NewSQLiteMemory()

	if err := a.Open(ctx); err != ErrSQLiteNotAvailable {
		t.Fatalf("expected ErrSQLiteNotAvailable, got %v", err)
	}
	if a.DialectName() != "sqlite" {
		t.Errorf("expected dialect 'sqlite', got '%s'", a.DialectName())
	}
	if _, err := a.ExecuteCompiled(ctx, "INSERT INTO t VALUES (?)", param.ExecParams{Positional: []interface{}{1}}); err != ErrSQLiteNotAvailable {
		t.Errorf("expected ExecuteCompiled to fail closed, got %v", err)
	}
	if _, err := a.QueryCompiled(ctx, "SELECT * FROM t", param.ExecParams{}); err != ErrSQLiteNotAvailable {
		t.Errorf("expected QueryCompiled to fail closed, got %v", err)
	}
}

// TestPostgresAdapter_Stub mirrors TestSQLiteAdapter_Stub for the
// no-build-tag PostgreSQL path.
func TestPostgresAdapter_Stub(t *testing.T) {
	ctx := context.Background()
	a := NewPostgresAdapter(Config{Host: "localhost", Database: "sqlspec_test"})

	if err := a.Open(ctx); err != ErrPostgresNotAvailable {
		t.Fatalf("expected ErrPostgresNotAvailable, got %v", err)
	}
	if a.DialectName() != "postgres" {
		t.Errorf("expected dialect 'postgres', got '%s'", a.DialectName())
	}
	if _, err := a.ExecuteCompiled(ctx, "UPDATE t SET x = $1", param.ExecParams{Positional: []interface{}{1}}); err != ErrPostgresNotAvailable {
		t.Errorf("expected ExecuteCompiled to fail closed, got %v", err)
	}
}

// TestMySQLAdapter_Stub mirrors TestSQLiteAdapter_Stub for the
// no-build-tag MySQL path.
func TestMySQLAdapter_Stub(t *testing.T) {
	ctx := context.Background()
	a := NewMySQLAdapter(Config{Host: "localhost", Database: "sqlspec_test"})

	if err := a.Open(ctx); err != ErrMySQLNotAvailable {
		t.Fatalf("expected ErrMySQLNotAvailable, got %v", err)
	}
	if a.DialectName() != "mysql" {
		t.Errorf("expected dialect 'mysql', got '%s'", a.DialectName())
	}
	if _, err := a.QueryCompiled(ctx, "SELECT * FROM t WHERE id = ?", param.ExecParams{Positional: []interface{}{1}}); err != ErrMySQLNotAvailable {
		t.Errorf("expected QueryCompiled to fail closed, got %v", err)
	}
}

// TestExecArgs_Positional verifies execArgs passes positional values
// through untouched, the shape ExecuteCompiled hands to database/sql.
func TestExecArgs_Positional(t *testing.T) {
	args, err := execArgs(param.ExecParams{Positional: []interface{}{1, "x"}})
	if err != nil {
		t.Fatalf("execArgs: %v", err)
	}
	if len(args) != 2 || args[0] != 1 || args[1] != "x" {
		t.Errorf("expected positional args to pass through unchanged, got %+v", args)
	}
}

// TestExecArgs_Named verifies execArgs wraps named values as sql.Named,
// the shape database/sql expects for driver-level named parameters.
func TestExecArgs_Named(t *testing.T) {
	args, err := execArgs(param.ExecParams{Named: map[string]interface{}{"id": 7}})
	if err != nil {
		t.Fatalf("execArgs: %v", err)
	}
	if len(args) != 1 {
		t.Fatalf("expected 1 named arg, got %d", len(args))
	}
}

// TestExecArgs_RejectsBatch verifies a batch ExecParams is rejected by
// execArgs: batched executemany must go through ExecuteCompiledBatch,
// never ExecuteCompiled/QueryCompiled.
func TestExecArgs_RejectsBatch(t *testing.T) {
	batch := param.ExecParams{Batch: []param.ExecParams{{Positional: []interface{}{1}}}}
	if _, err := execArgs(batch); err == nil {
		t.Fatal("expected execArgs to reject a batch ExecParams")
	}
}
