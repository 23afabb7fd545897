package db_test

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	dbpkg "github.com/garnizeh/jobly/internal/db"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	// verify no goroutine leaks across tests in this package
	defer goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("database/sql.(*DB).connectionOpener"))
	os.Exit(m.Run())
}

func memDSN(t *testing.T) string {
	t.Helper()
	return "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
}

func TestNew_Close_GetConn(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	d, err := dbpkg.New(ctx, dbpkg.Options{Driver: dbpkg.DriverSQLite, DSN: memDSN(t)}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if d.GetConn() == nil {
		t.Fatalf("expected non-nil sql.DB from GetConn")
	}
	if d.Driver() != dbpkg.DriverSQLite {
		t.Fatalf("unexpected driver %q", d.Driver())
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
}

func TestExec_QueryRow_QueryRows(t *testing.T) {
	ctx := context.Background()
	d, err := dbpkg.New(ctx, dbpkg.Options{DSN: memDSN(t)}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer d.Close()

	if _, err := d.Exec(ctx, `CREATE TABLE items (id INTEGER PRIMARY KEY AUTOINCREMENT, name TEXT)`); err != nil {
		t.Fatalf("Exec create table returned error: %v", err)
	}

	for _, name := range []string{"foo", "bar"} {
		if _, err := d.Exec(ctx, `INSERT INTO items (name) VALUES ($1)`, name); err != nil {
			t.Fatalf("Exec insert returned error: %v", err)
		}
	}

	var name string
	if err := d.QueryRow(ctx, `SELECT name FROM items WHERE id = $1`, 1).Scan(&name); err != nil {
		t.Fatalf("QueryRow scan returned error: %v", err)
	}
	if name != "foo" {
		t.Fatalf("expected name 'foo' got %q", name)
	}

	rows, err := d.QueryRows(ctx, `SELECT name FROM items ORDER BY name`)
	if err != nil {
		t.Fatalf("QueryRows returned error: %v", err)
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			t.Fatalf("scan: %v", err)
		}
		names = append(names, n)
	}
	if strings.Join(names, ",") != "bar,foo" {
		t.Fatalf("unexpected rows %v", names)
	}
}

func TestNew_ForeignKeysEnabled(t *testing.T) {
	ctx := context.Background()
	d, err := dbpkg.New(ctx, dbpkg.Options{DSN: memDSN(t)}, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	defer d.Close()

	var on int
	if err := d.QueryRow(ctx, `PRAGMA foreign_keys`).Scan(&on); err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if on != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", on)
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	if _, err := dbpkg.New(context.Background(), dbpkg.Options{Driver: "mysql", DSN: "x"}, nil); err == nil {
		t.Fatalf("expected error for unsupported driver, got nil")
	}
}

func TestNew_PostgresUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := dbpkg.New(ctx, dbpkg.Options{
		Driver:          dbpkg.DriverPostgres,
		DSN:             "postgres://jobly@127.0.0.1:1/jobly?sslmode=disable&connect_timeout=1",
		ConnectAttempts: 2,
		ConnectDelay:    10 * time.Millisecond,
	}, nil)
	if err == nil {
		t.Fatalf("expected ping error for unreachable postgres, got nil")
	}
}
