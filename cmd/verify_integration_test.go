//go:build integration

package cmd

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pgschema/pgdumpsort/cmd/util"
	"github.com/pgschema/pgdumpsort/internal/loader"
)

func startPostgres(ctx context.Context, t *testing.T) (dsn string, terminate func()) {
	t.Helper()

	container, err := postgres.Run(ctx,
		"postgres:17",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}

	connDSN, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("getting connection string: %v", err)
	}

	return connDSN, func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminating container: %v", err)
		}
	}
}

// TestVerifyResolvesRealOIDs exercises the verify subcommand end to
// end: it loads a graph snapshot naming a real pg_catalog OID (the
// public schema's pg_namespace row) and confirms verifyDSN reports it
// resolved, then confirms a made-up OID is reported missing.
func TestVerifyResolvesRealOIDs(t *testing.T) {
	ctx := context.Background()
	dsn, terminate := startPostgres(ctx, t)
	defer terminate()

	config, err := connectionConfigFromDSN(dsn)
	if err != nil {
		t.Fatalf("connectionConfigFromDSN: %v", err)
	}
	conn, err := util.Connect(ctx, config)
	if err != nil {
		t.Fatalf("connecting: %v", err)
	}
	defer conn.Close()

	var nsOID uint32
	if err := conn.QueryRowContext(ctx, `SELECT oid FROM pg_catalog.pg_namespace WHERE nspname = 'public'`).Scan(&nsOID); err != nil {
		t.Fatalf("looking up public namespace oid: %v", err)
	}

	doc := fmt.Sprintf(`{"objects": [{"dump_id": 1, "kind": "SCHEMA", "name": "public", "oid": %d}]}`, nsOID)
	objs, _, _, _, err := loader.Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("loader.Load: %v", err)
	}
	if len(objs) != 1 {
		t.Fatalf("expected 1 object, got %d", len(objs))
	}

	if err := verifyDSN(ctx, dsn, []uint32{nsOID}); err != nil {
		t.Fatalf("verifyDSN should resolve the real namespace oid, got: %v", err)
	}

	if err := verifyDSN(ctx, dsn, []uint32{999999999}); err == nil {
		t.Fatalf("verifyDSN should report a made-up oid as missing")
	}
}
