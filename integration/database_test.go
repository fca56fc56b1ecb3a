//go:build database

package integration

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestCeaplensWithMySQL exercises facet persistence against a MySQL backend.
func TestCeaplensWithMySQL(t *testing.T) {
	ctx := context.Background()

	// Start MySQL container
	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306:3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "ceaplens",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(30 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = mysqlC.Terminate(ctx) }()

	// Get connection details
	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	connStr := fmt.Sprintf("root:secret123@tcp(%s:%s)/ceaplens?parseTime=true", host, port.Port())
	runBackendScenario(t, "mysql", connStr)
}

// TestCeaplensWithPostgres exercises facet persistence against a PostgreSQL backend.
func TestCeaplensWithPostgres(t *testing.T) {
	ctx := context.Background()

	// Start Postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432:5432/tcp"},
		Env: map[string]string{
			"POSTGRES_HOST_AUTH_METHOD": "trust",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithStartupTimeout(30 * time.Second),
	}
	pgC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	defer func() { _ = pgC.Terminate(ctx) }()
	time.Sleep(5 * time.Second)

	// Get connection details
	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connStr := fmt.Sprintf("host=%s port=%s user=postgres dbname=postgres", host, port.Port())
	runBackendScenario(t, "postgresql", connStr)
}

// runBackendScenario walks one backend through the full facet lifecycle plus
// the three analysis commands against the fixture dataset.
func runBackendScenario(t *testing.T, backend, connStr string) {
	_ = os.Setenv("CEAPLENS_STORE_BACKEND", backend)
	_ = os.Setenv("CEAPLENS_STORE_CONNECT", connStr)
	defer func() { _ = os.Unsetenv("CEAPLENS_STORE_BACKEND") }()
	defer func() { _ = os.Unsetenv("CEAPLENS_STORE_CONNECT") }()

	dataDir := writeFixtureData(t)

	// Clear any stale selections, then persist a working set
	err := runCeaplensCommand(t, "facets", "clear")
	require.NoError(t, err)

	err = runCeaplensCommand(t, "facets", "set", "--uf", "SP", "--year", "2023", "--data", dataDir)
	require.NoError(t, err)

	err = runCeaplensCommand(t, "facets", "show", "--data", dataDir)
	require.NoError(t, err)

	// Run the analysis commands against the persisted selections
	err = runCeaplensCommand(t, "deputies", "--limit", "5", "--data", dataDir)
	require.NoError(t, err)

	err = runCeaplensCommand(t, "summary", "--data", dataDir)
	require.NoError(t, err)

	err = runCeaplensCommand(t, "timeline", "--data", dataDir)
	require.NoError(t, err)

	err = runCeaplensCommand(t, "facets", "clear")
	require.NoError(t, err)
}

// runCeaplensCommand runs the ceaplens binary with given args.
func runCeaplensCommand(t *testing.T, args ...string) error {
	binaryPath := getCeaplensBinary()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = "../" // Run from project root
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
		return err
	}
	return nil
}
