package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeMigration(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestValidateDir(t *testing.T) {
	valid := "-- +goose Up\nCREATE TABLE t (id int);\n-- +goose Down\nDROP TABLE t;\n"

	t.Run("accepts well-formed migrations", func(t *testing.T) {
		dir := t.TempDir()
		writeMigration(t, dir, "20260115093000_init_schema.sql", valid)
		writeMigration(t, dir, "20260116101500_add_index.sql", valid)
		require.NoError(t, ValidateDir(dir))
	})

	t.Run("rejects bad filename", func(t *testing.T) {
		dir := t.TempDir()
		writeMigration(t, dir, "001_init.sql", valid)
		require.ErrorContains(t, ValidateDir(dir), "invalid migration filename")
	})

	t.Run("rejects duplicate version", func(t *testing.T) {
		dir := t.TempDir()
		writeMigration(t, dir, "20260115093000_one.sql", valid)
		writeMigration(t, dir, "20260115093000_two.sql", valid)
		require.ErrorContains(t, ValidateDir(dir), "duplicate migration version")
	})

	t.Run("rejects missing goose headers", func(t *testing.T) {
		dir := t.TempDir()
		writeMigration(t, dir, "20260115093000_init.sql", "CREATE TABLE t (id int);")
		require.ErrorContains(t, ValidateDir(dir), "+goose Up")
	})
}

func TestValidateShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}
