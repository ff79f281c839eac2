package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/catchr/internal/config"
	"github.com/chriserin/catchr/internal/db"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(orig) })
	return dir
}

func runInit(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunInit(&buf))
	return buf.String()
}

func TestInit_CreatesWorkDirectory(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	info, err := os.Stat(filepath.Join(dir, ".catchr"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Contains(t, out, ".catchr/ created")
}

func TestInit_WorkDirectoryAlreadyExists(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".catchr"), 0o755))

	out := runInit(t)
	assert.Contains(t, out, ".catchr/ already exists")
}

func TestInit_InitializesSQLiteDatabase(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	path := filepath.Join(dir, ".catchr", "catchr.db")
	_, err := os.Stat(path)
	require.NoError(t, err)

	sqlDB, err := db.Open(path)
	require.NoError(t, err)
	defer sqlDB.Close()

	var mode string
	require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
	assert.Contains(t, out, ".catchr/catchr.db created")
}

func TestInit_DatabaseAlreadyExists(t *testing.T) {
	inTempDir(t)
	runInit(t)

	out := runInit(t)
	assert.Contains(t, out, ".catchr/catchr.db already exists")
	assert.Contains(t, out, ".catchr.yaml already exists")
}

func TestInit_AppliesMigrations(t *testing.T) {
	inTempDir(t)
	runInit(t)

	sqlDB, err := db.Open(".catchr/catchr.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	var version int
	require.NoError(t, sqlDB.QueryRow("SELECT version FROM schema_version").Scan(&version))
	assert.Equal(t, len(db.All), version)
}

func TestInit_WritesDefaultConfig(t *testing.T) {
	inTempDir(t)
	out := runInit(t)

	cfg, err := config.Load(config.FileName)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Contains(t, out, ".catchr.yaml created")
}

func TestInit_KeepsExistingConfig(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile(config.FileName, []byte("layout: subtests\n"), 0o644))

	runInit(t)

	data, err := os.ReadFile(config.FileName)
	require.NoError(t, err)
	assert.Equal(t, "layout: subtests\n", string(data))
}

func TestInit_AddsToGitignore(t *testing.T) {
	dir := inTempDir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("node_modules"), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, "node_modules\n.catchr/catchr.db*\n", string(data))
	assert.Contains(t, out, ".catchr/catchr.db* added to .gitignore")
}

func TestInit_GitignoreAlreadyHasEntry(t *testing.T) {
	dir := inTempDir(t)
	original := "node_modules\n.catchr/catchr.db*\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(original), 0o644))

	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
	assert.Contains(t, out, ".catchr/catchr.db* already in .gitignore")
}

func TestInit_NoGitignoreExists(t *testing.T) {
	dir := inTempDir(t)
	out := runInit(t)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	assert.Equal(t, ".catchr/catchr.db*\n", string(data))
	assert.Contains(t, out, ".gitignore created")
}
