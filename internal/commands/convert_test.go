package commands

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/izvod-dev/izvod/internal/config"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCollectDocumentsFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "izvod_23.pdf", "a")
	b := writeFile(t, dir, "izvod_24.txt", "b")

	docs, err := collectDocuments([]string{a, b})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "izvod_23.pdf", docs[0].Name)
	assert.Equal(t, []byte("b"), docs[1].Data)
}

func TestCollectDocumentsScansDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "izvod_23.PDF", "a")
	writeFile(t, dir, "izvod_24.txt", "b")
	writeFile(t, dir, "beleske.md", "ignored")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	writeFile(t, filepath.Join(dir, "nested"), "izvod_25.pdf", "not scanned")

	docs, err := collectDocuments([]string{dir})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	names := []string{docs[0].Name, docs[1].Name}
	assert.Contains(t, names, "izvod_23.PDF")
	assert.Contains(t, names, "izvod_24.txt")
}

func TestCollectDocumentsMissingPath(t *testing.T) {
	_, err := collectDocuments([]string{filepath.Join(t.TempDir(), "nema.pdf")})
	require.Error(t, err)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, config.Save(path, config.Default("MG AUTO")))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "MG AUTO", cfg.Owner.Name)

	_, err = loadConfig(filepath.Join(dir, "nema.yaml"))
	require.Error(t, err)
}

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "BEX", cfg.Courier.Tag)
	assert.NotEmpty(t, cfg.Rules.Cascade)
}

func TestConvertCommandRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "izvod_23.txt", "tekst")

	cmd := NewRootCommand()
	cmd.SetArgs([]string{"convert", "--format", "csv", filepath.Join(dir, "izvod_23.txt")})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
