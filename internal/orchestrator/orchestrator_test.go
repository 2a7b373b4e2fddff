package orchestrator

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dateprefix/internal/audit"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
}

func listNames(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}

func TestRunRenamesBatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"report_2024-03-15.pdf",
		"IMG_20240102.jpg",
		"03152024_scan.png",
		"7Mar2025-notes.txt",
		"notes.txt",
	)

	summary, err := Run(Options{Directory: dir})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.TotalFiles)
	assert.Equal(t, 4, summary.Renamed)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 1, summary.NoDate)
	assert.Equal(t, 0, summary.Errors)
	assert.False(t, summary.HasErrors())

	assert.Equal(t, []string{
		"20240102_IMG.jpg",
		"20240315_report.pdf",
		"20240315_scan.png",
		"20250307_notes.txt",
		"notes.txt",
	}, listNames(t, dir))
}

func TestRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir,
		"report_2024-03-15.pdf",
		"IMG_20240102.jpg",
		"PXL_20260204_181153683.MP.jpg",
	)

	_, err := Run(Options{Directory: dir})
	require.NoError(t, err)
	first := listNames(t, dir)
	assert.Contains(t, first, "20260204T181153.683_PXL.MP.jpg")

	summary, err := Run(Options{Directory: dir})
	require.NoError(t, err)

	assert.Equal(t, 0, summary.Renamed)
	assert.Equal(t, 3, summary.Skipped)
	assert.Equal(t, first, listNames(t, dir))
}

func TestRunMissingDirectoryIsFatal(t *testing.T) {
	_, err := Run(Options{Directory: filepath.Join(t.TempDir(), "absent")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot scan target directory")
}

func TestRunRecursive(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "inbox")
	require.NoError(t, os.Mkdir(sub, 0755))
	writeFiles(t, dir, "report_2024-03-15.pdf")
	writeFiles(t, sub, "scan_2024-06-01.png")

	summary, err := Run(Options{Directory: dir, Recursive: true})
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Renamed)
	assert.FileExists(t, filepath.Join(sub, "20240601_scan.png"))
}

func TestPreviewDoesNotMutate(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "report_2024-03-15.pdf", "notes.txt")

	summary, err := Preview(Options{Directory: dir, BackupDir: filepath.Join(dir, "backup")})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Renamed)
	assert.Equal(t, []string{"notes.txt", "report_2024-03-15.pdf"}, listNames(t, dir))
	assert.NoDirExists(t, filepath.Join(dir, "backup"))
}

func TestRunWithJournal(t *testing.T) {
	dir := t.TempDir()
	auditDir := filepath.Join(dir, ".dateprefix", "audit")
	writeFiles(t, dir, "report_2024-03-15.pdf", "notes.txt")

	journal, err := audit.NewWriter(auditDir)
	require.NoError(t, err)

	summary, err := Run(Options{Directory: dir, Journal: journal})
	require.NoError(t, err)
	require.NoError(t, journal.Close())

	assert.Equal(t, 1, summary.Renamed)

	events, err := audit.ReadEvents(auditDir)
	require.NoError(t, err)
	runs := audit.Runs(events)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].Completed)
	assert.Len(t, runs[0].Renames(), 1)
}

func TestRunBackups(t *testing.T) {
	dir := t.TempDir()
	backupDir := filepath.Join(dir, ".dateprefix", "backup")
	writeFiles(t, dir, "report_2024-03-15.pdf")

	summary, err := Run(Options{Directory: dir, BackupDir: backupDir})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.BackedUp)
	assert.FileExists(t, filepath.Join(backupDir, "report_2024-03-15.pdf"))
}
