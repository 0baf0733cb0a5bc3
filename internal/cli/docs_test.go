package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocs_AddNoteAndList(t *testing.T) {
	dir := t.TempDir()
	folderID := mustCreateFolder(t, dir, "Notes")

	out, err := runCLI(t, dir, "docs", "add-note", "Wifi password", "hunter2", "--folder", folderID, "--tag", "home")
	require.NoError(t, err)

	var created docView
	decodeResponse(t, out, &created)
	assert.Equal(t, "note", created.Mime)
	assert.Equal(t, "hunter2", created.Description)
	assert.Zero(t, created.PayloadSize)
	assert.Equal(t, []string{"home"}, created.Tags)

	out, err = runCLI(t, dir, "docs", "list", "--folder", folderID)
	require.NoError(t, err)

	var docs []docView
	decodeResponse(t, out, &docs)
	require.Len(t, docs, 1)
	assert.Equal(t, created.ID, docs[0].ID)
}

func TestDocs_AddNoteRejectsDeadFolder(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "docs", "add-note", "Orphan", "text", "--folder", "no-such-folder")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestDocs_AddFromImageFile(t *testing.T) {
	dir := t.TempDir()
	folderID := mustCreateFolder(t, dir, "Scans")
	path := writeTestJPEG(t, t.TempDir(), "receipt.jpg", 320, 240)

	out, err := runCLI(t, dir, "docs", "add", path, "--folder", folderID, "--due", "2026-12-01")
	require.NoError(t, err)

	var created docView
	decodeResponse(t, out, &created)
	assert.Equal(t, "image", created.Mime)
	assert.Equal(t, "receipt", created.Title, "title defaults to the file name")
	assert.Positive(t, created.PayloadSize)
	assert.Contains(t, created.DueDate, "2026-12-01")
}

func TestDocs_AddUnreadableFile(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "docs", "add", "/no/such/file.pdf", "--folder", "whatever")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestDocs_Edit(t *testing.T) {
	dir := t.TempDir()
	folderID := mustCreateFolder(t, dir, "Notes")

	out, err := runCLI(t, dir, "docs", "add-note", "Draft", "v1", "--folder", folderID)
	require.NoError(t, err)
	var created docView
	decodeResponse(t, out, &created)

	out, err = runCLI(t, dir, "docs", "edit", created.ID,
		"--title", "Final", "--description", "v2", "--tag", "b", "--tag", "a", "--tag", "b")
	require.NoError(t, err)

	var updated docView
	decodeResponse(t, out, &updated)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Final", updated.Title)
	assert.Equal(t, "v2", updated.Description)
	assert.Equal(t, []string{"a", "b"}, updated.Tags, "tags are deduplicated and sorted")
}

func TestDocs_EditUnknown(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "docs", "edit", "no-such-id", "--title", "X")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestDocs_Remove(t *testing.T) {
	dir := t.TempDir()
	folderID := mustCreateFolder(t, dir, "Notes")

	out, err := runCLI(t, dir, "docs", "add-note", "Gone soon", "bye", "--folder", folderID)
	require.NoError(t, err)
	var created docView
	decodeResponse(t, out, &created)

	_, err = runCLI(t, dir, "docs", "rm", created.ID)
	require.NoError(t, err)

	out, err = runCLI(t, dir, "docs", "list")
	require.NoError(t, err)
	var docs []docView
	decodeResponse(t, out, &docs)
	assert.Empty(t, docs)
}

func TestDocs_RemoveAbsentIsNoop(t *testing.T) {
	dir := t.TempDir()

	_, err := runCLI(t, dir, "docs", "rm", "never-existed")
	require.NoError(t, err)
}
