package export

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbooth/media-export/common"
)

func readEntries(t *testing.T, sealed *bytes.Reader, size int64) map[string]string {
	zr, err := zip.NewReader(sealed, size)
	require.NoError(t, err)

	entries := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		_ = rc.Close()
		entries[f.Name] = string(data)
	}
	return entries
}

func TestArchiveBuilder_RoundTrip(t *testing.T) {
	ctx := testContext()
	b := NewArchiveBuilder()

	require.NoError(t, b.Add(ctx, "one.txt", []byte("first file")))
	require.NoError(t, b.Add(ctx, "two.txt", []byte("second file")))
	assert.Equal(t, 2, b.Entries())

	sealed, size, err := b.Seal()
	require.NoError(t, err)
	require.Greater(t, size, int64(0))

	entries := readEntries(t, sealed, size)
	assert.Equal(t, map[string]string{
		"one.txt": "first file",
		"two.txt": "second file",
	}, entries)
}

func TestArchiveBuilder_DuplicateNamesAreSuffixed(t *testing.T) {
	ctx := testContext()
	b := NewArchiveBuilder()

	require.NoError(t, b.Add(ctx, "photo.jpg", []byte("a")))
	require.NoError(t, b.Add(ctx, "photo.jpg", []byte("b")))
	require.NoError(t, b.Add(ctx, "photo.jpg", []byte("c")))

	sealed, size, err := b.Seal()
	require.NoError(t, err)

	entries := readEntries(t, sealed, size)
	assert.Equal(t, map[string]string{
		"photo.jpg":     "a",
		"photo (1).jpg": "b",
		"photo (2).jpg": "c",
	}, entries)
}

func TestArchiveBuilder_SealEmptyFails(t *testing.T) {
	b := NewArchiveBuilder()
	_, _, err := b.Seal()
	assert.ErrorIs(t, err, common.ErrNothingToExport)
}

func TestArchiveBuilder_InfersExtensionWhenMissing(t *testing.T) {
	ctx := testContext()
	b := NewArchiveBuilder()

	// PNG magic header
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	require.NoError(t, b.Add(ctx, "boothcapture", png))

	sealed, size, err := b.Seal()
	require.NoError(t, err)

	entries := readEntries(t, sealed, size)
	require.Len(t, entries, 1)
	assert.Contains(t, entries, "boothcapture.png")
}

func TestArchiveBuilder_StripsPathComponents(t *testing.T) {
	ctx := testContext()
	b := NewArchiveBuilder()

	require.NoError(t, b.Add(ctx, "../../etc/passwd.txt", []byte("nope")))

	sealed, size, err := b.Seal()
	require.NoError(t, err)
	entries := readEntries(t, sealed, size)
	assert.Contains(t, entries, "passwd.txt")
}
