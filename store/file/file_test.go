package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixlvh/invoice/store/file"
)

func TestBackend_LoadBeforeFirstSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.json")
	b, err := file.Open(path)
	require.NoError(t, err)
	defer b.Close()

	blob, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, blob, "fresh file has no snapshot")
}

func TestBackend_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "invoice.json")
	b, err := file.Open(path)
	require.NoError(t, err)
	defer b.Close()

	ctx := context.Background()
	want := []byte(`{"state":{},"version":2}`)
	require.NoError(t, b.Save(ctx, want))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBackend_ShorterSnapshotTruncatesOldTail(t *testing.T) {
	// GIVEN: A long snapshot on disk
	// WHEN: A shorter one is saved
	// THEN: No stale bytes from the old snapshot remain

	path := filepath.Join(t.TempDir(), "invoice.json")
	b, err := file.Open(path)
	require.NoError(t, err)
	defer b.Close()

	ctx := context.Background()
	require.NoError(t, b.Save(ctx, []byte(`{"long":"aaaaaaaaaaaaaaaaaaaaaaaa"}`)))
	require.NoError(t, b.Save(ctx, []byte(`{"short":1}`)))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"short":1}`), got)
}

func TestBackend_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.json")
	ctx := context.Background()

	b1, err := file.Open(path)
	require.NoError(t, err)
	require.NoError(t, b1.Save(ctx, []byte(`{"v":1}`)))
	require.NoError(t, b1.Close())

	b2, err := file.Open(path)
	require.NoError(t, err)
	defer b2.Close()

	got, err := b2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), got)

	// The document on disk is the blob itself, nothing wrapped around it.
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), raw)
}
