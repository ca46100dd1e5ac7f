package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixlvh/invoice/store/sqlite"
)

func newTestBackend(t *testing.T) *sqlite.Backend {
	t.Helper()
	b, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestBackend_LoadBeforeFirstSave(t *testing.T) {
	b := newTestBackend(t)

	blob, err := b.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, blob, "fresh database has no snapshot")
}

func TestBackend_SaveLoadRoundTrip(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	want := []byte(`{"state":{},"version":2}`)
	require.NoError(t, b.Save(ctx, want))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBackend_SaveReplacesPreviousSnapshot(t *testing.T) {
	b := newTestBackend(t)
	ctx := context.Background()

	require.NoError(t, b.Save(ctx, []byte(`{"v":1}`)))
	require.NoError(t, b.Save(ctx, []byte(`{"v":2}`)))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), got, "the single keyed row is upserted, not appended")
}

func TestBackend_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.db")
	ctx := context.Background()

	b1, err := sqlite.Open(path)
	require.NoError(t, err)
	require.NoError(t, b1.Save(ctx, []byte(`{"v":1}`)))
	require.NoError(t, b1.Close())

	b2, err := sqlite.Open(path)
	require.NoError(t, err)
	defer b2.Close()

	got, err := b2.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":1}`), got)
}
