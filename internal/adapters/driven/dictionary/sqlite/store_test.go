package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edstats-labs/uisdata-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SaveAndLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := []domain.IndicatorRecord{
		{
			ID:             "ROFST.1.cp",
			FullKey:        "ROFST.PT.L1._T",
			ShortKey:       "rofst-1",
			Label:          "Out-of-school rate, primary",
			FamilyID:       "ROFST.1",
			FreeDimensions: []string{"SEX", "LOCATION"},
		},
		{
			ID:       "CR.1.cp",
			FullKey:  "CR.PT.L1._T",
			ShortKey: "cr-1",
			Label:    "Completion rate, primary",
			FamilyID: "CR.1",
		},
	}

	require.NoError(t, store.Save(ctx, records))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestStore_Save_ReplacesPreviousDictionary(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []domain.IndicatorRecord{
		{ID: "CR.1.cp", FullKey: "CR.PT.L1._T", ShortKey: "cr-1", FamilyID: "CR.1"},
	}
	second := []domain.IndicatorRecord{
		{ID: "ROFST.1.cp", FullKey: "ROFST.PT.L1._T", ShortKey: "rofst-1", FamilyID: "ROFST.1"},
	}

	require.NoError(t, store.Save(ctx, first))
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}

func TestStore_Load_EmptyDatabase(t *testing.T) {
	store := newTestStore(t)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_Load_PreservesOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	records := make([]domain.IndicatorRecord, 0, 20)
	for i := 0; i < 20; i++ {
		records = append(records, domain.IndicatorRecord{
			ID:       string(rune('A'+i)) + ".1.cp",
			FullKey:  string(rune('A'+i)) + ".PT.L1._T",
			ShortKey: string(rune('a'+i)) + "-1",
			FamilyID: string(rune('A'+i)) + ".1",
		})
	}
	require.NoError(t, store.Save(ctx, records))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestStore_MigrationsAreIdempotent(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	// Reopening the same database must not rerun applied migrations.
	store, err = NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(context.Background())
	assert.NoError(t, err)
}
