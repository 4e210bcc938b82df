package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetcore/spreadsheet"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	store, err := Open(filepath.Join(dir, "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SaveAndLoadSheet(t *testing.T) {
	store := openTestStore(t)

	a1 := spreadsheet.FromString("A1")
	b1 := spreadsheet.FromString("B1")

	require.NoError(t, store.SaveCell("Sheet1", a1, "5", nil))
	require.NoError(t, store.SaveCell("Sheet1", b1, "=A1+1", []spreadsheet.Position{a1}))

	cells, err := store.LoadSheet("sheet1")
	require.NoError(t, err)
	assert.Equal(t, "5", cells[a1])
	assert.Equal(t, "=A1+1", cells[b1])
}

func TestStore_SheetIDIsCaseInsensitive(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.SaveCell("Budget", spreadsheet.FromString("A1"), "1", nil))

	cells, err := store.LoadSheet("BUDGET")
	require.NoError(t, err)
	assert.Equal(t, "1", cells[spreadsheet.FromString("A1")])
}

func TestStore_LoadMissingSheetIsEmpty(t *testing.T) {
	store := openTestStore(t)
	cells, err := store.LoadSheet("nope")
	require.NoError(t, err)
	assert.Empty(t, cells)
}

func TestStore_DeleteCellRemovesRecordAndEdges(t *testing.T) {
	store := openTestStore(t)
	a1 := spreadsheet.FromString("A1")

	require.NoError(t, store.SaveCell("sheet1", a1, "5", nil))
	require.NoError(t, store.DeleteCell("sheet1", a1))

	cells, err := store.LoadSheet("sheet1")
	require.NoError(t, err)
	_, ok := cells[a1]
	assert.False(t, ok)
}

func TestStore_DependantsTransitiveViaIndex(t *testing.T) {
	store := openTestStore(t)

	a1 := spreadsheet.FromString("A1")
	a2 := spreadsheet.FromString("A2")
	a3 := spreadsheet.FromString("A3")

	require.NoError(t, store.SaveCell("sheet1", a1, "1", nil))
	require.NoError(t, store.SaveCell("sheet1", a2, "=A1+1", []spreadsheet.Position{a1}))
	require.NoError(t, store.SaveCell("sheet1", a3, "=A2+1", []spreadsheet.Position{a2}))

	dependants, err := store.Dependants("sheet1", a1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []spreadsheet.Position{a2, a3}, dependants)
}

func TestStore_OpenCreatesParentlessFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fresh.db")

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}
