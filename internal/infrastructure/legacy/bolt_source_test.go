package legacy

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "legacy.db")
	w, err := CreateBoltFile(path)
	require.NoError(t, err)
	require.NoError(t, w.Append("customers",
		map[string]any{"id": 10, "name": "Ana"},
		map[string]any{"id": 7, "name": "Bruno"},
	))
	require.NoError(t, w.Append("customers", map[string]any{"id": 3, "name": "Carla"}))
	require.NoError(t, w.Append("products", map[string]any{"id": 1, "name": "Caneta", "price": 2.5}))
	require.NoError(t, w.Close())
	return path
}

func TestBoltSource_ReadAllKeepsInsertionOrder(t *testing.T) {
	src, err := OpenBoltSource(writeFixture(t))
	require.NoError(t, err)
	defer src.Close()

	rows, err := src.ReadAll(context.Background(), "customers")
	require.NoError(t, err)
	require.Len(t, rows, 3)

	var names []string
	for _, raw := range rows {
		var row struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(raw, &row))
		names = append(names, row.Name)
	}
	assert.Equal(t, []string{"Ana", "Bruno", "Carla"}, names)
}

func TestBoltSource_MissingBucket(t *testing.T) {
	src, err := OpenBoltSource(writeFixture(t))
	require.NoError(t, err)
	defer src.Close()

	rows, err := src.ReadAll(context.Background(), "exchanges")
	require.NoError(t, err)
	assert.Empty(t, rows)

	names, err := src.Collections()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"customers", "products"}, names)
}

func TestBoltSource_Closed(t *testing.T) {
	src, err := OpenBoltSource(writeFixture(t))
	require.NoError(t, err)
	require.NoError(t, src.Close())
	require.NoError(t, src.Close())

	_, err = src.ReadAll(context.Background(), "customers")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestBoltSource_CancelledContext(t *testing.T) {
	src, err := OpenBoltSource(writeFixture(t))
	require.NoError(t, err)
	defer src.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = src.ReadAll(ctx, "customers")
	assert.ErrorIs(t, err, context.Canceled)
}
