package actorsqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgekit/actorsql/dialect/sqlite"
)

func TestNew(t *testing.T) {
	t.Run("requires_storage", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage engine is required")
	})

	t.Run("composes_generic_collaborators", func(t *testing.T) {
		engine, _ := newTestDriver(t)
		d, err := New(Config{Storage: engine})
		require.NoError(t, err)

		assert.IsType(t, &sqlite.Adapter{}, d.CreateAdapter())
		assert.IsType(t, &sqlite.QueryCompiler{}, d.CreateQueryCompiler())
		assert.IsType(t, &Driver{}, d.CreateDriver())

		conn, err := d.CreateDriver().AcquireConnection(context.Background())
		require.NoError(t, err)
		assert.IsType(t, &sqlite.Introspector{}, d.CreateIntrospector(conn))
	})
}

func TestCreateDriverBindsConnection(t *testing.T) {
	engine, _ := newTestDriver(t)
	d, err := New(Config{Storage: engine})
	require.NoError(t, err)
	ctx := context.Background()

	// Each driver owns its own singleton connection for its lifetime.
	drv := d.CreateDriver()
	c1, err := drv.AcquireConnection(ctx)
	require.NoError(t, err)
	c2, err := drv.AcquireConnection(ctx)
	require.NoError(t, err)
	assert.Same(t, c1, c2)

	other, err := d.CreateDriver().AcquireConnection(ctx)
	require.NoError(t, err)
	assert.NotSame(t, c1, other)

	// Both drivers share the one storage handle, so writes through one
	// are visible through the other.
	mustExecute(t, c1, "CREATE TABLE shared (n INTEGER)")
	mustExecute(t, other, "INSERT INTO shared (n) VALUES (1)")
	res := mustExecute(t, c1, "SELECT COUNT(*) AS c FROM shared")
	assert.Equal(t, int64(1), res.Rows[0]["c"])
}
