package actorsqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgekit/actorsql/dialect"
)

func TestStatsConnection(t *testing.T) {
	_, drv := newTestDriver(t)
	conn := acquire(t, drv)
	sc := NewStatsConnection(conn, WithSlowThreshold(time.Hour))
	ctx := context.Background()

	mustExecute(t, sc, "CREATE TABLE t (n INTEGER)")
	mustExecute(t, sc, "INSERT INTO t (n) VALUES (1)")
	_, err := sc.ExecuteQuery(ctx, dialect.CompiledQuery{SQL: "SELECT * FROM no_such_table"})
	require.Error(t, err)

	stats := sc.Stats()
	assert.Equal(t, int64(3), stats.TotalQueries)
	assert.Equal(t, int64(1), stats.Errors)
	assert.Zero(t, stats.SlowQueries)
	assert.Greater(t, stats.TotalDuration, time.Duration(0))
	assert.Contains(t, stats.String(), "queries=3")

	sc.Reset()
	assert.Zero(t, sc.Stats().TotalQueries)
}

func TestStatsStream(t *testing.T) {
	_, drv := newTestDriver(t)
	conn := acquire(t, drv)
	sc := NewStatsConnection(conn, WithSlowThreshold(time.Hour))
	ctx := context.Background()
	mustExecute(t, sc, "CREATE TABLE t (n INTEGER)")

	stream := sc.StreamQuery(ctx, dialect.CompiledQuery{SQL: "SELECT n FROM t"})
	assert.Equal(t, int64(1), sc.Stats().TotalStreams)
	// Execution is recorded when the stream runs, not when it is made.
	assert.Equal(t, int64(1), sc.Stats().TotalQueries)

	require.True(t, stream.Next())
	require.False(t, stream.Next())
	assert.Equal(t, int64(2), sc.Stats().TotalQueries)
}

func TestSlowQueryHook(t *testing.T) {
	_, drv := newTestDriver(t)
	conn := acquire(t, drv)

	var slowSQL string
	sc := NewStatsConnection(conn,
		WithSlowThreshold(0),
		WithSlowQueryHook(func(_ context.Context, sql string, _ []any, d time.Duration) {
			slowSQL = sql
			assert.Greater(t, d, time.Duration(0))
		}),
	)

	mustExecute(t, sc, "SELECT 1")
	assert.Equal(t, "SELECT 1", slowSQL)
	assert.Equal(t, int64(1), sc.Stats().SlowQueries)
}
