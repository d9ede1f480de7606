package actorsqlite

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/edgekit/actorsql/dialect"
)

// QueryStats holds query execution statistics.
//
// The backend itself is single-threaded per actor, but the counters may
// be read by monitoring code outside the handler path, so the
// surrounding StatsConnection guards them with a mutex.
type QueryStats struct {
	// TotalQueries is the total number of executed queries.
	TotalQueries int64
	// TotalStreams is the total number of started query streams.
	TotalStreams int64
	// TotalDuration is the total time spent executing queries.
	TotalDuration time.Duration
	// SlowQueries is the count of queries exceeding the slow threshold.
	SlowQueries int64
	// Errors is the count of failed queries.
	Errors int64
}

// AvgQueryDuration returns the average query duration.
func (s QueryStats) AvgQueryDuration() time.Duration {
	if s.TotalQueries == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(s.TotalQueries)
}

// String returns a human-readable summary of the statistics.
func (s QueryStats) String() string {
	return fmt.Sprintf(
		"queries=%d streams=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalStreams, s.TotalDuration, s.AvgQueryDuration(),
		s.SlowQueries, s.Errors,
	)
}

// SlowQueryHook is a function called when a slow query is detected.
type SlowQueryHook func(ctx context.Context, sql string, params []any, duration time.Duration)

// StatsConnection wraps a Connection with query statistics collection.
type StatsConnection struct {
	dialect.Connection
	mu            sync.Mutex
	stats         QueryStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
}

// StatsOption configures the StatsConnection.
type StatsOption func(*StatsConnection)

// WithSlowThreshold sets the threshold for slow query detection.
// Queries taking longer than this duration are counted as slow.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsConnection) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets a callback function for slow queries.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsConnection) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow queries to the default logger. This is a
// convenience wrapper around WithSlowQueryHook.
func WithSlowQueryLog() StatsOption {
	return WithSlowQueryHook(func(_ context.Context, sql string, params []any, duration time.Duration) {
		slog.Warn("slow query detected", "duration", duration, "sql", sql, "params", params)
	})
}

// NewStatsConnection wraps a Connection with statistics collection.
//
// Example:
//
//	conn, _ := drv.AcquireConnection(ctx)
//	sc := actorsqlite.NewStatsConnection(conn,
//	    actorsqlite.WithSlowThreshold(200*time.Millisecond),
//	    actorsqlite.WithSlowQueryLog(),
//	)
//
//	// Later, check statistics:
//	fmt.Println(sc.Stats())
func NewStatsConnection(conn dialect.Connection, opts ...StatsOption) *StatsConnection {
	s := &StatsConnection{
		Connection:    conn,
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Stats returns a snapshot of the current statistics.
func (s *StatsConnection) Stats() QueryStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Reset resets all statistics to zero.
func (s *StatsConnection) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = QueryStats{}
}

// ExecuteQuery executes a query and records statistics.
func (s *StatsConnection) ExecuteQuery(ctx context.Context, q dialect.CompiledQuery) (*dialect.QueryResult, error) {
	start := time.Now()
	res, err := s.Connection.ExecuteQuery(ctx, q)
	s.record(ctx, q, time.Since(start), err)
	return res, err
}

// StreamQuery starts a stream and records statistics for it. The single
// batch the backend produces is recorded when the stream executes.
func (s *StatsConnection) StreamQuery(ctx context.Context, q dialect.CompiledQuery) dialect.QueryStream {
	s.mu.Lock()
	s.stats.TotalStreams++
	s.mu.Unlock()
	return &statsStream{QueryStream: s.Connection.StreamQuery(ctx, q), conn: s, ctx: ctx, query: q}
}

func (s *StatsConnection) record(ctx context.Context, q dialect.CompiledQuery, duration time.Duration, err error) {
	s.mu.Lock()
	s.stats.TotalQueries++
	s.stats.TotalDuration += duration
	if err != nil {
		s.stats.Errors++
	}
	slow := duration > s.slowThreshold
	if slow {
		s.stats.SlowQueries++
	}
	hook := s.slowHook
	s.mu.Unlock()
	if slow && hook != nil {
		hook(ctx, q.SQL, q.Parameters, duration)
	}
}

// statsStream records the outcome of the wrapped stream's execution.
type statsStream struct {
	dialect.QueryStream
	conn  *StatsConnection
	ctx   context.Context
	query dialect.CompiledQuery
	once  bool
}

func (s *statsStream) Next() bool {
	if s.once {
		return s.QueryStream.Next()
	}
	s.once = true
	start := time.Now()
	ok := s.QueryStream.Next()
	s.conn.record(s.ctx, s.query, time.Since(start), s.QueryStream.Err())
	return ok
}

var (
	_ dialect.Connection  = (*StatsConnection)(nil)
	_ dialect.QueryStream = (*statsStream)(nil)
)
