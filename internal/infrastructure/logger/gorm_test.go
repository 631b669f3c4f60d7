package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel, opts ...GormLoggerOption) (*GormLogger, *observer.ObservedLogs) {
	core, recorded := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level, opts...), recorded
}

func traceQuery(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_ImplementsInterface(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)
	var _ gormlogger.Interface = gl
}

func TestGormLogger_Options(t *testing.T) {
	gl, _ := newObservedGormLogger(
		gormlogger.Warn,
		WithSlowThreshold(time.Second),
		WithIgnoreRecordNotFoundError(false),
	)

	assert.Equal(t, time.Second, gl.slowThreshold)
	assert.False(t, gl.ignoreNotFoundErr)
}

func TestGormLogger_LogModeReturnsCopy(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Info)
	silenced := gl.LogMode(gormlogger.Silent)

	assert.Equal(t, gormlogger.Info, gl.level)
	assert.Equal(t, gormlogger.Silent, silenced.(*GormLogger).level)
}

func TestGormLogger_LevelGating(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Warn)

	gl.Info(context.Background(), "migrations at version %d", 12)
	assert.Empty(t, recorded.All(), "info suppressed at warn level")

	gl.Warn(context.Background(), "connection pool near limit: %d", 48)
	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, "connection pool near limit: 48", entries[0].Message)
}

func TestGormLogger_Trace_QueryError(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(),
		traceQuery(`INSERT INTO stock_movements (id) VALUES (?)`, 0),
		errors.New("duplicate key value"))

	entries := recorded.FilterMessage("query failed").All()
	require.Len(t, entries, 1)
	fields := entryFields(entries[0])
	assert.Contains(t, fields["sql"].String, "stock_movements")
	assert.Contains(t, fields, "error")
}

func TestGormLogger_Trace_RecordNotFoundSkipped(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Error)

	gl.Trace(context.Background(), time.Now(),
		traceQuery(`SELECT * FROM products WHERE sku = ?`, 0),
		gormlogger.ErrRecordNotFound)

	assert.Empty(t, recorded.All())
}

func TestGormLogger_Trace_SlowQuery(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Warn, WithSlowThreshold(time.Millisecond))

	began := time.Now().Add(-250 * time.Millisecond)
	gl.Trace(context.Background(), began,
		traceQuery(`SELECT * FROM inventory_records WHERE expiry_date < ?`, 120), nil)

	entries := recorded.FilterMessage("slow query").All()
	require.Len(t, entries, 1)
	fields := entryFields(entries[0])
	assert.Equal(t, int64(120), fields["rows"].Integer)
	assert.Contains(t, fields, "threshold")
}

func TestGormLogger_Trace_DebugCarriesRequestID(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Info)

	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-91c2")
	gl.Trace(ctx, time.Now(), traceQuery(`SELECT * FROM sales_orders`, 3), nil)

	entries := recorded.FilterMessage("query").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, "req-91c2", entryFields(entries[0])["request_id"].String)
}

func TestGormLogger_Trace_SilentLogsNothing(t *testing.T) {
	gl, recorded := newObservedGormLogger(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(),
		traceQuery(`SELECT 1`, 1), errors.New("ignored"))

	assert.Empty(t, recorded.All())
}

func TestMapGormLogLevel(t *testing.T) {
	tests := []struct {
		level    string
		expected gormlogger.LogLevel
	}{
		{"silent", gormlogger.Silent},
		{"error", gormlogger.Error},
		{"warn", gormlogger.Warn},
		{"info", gormlogger.Info},
		{"debug", gormlogger.Info},
		{"unknown", gormlogger.Warn},
		{"", gormlogger.Warn},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			result := MapGormLogLevel(tt.level)
			assert.Equal(t, tt.expected, result)
		})
	}
}
