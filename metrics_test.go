package scanio

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBasicMetricsCollector(t *testing.T) {
	mc := &BasicMetricsCollector{}
	var _ MetricsCollector = mc

	mc.RecordDrain(100, 1, false, 10*time.Millisecond, nil)
	mc.RecordDrain(300, 0, true, 30*time.Millisecond, nil)
	mc.RecordDrain(0, 0, false, 20*time.Millisecond, errors.New("boom"))
	mc.RecordRelease(true)
	mc.RecordRelease(false)
	mc.RecordSanitize(true)

	stats := mc.GetStats()
	assert.Equal(t, int64(3), stats.DrainCount)
	assert.Equal(t, int64(1), stats.DrainErrors)
	assert.Equal(t, int64(400), stats.DrainBytes)
	assert.Equal(t, int64(1), stats.DrainGrows)
	assert.Equal(t, int64(1), stats.DrainMapped)
	assert.Equal(t, (20 * time.Millisecond).Nanoseconds(), stats.DrainAvgNanos)
	assert.Equal(t, int64(2), stats.ReleaseCount)
	assert.Equal(t, int64(1), stats.ReleaseSucceeded)
	assert.Equal(t, int64(1), stats.SanitizeChanged)

	assert.Zero(t, (&BasicMetricsCollector{}).GetStats().DrainAvgNanos)
}

func TestNoopMetricsCollector(t *testing.T) {
	var mc MetricsCollector = NoopMetricsCollector{}
	mc.RecordDrain(1, 0, false, time.Second, nil)
	mc.RecordRelease(true)
	mc.RecordSanitize(false)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := context.Background()

	l.WithPath("lib/app.jar").WithSize(42).Info("opened")
	assert.Contains(t, buf.String(), `"path":"lib/app.jar"`)
	assert.Contains(t, buf.String(), `"size":42`)

	buf.Reset()
	l.LogSanitize(ctx, "a.class", "a.class")
	assert.Empty(t, buf.String())
	l.LogSanitize(ctx, "../a.class", "a.class")
	assert.Contains(t, buf.String(), `"original":"../a.class"`)

	buf.Reset()
	l.WithSize(4096).LogRelease(ctx, true)
	assert.Contains(t, buf.String(), "buffer released")
	assert.Contains(t, buf.String(), `"size":4096`)

	buf.Reset()
	l.WithPath("x").LogDrain(ctx, 0, 0, false, errors.New("boom"))
	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), `"path":"x"`)

	NoopLogger().Error("discarded")
	assert.NotNil(t, NewLogger(nil))
	assert.NotNil(t, NewJSONLogger(slog.LevelInfo))
	assert.NotNil(t, NewTextLogger(slog.LevelInfo))
}
