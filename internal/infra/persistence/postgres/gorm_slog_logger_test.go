package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"storeapi/config"
	deliverycontext "storeapi/internal/delivery/context"
	"storeapi/internal/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newBufferedGormLogger(debug bool) (logger.Interface, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	base := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := &config.Config{}
	cfg.Env.Debug = debug

	return newGormSlogLogger(base, cfg), buf
}

func sqlFn() (string, int64) {
	return "SELECT 1", 1
}

func TestGormSlogLogger_TraceError(t *testing.T) {
	l, buf := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))

	assert.Contains(t, buf.String(), "GORM query failed")
	assert.Contains(t, buf.String(), "boom")
}

func TestGormSlogLogger_TraceSkipsExpectedErrors(t *testing.T) {
	l, buf := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now(), sqlFn, gorm.ErrDuplicatedKey)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_TraceSlow(t *testing.T) {
	l, buf := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn, nil)

	assert.Contains(t, buf.String(), "GORM slow query")
}

func TestGormSlogLogger_TraceQuietWithoutDebug(t *testing.T) {
	l, buf := newBufferedGormLogger(false)

	l.Trace(context.Background(), time.Now(), sqlFn, nil)

	assert.Empty(t, buf.String())
}

func TestGormSlogLogger_UsesRequestLogger(t *testing.T) {
	l, _ := newBufferedGormLogger(true)

	reqBuf := &bytes.Buffer{}
	reqLogger := slog.New(slog.NewJSONHandler(reqBuf, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With(slog.String("request_id", "req-1"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	l.Trace(ctx, time.Now(), sqlFn, nil)

	assert.Contains(t, reqBuf.String(), "GORM query")
	assert.Contains(t, reqBuf.String(), "req-1")
}

func TestGormSlogLogger_Silent(t *testing.T) {
	l, buf := newBufferedGormLogger(true)

	l.LogMode(logger.Silent).Trace(context.Background(), time.Now(), sqlFn, errors.New("boom"))

	assert.Empty(t, buf.String())
}
