package gormlog_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/folio-cms/folio/internal/logger/adapter/gormlog"
)

func sqlFunc() (string, int64) {
	return "SELECT 1", 1
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, gormlog.ParseLevel("silent"))
	assert.Equal(t, gormlogger.Error, gormlog.ParseLevel("error"))
	assert.Equal(t, gormlogger.Info, gormlog.ParseLevel("info"))
	assert.Equal(t, gormlogger.Warn, gormlog.ParseLevel(""))
	assert.Equal(t, gormlogger.Warn, gormlog.ParseLevel("bogus"))
}

func TestTrace(t *testing.T) {
	tests := []struct {
		name    string
		level   gormlogger.LogLevel
		begin   time.Time
		err     error
		want    string
		wantOut bool
	}{
		{name: "silent drops errors", level: gormlogger.Silent, err: errors.New("x"), wantOut: false},
		{name: "error logged", level: gormlogger.Error, err: errors.New("x"), want: "query failed", wantOut: true},
		{name: "not found ignored at warn", level: gormlogger.Warn, err: gorm.ErrRecordNotFound, wantOut: false},
		{
			name: "slow query", level: gormlogger.Warn, begin: time.Now().Add(-time.Second),
			want: "slow query", wantOut: true,
		},
		{name: "fast query hidden at warn", level: gormlogger.Warn, wantOut: false},
		{name: "fast query at info", level: gormlogger.Info, want: "SELECT 1", wantOut: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			l := gormlog.NewWithLogger(zerolog.New(&buf), tt.level)

			begin := tt.begin
			if begin.IsZero() {
				begin = time.Now()
			}

			l.Trace(context.Background(), begin, sqlFunc, tt.err)

			if !tt.wantOut {
				assert.Empty(t, buf.String())

				return
			}

			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), `"component":"gorm"`)
		})
	}
}

func TestLogMode(t *testing.T) {
	var buf bytes.Buffer

	base := gormlog.NewWithLogger(zerolog.New(&buf), gormlogger.Silent)
	base.Info(context.Background(), "hidden %d", 1)
	assert.Empty(t, buf.String())

	loud := base.LogMode(gormlogger.Info)
	loud.Info(context.Background(), "shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")

	buf.Reset()
	base.Warn(context.Background(), "still hidden")
	assert.Empty(t, buf.String())
}
