package log

import (
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSilentFormatter_Format(t *testing.T) {
	t.Parallel()

	var f Formatter = &silentFormatter{}

	out, err := f.Format(nil)

	assert.NoError(t, err)
	assert.Nil(t, out)
}

func TestShortenCaller(t *testing.T) {
	t.Parallel()

	const prefix = "github.com/clarusmens/clarus-mens"

	tests := []struct {
		name     string
		function string
		prefix   string
		want     string
	}{
		{"접두사 없음", prefix + "/internal/config.Load", "", prefix + "/internal/config.Load"},
		{"접두사 축약", prefix + "/internal/config.Load", prefix, ".../internal/config.Load"},
		{"다른 모듈은 그대로", "github.com/labstack/echo/v4.(*Echo).Start", prefix, "github.com/labstack/echo/v4.(*Echo).Start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, shortenCaller(tt.function, tt.prefix))
		})
	}
}

func TestNewTextFormatter(t *testing.T) {
	t.Parallel()

	f := newTextFormatter("github.com/clarusmens/clarus-mens")

	assert.True(t, f.FullTimestamp)
	assert.Equal(t, time.RFC3339, f.TimestampFormat)

	function, file := f.CallerPrettyfier(&runtime.Frame{
		Function: "github.com/clarusmens/clarus-mens/cmd/clarus-mens.serve",
		Line:     42,
	})
	assert.Equal(t, ".../cmd/clarus-mens.serve(line:42)", function)
	assert.Empty(t, file)
}
