package obs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogsErrorWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	ctx := WithRequestID(l.WithContext(context.Background()), "abc")

	err := errors.New("boom")
	func() {
		defer Time(ctx, "unit.op")(&err)
	}()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc", line["req_id"])
	assert.Equal(t, "unit.op", line["op"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "error", line["level"])
}

func TestLoggerFallsBackWithoutContextLogger(t *testing.T) {
	l := Logger(context.Background())
	require.NotNil(t, l)
	assert.NotEqual(t, zerolog.Disabled, l.GetLevel())
}

func TestNewLoggerComponentField(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("LOG_LEVEL", "warn")

	var buf bytes.Buffer
	l := newLogger(&buf, "engine")
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "engine", line["component"])
	assert.Equal(t, "shown", line["message"])
}
