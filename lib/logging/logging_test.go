package logging

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	})
	t.Run("json", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, initTo(buf, Config{Level: "debug", Format: FormatJSON}))

		log.Debug().Str("resourceType", "Condition").Msg("hello")

		assert.Equal(t, "debug", gjson.Get(buf.String(), "level").String())
		assert.Equal(t, "Condition", gjson.Get(buf.String(), "resourceType").String())
		assert.Equal(t, "hello", gjson.Get(buf.String(), "message").String())
	})
	t.Run("level filters", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, initTo(buf, Config{Level: "warn", Format: FormatJSON}))

		log.Info().Msg("hello")

		assert.Empty(t, buf.String())
	})
	t.Run("console", func(t *testing.T) {
		buf := new(bytes.Buffer)
		require.NoError(t, initTo(buf, Config{Level: "info", Format: FormatConsole}))

		log.Info().Msg("hello")

		assert.Contains(t, buf.String(), "hello")
		assert.False(t, gjson.Valid(buf.String()))
	})
	t.Run("invalid level", func(t *testing.T) {
		assert.ErrorContains(t, initTo(new(bytes.Buffer), Config{Level: "loud"}), "invalid log level")
	})
	t.Run("invalid format", func(t *testing.T) {
		assert.ErrorContains(t, initTo(new(bytes.Buffer), Config{Level: "info", Format: "xml"}), "invalid log format")
	})
}

func TestMiddleware(t *testing.T) {
	buf := new(bytes.Buffer)
	require.NoError(t, initTo(buf, DefaultConfig()))
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Ctx(r.Context()).Info().Msg("handled")
	}))

	t.Run("generates request id", func(t *testing.T) {
		buf.Reset()
		recorder := httptest.NewRecorder()

		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/redox/patients/p1/conditions", nil))

		requestID := recorder.Header().Get(RequestIDHeader)
		assert.Len(t, requestID, 36)
		assert.Equal(t, requestID, gjson.Get(buf.String(), "requestId").String())
		assert.Equal(t, "/redox/patients/p1/conditions", gjson.Get(buf.String(), "path").String())
	})
	t.Run("keeps caller's request id", func(t *testing.T) {
		buf.Reset()
		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodGet, "/redox/patients/search", nil)
		request.Header.Set(RequestIDHeader, "abc")

		handler.ServeHTTP(recorder, request)

		assert.Equal(t, "abc", recorder.Header().Get(RequestIDHeader))
		assert.Equal(t, "abc", gjson.Get(buf.String(), "requestId").String())
	})
}
