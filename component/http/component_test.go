package http

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redoxbridge/redoxbridge/lib/logging"
)

func testConfig() Config {
	return Config{
		PublicInterface:   InterfaceConfig{Listener: "127.0.0.1:0"},
		InternalInterface: InterfaceConfig{Listener: "127.0.0.1:0"},
	}
}

func TestComponent_Start(t *testing.T) {
	t.Run("serves both interfaces", func(t *testing.T) {
		publicMux := http.NewServeMux()
		publicMux.HandleFunc("GET /public", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("public"))
		})
		internalMux := http.NewServeMux()
		internalMux.HandleFunc("GET /internal", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("internal"))
		})
		instance := New(testConfig(), publicMux, internalMux)
		require.NoError(t, instance.Start())
		defer instance.Stop(context.Background())

		assertGet(t, "http://"+instance.PublicAddr().String()+"/public", http.StatusOK, "public")
		assertGet(t, "http://"+instance.InternalAddr().String()+"/internal", http.StatusOK, "internal")
		assertGet(t, "http://"+instance.PublicAddr().String()+"/internal", http.StatusNotFound, "")
	})
	t.Run("responses carry a request id", func(t *testing.T) {
		mux := http.NewServeMux()
		instance := New(testConfig(), mux, http.NewServeMux())
		require.NoError(t, instance.Start())
		defer instance.Stop(context.Background())

		httpResponse, err := http.Get("http://" + instance.PublicAddr().String() + "/")
		require.NoError(t, err)
		_ = httpResponse.Body.Close()

		assert.NotEmpty(t, httpResponse.Header.Get(logging.RequestIDHeader))
	})
	t.Run("bind address already in use", func(t *testing.T) {
		mux := http.NewServeMux()
		instance1 := New(testConfig(), mux, mux)
		err := instance1.Start()
		require.NoError(t, err)
		defer instance1.Stop(context.Background())

		instance2 := New(Config{
			PublicInterface:   InterfaceConfig{Listener: instance1.PublicAddr().String()},
			InternalInterface: InterfaceConfig{Listener: "127.0.0.1:0"},
		}, mux, mux)
		defer instance2.Stop(context.Background())
		err = instance2.Start()
		require.ErrorContains(t, err, "address already in use")
	})
}

func TestComponent_Stop(t *testing.T) {
	t.Run("not started", func(t *testing.T) {
		instance := New(testConfig(), http.NewServeMux(), http.NewServeMux())

		assert.NoError(t, instance.Stop(context.Background()))
	})
}

func assertGet(t *testing.T, url string, expectedStatus int, expectedBody string) {
	t.Helper()
	httpResponse, err := http.Get(url)
	require.NoError(t, err)
	defer httpResponse.Body.Close()
	body, err := io.ReadAll(httpResponse.Body)
	require.NoError(t, err)
	assert.Equal(t, expectedStatus, httpResponse.StatusCode)
	if expectedBody != "" {
		assert.Equal(t, expectedBody, string(body))
	}
}
