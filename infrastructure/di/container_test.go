package di

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/JEONG99/movieql-server/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func newTestContainer(t *testing.T, cfg *config.Config) *Container {
	t.Helper()
	container, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return container
}

func TestInitializeContainer(t *testing.T) {
	container := newTestContainer(t, config.Default())

	assert.NotNil(t, container.Router)
	assert.NotNil(t, container.QueryBus)
	assert.NotNil(t, container.CommandBus)
	assert.Nil(t, container.Watcher, "no watcher without a config file")
	assert.Equal(t, 2, container.Store.TweetCount())
}

func TestContainer_GETMutationIsRejected(t *testing.T) {
	container := newTestContainer(t, config.Default())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/?query="+`mutation%7BdeleteTweet(id:%221%22)%7D`, nil)
	container.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, 2, container.Store.TweetCount())
}

func TestContainer_ServesGraphiQL(t *testing.T) {
	container := newTestContainer(t, config.Default())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Accept", "text/html")
	container.Router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestInitializeContainer_InvalidLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"

	container, cleanup, err := InitializeContainer(context.Background(), cfg)

	assert.Error(t, err)
	assert.Nil(t, container)
	assert.Nil(t, cleanup)
}

func TestInitializeContainer_WatcherFailureReturnsNoCleanup(t *testing.T) {
	cfg := config.Default()
	cfg.File = filepath.Join(t.TempDir(), "missing", "config.yaml")

	container, cleanup, err := InitializeContainer(context.Background(), cfg)

	assert.Error(t, err)
	assert.Nil(t, container)
	assert.Nil(t, cleanup)
}

func TestContainer_CleanupStopsWatcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o644))
	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	container, cleanup, err := InitializeContainer(context.Background(), cfg)
	require.NoError(t, err)
	cleanup()

	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))

	assert.Never(t, func() bool {
		return container.LogLevel.Level() == zapcore.DebugLevel
	}, 300*time.Millisecond, 20*time.Millisecond)
}

func TestContainer_ServesHealth(t *testing.T) {
	container := newTestContainer(t, config.Default())

	rec := httptest.NewRecorder()
	container.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestContainer_ServesGraphQL(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok","data":{"movies":[{"id":7,"title":"Seven"}]}}`))
	}))
	t.Cleanup(upstream.Close)

	cfg := config.Default()
	cfg.Movies.BaseURL = upstream.URL
	container := newTestContainer(t, cfg)

	body := `{"query":"mutation { postTweet(text: \"hello\", userId: \"1\") { id author { fullName } } }"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	container.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"postTweet":{"id":"3","author":{"fullName":"BH Jeong"}}}}`, rec.Body.String())
	assert.Equal(t, 3, container.Store.TweetCount())

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/?query="+`%7B%20allMovies%20%7B%20id%20title%20%7D%20%7D`, nil)
	container.Router.ServeHTTP(rec, req)

	var resp struct {
		Data struct {
			AllMovies []struct {
				ID    int    `json:"id"`
				Title string `json:"title"`
			} `json:"allMovies"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data.AllMovies, 1)
	assert.Equal(t, "Seven", resp.Data.AllMovies[0].Title)
}

func TestContainer_ReloadsLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: info\n"), 0o644))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	container := newTestContainer(t, cfg)
	require.NotNil(t, container.Watcher)
	assert.Equal(t, zapcore.InfoLevel, container.LogLevel.Level())

	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\n"), 0o644))

	assert.Eventually(t, func() bool {
		return container.LogLevel.Level() == zapcore.DebugLevel
	}, 3*time.Second, 20*time.Millisecond)
}
