package graphql

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/JEONG99/movieql-server/application/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type httpResult struct {
	Data   map[string]interface{}   `json:"data"`
	Errors []map[string]interface{} `json:"errors"`
}

func serve(t *testing.T, h http.Handler, req *http.Request) (int, httpResult) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var result httpResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return rec.Code, result
}

func TestHandler_POST(t *testing.T) {
	// Arrange
	env := newTestEnv(t, new(mocks.MockMovieCatalog), defaultSchemaConfig())
	h := NewHandler(env.schema, HandlerConfig{}, nil, zap.NewNop())
	body := `{"query":"query One($id: ID!) { tweet(id: $id) { text } }","operationName":"One","variables":{"id":"2"}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")

	// Act
	code, result := serve(t, h, req)

	// Assert
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, result.Errors)
	assert.Equal(t, map[string]interface{}{"text": "second tweet!"}, result.Data["tweet"])
}

func TestHandler_GET(t *testing.T) {
	env := newTestEnv(t, new(mocks.MockMovieCatalog), defaultSchemaConfig())
	h := NewHandler(env.schema, HandlerConfig{}, nil, zap.NewNop())
	params := url.Values{
		"query":     {`query Q($id: ID!) { tweet(id: $id) { id } }`},
		"variables": {`{"id":"1"}`},
	}
	req := httptest.NewRequest(http.MethodGet, "/?"+params.Encode(), nil)

	code, result := serve(t, h, req)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, map[string]interface{}{"id": "1"}, result.Data["tweet"])
}

func TestHandler_ExecutionErrorsStill200(t *testing.T) {
	env := newTestEnv(t, new(mocks.MockMovieCatalog), defaultSchemaConfig())
	h := NewHandler(env.schema, HandlerConfig{}, nil, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"query":"{ nope }"}`))
	req.Header.Set("Content-Type", "application/json")

	code, result := serve(t, h, req)

	assert.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, result.Errors)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		target      string
		contentType string
		body        string
	}{
		{"post without json content type", http.MethodPost, "/", "text/plain", `{"query":"{ allUsers { id } }"}`},
		{"post with broken json", http.MethodPost, "/", "application/json", `{"query":`},
		{"post without query", http.MethodPost, "/", "application/json", `{"variables":{}}`},
		{"get without query", http.MethodGet, "/", "", ""},
		{"get with bad variables", http.MethodGet, "/?query=%7B+allUsers+%7B+id+%7D+%7D&variables=nope", "", ""},
		{"unsupported method", http.MethodPut, "/", "application/json", `{"query":"{ allUsers { id } }"}`},
	}

	env := newTestEnv(t, new(mocks.MockMovieCatalog), defaultSchemaConfig())
	h := NewHandler(env.schema, HandlerConfig{}, nil, zap.NewNop())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}

			code, result := serve(t, h, req)

			assert.Equal(t, http.StatusBadRequest, code)
			require.Len(t, result.Errors, 1)
			assert.NotEmpty(t, result.Errors[0]["message"])
			assert.Nil(t, result.Data)
		})
	}
}

func TestHandler_GETRejectsMutation(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
	}{
		{"anonymous mutation", url.Values{"query": {`mutation { deleteTweet(id: "1") }`}}},
		{"named mutation", url.Values{
			"query":         {`query Read { allTweets { id } } mutation Drop { deleteTweet(id: "1") }`},
			"operationName": {"Drop"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			env := newTestEnv(t, new(mocks.MockMovieCatalog), defaultSchemaConfig())
			h := NewHandler(env.schema, HandlerConfig{}, nil, zap.NewNop())
			rec := httptest.NewRecorder()

			// Act
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?"+tt.params.Encode(), nil))

			// Assert
			assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
			assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
			var result httpResult
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
			require.Len(t, result.Errors, 1)
			assert.Nil(t, result.Data)
			assert.Equal(t, 2, env.store.TweetCount())
		})
	}
}

func TestHandler_GETRunsQuerySelectedFromMixedDocument(t *testing.T) {
	env := newTestEnv(t, new(mocks.MockMovieCatalog), defaultSchemaConfig())
	h := NewHandler(env.schema, HandlerConfig{}, nil, zap.NewNop())
	params := url.Values{
		"query":         {`query Read { allTweets { id } } mutation Drop { deleteTweet(id: "1") }`},
		"operationName": {"Read"},
	}

	code, result := serve(t, h, httptest.NewRequest(http.MethodGet, "/?"+params.Encode(), nil))

	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, result.Data["allTweets"], 2)
	assert.Equal(t, 2, env.store.TweetCount())
}

func TestHandler_POSTRunsMutation(t *testing.T) {
	env := newTestEnv(t, new(mocks.MockMovieCatalog), defaultSchemaConfig())
	h := NewHandler(env.schema, HandlerConfig{}, nil, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"query":"mutation { deleteTweet(id: \"1\") }"}`))
	req.Header.Set("Content-Type", "application/json")

	code, result := serve(t, h, req)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, result.Data["deleteTweet"])
	assert.Equal(t, 1, env.store.TweetCount())
}

func TestHandler_BodyTooLarge(t *testing.T) {
	env := newTestEnv(t, new(mocks.MockMovieCatalog), defaultSchemaConfig())
	h := NewHandler(env.schema, HandlerConfig{MaxBodyBytes: 64}, nil, zap.NewNop())
	body := `{"query":"{ allUsers { id } }","variables":{"pad":"` + strings.Repeat("x", 128) + `"}}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	code, result := serve(t, h, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, code)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "request body is too large", result.Errors[0]["message"])
}

func TestHandler_GraphiQL(t *testing.T) {
	env := newTestEnv(t, new(mocks.MockMovieCatalog), defaultSchemaConfig())

	tests := []struct {
		name     string
		config   HandlerConfig
		accept   string
		wantCode int
		wantHTML bool
	}{
		{"browser", HandlerConfig{GraphiQL: true, Endpoint: "/graphql"}, "text/html,application/xhtml+xml", http.StatusOK, true},
		{"disabled", HandlerConfig{GraphiQL: false}, "text/html", http.StatusBadRequest, false},
		{"api client", HandlerConfig{GraphiQL: true}, "application/json", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(env.schema, tt.config, nil, zap.NewNop())
			req := httptest.NewRequest(http.MethodGet, "/graphql", nil)
			req.Header.Set("Accept", tt.accept)
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantHTML {
				assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
				assert.Contains(t, rec.Body.String(), "graphiql")
				assert.Contains(t, rec.Body.String(), "/graphql")
			}
		})
	}
}
