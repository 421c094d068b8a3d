package observability

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_IndependentRegistries(t *testing.T) {
	a := NewCollector("movieql")
	b := NewCollector("movieql")

	a.TweetPosted()

	assert.Equal(t, 1.0, testutil.ToFloat64(a.TweetsPosted))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.TweetsPosted))
}

func TestCollector_BusOutcomes(t *testing.T) {
	c := NewCollector("movieql")

	c.ObserveQuery("ListTweetsQuery", time.Millisecond, nil)
	c.ObserveQuery("ListTweetsQuery", time.Millisecond, nil)
	c.ObserveCommand("PostTweetCommand", time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(c.BusOperations.WithLabelValues("query", "ListTweetsQuery", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.BusOperations.WithLabelValues("command", "PostTweetCommand", "error")))
}

func TestCollector_UpstreamAndCircuit(t *testing.T) {
	c := NewCollector("movieql")

	c.ObserveUpstream("list_movies", "ok", 20*time.Millisecond)
	c.SetCircuitState("movies", 2)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.UpstreamRequests.WithLabelValues("list_movies", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.CircuitState.WithLabelValues("movies")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("movieql")
	c.ObserveHTTP("POST", "/", 200, 5*time.Millisecond)
	c.TweetDeleted()

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `movieql_http_requests_total{method="POST",route="/",status="200"} 1`)
	assert.Contains(t, string(body), "movieql_tweets_deleted_total 1")
}
