package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	Searches.WithLabelValues("Condition", OutcomeSuccess).Inc()
	TokenRefreshes.WithLabelValues(OutcomeFailure).Inc()

	recorder := httptest.NewRecorder()
	Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, `redoxbridge_searches_total{kind="Condition",outcome="success"}`)
	assert.Contains(t, body, `redoxbridge_token_refreshes_total{outcome="failure"}`)
}

func TestSearches(t *testing.T) {
	before := testutil.ToFloat64(Searches.WithLabelValues("Goal", OutcomeFailure))
	Searches.WithLabelValues("Goal", OutcomeFailure).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(Searches.WithLabelValues("Goal", OutcomeFailure)))
}
