package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"merchant-admin-layer/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, StatusSuccess, Outcome(nil))
	assert.Equal(t, StatusError, Outcome(errors.New("boom")))
	assert.Equal(t, StatusUserError, Outcome(fmt.Errorf("wrapped: %w", &domain.RemoteAPIError{})))
}

func TestObserveShopifyRequest(t *testing.T) {
	counter := ShopifyRequestsTotal.WithLabelValues("TestOperation", StatusError)
	before := testutil.ToFloat64(counter)

	ObserveShopifyRequest("TestOperation", time.Now(), errors.New("boom"))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/items/{id}", "418")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/42", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
