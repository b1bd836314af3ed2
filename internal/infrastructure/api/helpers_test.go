package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"merchant-admin-layer/internal/domain"

	"github.com/stretchr/testify/require"
)

const testShop = "demo.myshopify.com"

var testSession = &domain.Session{
	ID:          domain.OfflineSessionID(testShop),
	Shop:        testShop,
	AccessToken: "shpat_test",
}

func postForm(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return withSession(req)
}

func withSession(req *http.Request) *http.Request {
	return req.WithContext(domain.WithSession(req.Context(), testSession))
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body ErrorResponse
	decodeJSON(t, rec, &body)
	return body.Error
}
