package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"merchant-admin-layer/internal/application"
	"merchant-admin-layer/internal/domain"
	"merchant-admin-layer/internal/ports"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type stubOAuthFlow struct {
	validCallback bool
	token         string
	exchangeErr   error
	exchanged     []string
}

func (s *stubOAuthFlow) AuthorizeURL(shop string, state string) string {
	return "https://" + shop + "/admin/oauth/authorize?state=" + state
}

func (s *stubOAuthFlow) VerifyCallback(u *url.URL) (bool, error) {
	return s.validCallback, nil
}

func (s *stubOAuthFlow) ExchangeToken(ctx context.Context, shop string, code string) (string, error) {
	s.exchanged = append(s.exchanged, code)
	return s.token, s.exchangeErr
}

func (s *stubOAuthFlow) Scope() string {
	return "read_products,write_products"
}

func TestOAuthInitHandler(t *testing.T) {
	handler := oauthInitHandler(&stubOAuthFlow{}, true, zerolog.Nop())

	t.Run("redirects with state cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/auth?shop="+testShop, nil))

		require.Equal(t, http.StatusFound, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, stateCookieName, cookies[0].Name)
		assert.Len(t, cookies[0].Value, 32)
		assert.True(t, cookies[0].HttpOnly)
		assert.True(t, cookies[0].Secure)
		assert.Equal(t, "https://"+testShop+"/admin/oauth/authorize?state="+cookies[0].Value, rec.Header().Get("Location"))
	})

	t.Run("rejects foreign shop domain", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler(rec, httptest.NewRequest(http.MethodGet, "/auth?shop=evil.example.com", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})
}

func callbackRequest(state string, cookieState string) *http.Request {
	target := "/auth/callback?" + url.Values{
		"shop":  {testShop},
		"code":  {"auth-code"},
		"state": {state},
		"hmac":  {"ignored-by-stub"},
	}.Encode()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if cookieState != "" {
		req.AddCookie(&http.Cookie{Name: stateCookieName, Value: cookieState})
	}
	return req
}

func TestOAuthCallbackHandler(t *testing.T) {
	tests := []struct {
		name       string
		flow       *stubOAuthFlow
		request    *http.Request
		storeErr   error
		wantStatus int
		wantStored bool
	}{
		{
			name:       "stores offline session",
			flow:       &stubOAuthFlow{validCallback: true, token: "shpat_new"},
			request:    callbackRequest("nonce", "nonce"),
			wantStatus: http.StatusFound,
			wantStored: true,
		},
		{
			name:       "bad hmac",
			flow:       &stubOAuthFlow{validCallback: false},
			request:    callbackRequest("nonce", "nonce"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "state mismatch",
			flow:       &stubOAuthFlow{validCallback: true},
			request:    callbackRequest("nonce", "other"),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing state cookie",
			flow:       &stubOAuthFlow{validCallback: true},
			request:    callbackRequest("nonce", ""),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing parameters",
			flow:       &stubOAuthFlow{validCallback: true},
			request:    httptest.NewRequest(http.MethodGet, "/auth/callback?shop="+testShop, nil),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "token exchange fails",
			flow:       &stubOAuthFlow{validCallback: true, exchangeErr: errors.New("invalid code")},
			request:    callbackRequest("nonce", "nonce"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "session store fails",
			flow:       &stubOAuthFlow{validCallback: true, token: "shpat_new"},
			request:    callbackRequest("nonce", "nonce"),
			storeErr:   errors.New("redis down"),
			wantStatus: http.StatusInternalServerError,
			wantStored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sessions := new(ports.MockSessionRepository)
			if tt.wantStored {
				sessions.On("Store", mock.Anything, mock.MatchedBy(func(s *domain.Session) bool {
					return s.ID == "offline_"+testShop && s.AccessToken == "shpat_new" && s.Scope == "read_products,write_products"
				})).Return(tt.storeErr)
			}
			auth := application.NewAuthService(sessions, new(ports.MockSessionTokenVerifier), zerolog.Nop())

			rec := httptest.NewRecorder()
			oauthCallbackHandler(tt.flow, auth, "test-key", zerolog.Nop())(rec, tt.request)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusFound {
				assert.Equal(t, "https://"+testShop+"/admin/apps/test-key", rec.Header().Get("Location"))
			}
			sessions.AssertExpectations(t)
		})
	}
}
