package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Header names and values set on every response
const (
	HeaderContentSecurityPolicy = "Content-Security-Policy"
	HeaderContentTypeOptions    = "X-Content-Type-Options"
	HeaderReferrerPolicy        = "Referrer-Policy"

	// The admin UI is embedded in the Shopify admin, so framing is limited to it
	HeaderValueFrameAncestors       = "frame-ancestors https://*.myshopify.com https://admin.shopify.com"
	HeaderValueNoSniff              = "nosniff"
	HeaderValueReferrerStrictOrigin = "strict-origin-when-cross-origin"
)

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentSecurityPolicy, HeaderValueFrameAncestors)
			w.Header().Set(HeaderContentTypeOptions, HeaderValueNoSniff)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)

			next.ServeHTTP(w, r)
		})
	}
}

// AccessLogMiddleware attaches the logger to each request and writes one line per response
func AccessLogMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	logged := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		event := hlog.FromRequest(r).Info()
		if status >= http.StatusInternalServerError {
			event = hlog.FromRequest(r).Error()
		}
		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request completed")
	})

	return func(next http.Handler) http.Handler {
		h := logged(next)
		h = hlog.RequestIDHandler("request_id", "X-Request-Id")(h)
		h = hlog.RemoteAddrHandler("remote_addr")(h)
		return hlog.NewHandler(logger)(h)
	}
}
