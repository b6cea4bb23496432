package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"rotomethiopia/internal"

	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/sirupsen/logrus"
)

// Context key types to avoid collisions
type contextKey string

const (
	contextKeyStaffEmail contextKey = "staff_email"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (s *Service) LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration_ms": time.Since(started).Milliseconds(),
		}).Info("http request")
	})
}

// RequireStaff gates the dashboard. Anything short of a valid session whose
// token carries the staff group sends the browser to the login page, never
// an error page.
func (s *Service) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(internal.COOKIE_SESSION_NAME)
		if err != nil {
			s.logger.WithError(err).Debug("no session cookie found")

			s.setRedirectCookie(w, r.URL.Path, time.Minute*5)

			http.Redirect(w, r, "/dashboard/login", http.StatusTemporaryRedirect)
			return
		}

		// A cookie that no longer decodes or validates has to be cleared
		// here. The login page treats any session cookie as a live session
		// and bounces back to the dashboard, so leaving a stale one in
		// place loops the browser between the two pages.
		var accessToken string
		err = s.cookie.Decode(internal.COOKIE_SESSION_NAME, cookie.Value, &accessToken)
		if err != nil {
			s.logger.WithError(err).Error("failed to decrypt session cookie")
			s.clearSessionCookie(w)
			s.redirectToLogin(w, r)
			return
		}

		set, err := s.jwksCache.Lookup(r.Context(), s.jwksURL)
		if err != nil {
			s.logger.WithError(err).Error("failed to fetch JWKS")
			s.clearSessionCookie(w)
			s.redirectToLogin(w, r)
			return
		}

		token, err := jwt.Parse(
			[]byte(accessToken),
			jwt.WithKeySet(set),
			jwt.WithValidate(true),
		)
		if err != nil {
			s.logger.WithError(err).Error("failed to parse session token")
			s.clearSessionCookie(w)
			s.redirectToLogin(w, r)
			return
		}

		if !s.tokenHasStaffGroup(token) {
			s.logger.Warn("authenticated user lacks staff group")
			s.clearSessionCookie(w)
			s.redirectToLogin(w, r)
			return
		}

		var email string
		if err := token.Get("email", &email); err != nil {
			s.logger.WithError(err).Debug("no email claim in session token")
		}

		ctx := r.Context()
		if email != "" {
			ctx = context.WithValue(ctx, contextKeyStaffEmail, email)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// tokenHasStaffGroup checks the cognito:groups claim for the configured
// staff group. The claim decodes as either []string or []any depending on
// the token source.
func (s *Service) tokenHasStaffGroup(token jwt.Token) bool {
	var groups []string
	if err := token.Get("cognito:groups", &groups); err == nil {
		for _, g := range groups {
			if g == s.config.StaffGroupName {
				return true
			}
		}
		return false
	}

	var raw any
	if err := token.Get("cognito:groups", &raw); err != nil {
		return false
	}

	list, ok := raw.([]any)
	if !ok {
		return false
	}

	for _, g := range list {
		if name, ok := g.(string); ok && name == s.config.StaffGroupName {
			return true
		}
	}

	return false
}

func (s *Service) StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path

		// Only strip if path is not root and has trailing slash
		if path != "/" && strings.HasSuffix(path, "/") {
			newPath := strings.TrimSuffix(path, "/")
			newURL := *r.URL
			newURL.Path = newPath

			// Preserve query string
			http.Redirect(w, r, newURL.String(), http.StatusMovedPermanently)
			return
		}

		next.ServeHTTP(w, r)
	})
}
