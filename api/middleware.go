package api

import (
	"fmt"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/talentbridge/command-center-backend/models"
)

// sessionCookieName carries the auth backend's JWT for browser requests;
// API clients send it as a Bearer token instead.
const sessionCookieName = "cc_session"

// organizerSource is the slice of the organizer repo the gate needs.
type organizerSource interface {
	FindByAuthSubject(subject string) (*models.Organizer, error)
}

// accessGate decides, once per request, whether the caller may proceed.
// Four outcomes: redirect to /login, redirect to /, redirect to / for
// insufficient role, or pass through with the access decision attached to
// the context.
type accessGate struct {
	secret        []byte
	organizers    organizerSource
	publicPaths   map[string]bool
	adminPrefixes []string
	logger        zerolog.Logger
}

func newAccessGate(secret string, organizers organizerSource) accessGate {
	return accessGate{
		secret:     []byte(secret),
		organizers: organizers,
		publicPaths: map[string]bool{
			"/login":         true,
			"/auth/callback": true,
			"/api/health":    true,
		},
		adminPrefixes: []string{"/analytics", "/ai", "/settings", "/users"},
		logger:        log.With().Str("handlerName", "accessGate").Logger(),
	}
}

func (g accessGate) guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		token := sessionToken(r)

		if token == "" {
			if g.publicPaths[path] {
				next.ServeHTTP(w, r)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		// Verify before honoring the token anywhere: a browser holding a
		// stale cookie must still be able to reach /login.
		subject, err := verifySubject(g.secret, token)
		if err != nil {
			g.logger.Warn().Err(err).Msg("session token rejected")
			clearSessionCookie(w, r)
			if g.publicPaths[path] {
				next.ServeHTTP(w, r)
				return
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if path == "/login" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if g.publicPaths[path] {
			next.ServeHTTP(w, r)
			return
		}

		// Fails closed: a lookup error is treated the same as no organizer.
		organizer, err := g.organizers.FindByAuthSubject(subject)
		if err != nil || organizer == nil || !organizer.IsActive {
			if err != nil {
				g.logger.Warn().Err(err).Str("subject", subject).Msg("organizer lookup failed")
			}
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}

		if g.isAdminPath(path) && !organizer.IsAdmin() {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}

		access := Access{OrganizerID: organizer.ID, Role: organizer.Role}
		next.ServeHTTP(w, r.WithContext(ctxWithAccess(r.Context(), access)))
	})
}

func (g accessGate) isAdminPath(path string) bool {
	for _, prefix := range g.adminPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// clearSessionCookie expires the session cookie, if the request carried one.
func clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(sessionCookieName); err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionToken resolves the session JWT from the cookie, falling back to
// the Authorization header.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// verifySubject validates an HS256 session token and returns its subject.
func verifySubject(secret []byte, tokenString string) (string, error) {
	if len(secret) == 0 {
		return "", fmt.Errorf("AUTH_JWT_SECRET is not configured")
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", fmt.Errorf("session token has no subject")
	}
	return subject, nil
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		// Optionally log 500s that weren't panics (e.g. manually set by handlers)
		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// ColoredHTTPLoggingMiddleware logs HTTP requests with colored output based on status codes
func ColoredHTTPLoggingMiddleware(next http.Handler) http.Handler {
	// Set up colored console writer for development
	colorLogger := zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		duration := time.Since(start)

		// Color-code based on HTTP status codes
		var logEvent *zerolog.Event
		switch {
		case srw.status >= 500:
			logEvent = colorLogger.Error()
		case srw.status >= 400:
			logEvent = colorLogger.Warn()
		default:
			logEvent = colorLogger.Info()
		}

		logEvent.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", srw.status).
			Dur("duration", duration).
			Str("remote_addr", r.RemoteAddr).
			Msg("HTTP Request")
	})
}
