package web

import (
	"net/http"
	"strings"
	"time"

	"compareaid/web/api"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
	"golang.org/x/time/rate"
)

// SessionCookie names the cookie that ties a browser tab to its search state.
const SessionCookie = "session_id"

// CorsMiddleware handles CORS headers for cross-origin requests
func CorsMiddleware(c rweb.Context) error {
	c.Response().SetHeader("Access-Control-Allow-Origin", "*")
	c.Response().SetHeader("Access-Control-Allow-Methods", "GET, OPTIONS")
	c.Response().SetHeader("Access-Control-Allow-Headers",
		"Content-Type, X-Requested-With, HX-Request, HX-Target, HX-Trigger, HX-Current-URL")

	// Preflight
	if c.Request().Method() == "OPTIONS" {
		c.SetStatus(http.StatusOK)
		return nil
	}

	return c.Next()
}

// SessionMiddleware makes sure every request carries a session id,
// issuing a new one when the cookie is missing or malformed.
func SessionMiddleware(c rweb.Context) error {
	sessionID, err := c.GetCookie(SessionCookie)
	if err != nil || uuid.Validate(sessionID) != nil {
		sessionID = uuid.NewString()
		if err := c.SetCookie(SessionCookie, sessionID); err != nil {
			logger.LogErr(err, "failed to set session cookie")
		}
	}
	c.Set("session_id", sessionID)

	return c.Next()
}

func sessionID(c rweb.Context) string {
	if id, ok := c.Get("session_id").(string); ok && id != "" {
		return id
	}
	return uuid.NewString()
}

// SecurityHeadersMiddleware adds security headers to responses
func SecurityHeadersMiddleware(c rweb.Context) error {
	c.Response().SetHeader("X-Content-Type-Options", "nosniff")
	c.Response().SetHeader("X-Frame-Options", "DENY")
	c.Response().SetHeader("Referrer-Policy", "strict-origin-when-cross-origin")

	// htmx comes from unpkg; the menu button uses an inline handler
	csp := []string{
		"default-src 'self'",
		"script-src 'self' 'unsafe-inline' https://unpkg.com",
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data: https:",
		"connect-src 'self'",
	}
	c.Response().SetHeader("Content-Security-Policy", strings.Join(csp, "; "))

	return c.Next()
}

// limitedPath reports whether a path counts against the rate limit.
// The health probe is exempt.
func limitedPath(path string) bool {
	if path == "/api/health" {
		return false
	}
	return path == "/search" || strings.HasPrefix(path, "/api/")
}

const unknownClient = "unknown"

func clientIP(c rweb.Context) string {
	ip := c.Request().Header("X-Forwarded-For")
	if ip != "" {
		// first hop is the client
		ip, _, _ = strings.Cut(ip, ",")
		return strings.TrimSpace(ip)
	}
	if ip = c.Request().Header("X-Real-IP"); ip != "" {
		return ip
	}
	return unknownClient
}

// RateLimitMiddleware allows each client requestsPerMinute calls to the
// backend endpoints, with bursts up to the same number.
// A limit below 1 disables limiting.
func RateLimitMiddleware(requestsPerMinute int) rweb.Handler {
	if requestsPerMinute < 1 {
		return func(c rweb.Context) error { return c.Next() }
	}

	// Recently seen clients only; an evicted client starts with a full bucket.
	limiters, _ := lru.New[string, *rate.Limiter](4096)
	every := rate.Every(time.Minute / time.Duration(requestsPerMinute))

	return func(c rweb.Context) error {
		if !limitedPath(c.Request().Path()) {
			return c.Next()
		}

		ip := clientIP(c)
		limiter, ok := limiters.Get(ip)
		if !ok {
			limiter = rate.NewLimiter(every, requestsPerMinute)
			limiters.Add(ip, limiter)
		}

		if !limiter.Allow() {
			logger.Info("Rate limit exceeded", "ip", ip, "path", c.Request().Path())
			c.Response().SetHeader("Retry-After", "60")
			c.SetStatus(http.StatusTooManyRequests)
			return c.WriteJSON(api.ErrorResponse{Error: "Too many requests"})
		}

		return c.Next()
	}
}

// LoggingMiddleware provides detailed request logging
func LoggingMiddleware(c rweb.Context) error {
	start := time.Now()

	logger.Debug("Request started",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"ip", clientIP(c),
	)

	err := c.Next()

	logger.Debug("Request completed",
		"method", c.Request().Method(),
		"path", c.Request().Path(),
		"duration", time.Since(start),
		"error", err,
	)

	return err
}
