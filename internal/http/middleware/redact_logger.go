package middleware

// RedactingLogger is the access logger installed by the router. It behaves
// like Logger but never lets credentials reach the log: Firebase ID tokens
// travel in the "idToken" query/form value or the Authorization header, and
// both are masked. Bodies are never logged.

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const redacted = "[REDACTED]"

var (
	uuidRE = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[1-5][0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}\b`)
	// JWTs are three base64url segments; Firebase ID tokens start with "eyJ".
	jwtRE   = regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]*`)
	emailRE = regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`)
	// digits only, so it cannot eat into hex ids
	phoneRE = regexp.MustCompile(`\b(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{2,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{4}\b`)
)

// RedactOptions extends the built-in masks.
type RedactOptions struct {
	// MaskHeaders are header names (case-insensitive) logged as [REDACTED],
	// on top of Authorization, Cookie and Set-Cookie.
	MaskHeaders []string
	// MaskParams are query parameter names whose values are dropped, on top
	// of idToken and id_token.
	MaskParams []string
}

// RedactingLogger logs one line per request with scrubbed query and headers
// and attaches the request-scoped logger to the Gin and request contexts.
func RedactingLogger(opts RedactOptions) gin.HandlerFunc {
	headers := lowerSet([]string{"authorization", "cookie", "set-cookie"}, opts.MaskHeaders)
	params := lowerSet([]string{"idtoken", "id_token"}, opts.MaskParams)

	return func(c *gin.Context) {
		start := time.Now()

		safeHeaders := make(map[string]string, len(c.Request.Header))
		for k, vv := range c.Request.Header {
			if _, ok := headers[strings.ToLower(k)]; ok {
				safeHeaders[k] = redacted
				continue
			}
			safeHeaders[k] = scrub(strings.Join(vv, ", "))
		}

		l := log.With().
			Str("request_id", c.GetString(requestIDKey)).
			Str("user_id", UserID(c)).
			Str("method", c.Request.Method).
			Str("path", routePath(c)).
			Logger()
		attachLogger(c, &l)

		c.Next()

		emit(&l, c, time.Since(start)).
			Str("query", truncate(scrubQuery(c.Request.URL.RawQuery, params), maxQueryLogLength)).
			Interface("headers", safeHeaders).
			Msg("http_request")
	}
}

// scrubQuery drops masked parameters and scrubs the rest. An unparsable
// query is scrubbed as a whole.
func scrubQuery(raw string, params map[string]struct{}) string {
	if raw == "" {
		return ""
	}
	q, err := url.ParseQuery(raw)
	if err != nil {
		return scrub(raw)
	}
	for k, vv := range q {
		if _, ok := params[strings.ToLower(k)]; ok {
			q[k] = []string{redacted}
			continue
		}
		for i := range vv {
			vv[i] = scrub(vv[i])
		}
	}
	return q.Encode()
}

// scrub masks tokens, ids, emails and phone numbers, in that order: each
// pattern is looser than the one before it.
func scrub(s string) string {
	if s == "" {
		return s
	}
	s = jwtRE.ReplaceAllString(s, "[REDACTED:token]")
	s = uuidRE.ReplaceAllString(s, "[REDACTED:id]")
	s = emailRE.ReplaceAllString(s, "[REDACTED:email]")
	return phoneRE.ReplaceAllString(s, "[REDACTED:phone]")
}

func lowerSet(base, extra []string) map[string]struct{} {
	set := make(map[string]struct{}, len(base)+len(extra))
	for _, s := range append(base, extra...) {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			set[s] = struct{}{}
		}
	}
	return set
}
