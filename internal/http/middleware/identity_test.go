package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/ryunskeee/idolmatch/internal/auth"
)

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":      "abc",
		"bearer  abc ":    "abc",
		"BEARER x.y.z":    "x.y.z",
		"Basic abc":       "",
		"Bearer":          "",
		"Bearer ":         "",
		"":                "",
		"Token abc":       "",
		"  Bearer  tok-1": "tok-1",
	}
	for in, want := range cases {
		if got := BearerToken(in); got != want {
			t.Fatalf("BearerToken(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	verifier := auth.VerifierFunc(func(_ context.Context, token string) (auth.Identity, error) {
		if uid, ok := strings.CutPrefix(token, "tok-"); ok {
			return auth.Identity{UID: uid}, nil
		}
		return auth.Identity{}, errors.New("bad token")
	})

	cases := []struct {
		name   string
		header string
		v      auth.Verifier
		want   string
	}{
		{"valid", "Bearer tok-u1", verifier, "u1"},
		{"invalid token continues anonymously", "Bearer nope", verifier, ""},
		{"no header", "", verifier, ""},
		{"nil verifier", "Bearer tok-u1", nil, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.Use(Identity(tc.v))
			var got string
			r.GET("/me", func(c *gin.Context) {
				got = UserID(c)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			r.ServeHTTP(w, req)
			if w.Code != http.StatusOK || got != tc.want {
				t.Fatalf("status=%d uid=%q; want 200 %q", w.Code, got, tc.want)
			}
		})
	}
}

func TestUserID_NonString(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Set(UserIDKey, 42)
	if UserID(c) != "" {
		t.Fatalf("non-string uid must read as empty")
	}
}
