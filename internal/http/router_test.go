package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ryunskeee/idolmatch/internal/auth"
	"github.com/ryunskeee/idolmatch/internal/config"
	"github.com/ryunskeee/idolmatch/internal/domain"
	"github.com/ryunskeee/idolmatch/internal/http/handlers"
	"github.com/ryunskeee/idolmatch/internal/http/middleware"
	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/storage"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
	}
	if _, err := repo.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

var testVerifier = auth.VerifierFunc(func(_ context.Context, token string) (auth.Identity, error) {
	if uid, ok := strings.CutPrefix(token, "tok-"); ok && uid != "" {
		return auth.Identity{UID: uid}, nil
	}
	return auth.Identity{}, auth.ErrUnauthenticated
})

func baseConfig() config.Config {
	return config.Config{
		APIBasePath: "/api",
		RateRPS:     100,
		RateBurst:   100,
		RateWindow:  time.Minute,
		OTEL:        config.OTELConfig{ServiceName: "test-svc"},
		Storage:     config.StorageConfig{MaxUploadBytes: 1 << 20},
	}
}

type routerFixture struct {
	r     *gin.Engine
	db    *gorm.DB
	store *storage.Local
}

func newRouter(t *testing.T, cfg config.Config, rdb redis.UniversalClient) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	store, err := storage.NewLocal(t.TempDir(), "/static")
	if err != nil {
		t.Fatalf("store: %v", err)
	}
	r := gin.New()
	RegisterRoutes(r, Deps{DB: db, Store: store, Verifier: testVerifier, Redis: rdb}, cfg)
	return &routerFixture{r: r, db: db, store: store}
}

func (f *routerFixture) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.r.ServeHTTP(w, req)
	return w
}

func jsonReq(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var e handlers.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return e.Code
}

func TestRegisterRoutes_HealthMetricsFallbacks(t *testing.T) {
	f := newRouter(t, baseConfig(), nil)

	w := f.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("health: %d rid=%q", w.Code, w.Header().Get("X-Request-ID"))
	}
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("security headers missing")
	}

	w = f.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "idolmatch_http_requests_total") {
		t.Fatalf("metrics: %d", w.Code)
	}

	w = f.serve(httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound || errCode(t, w) != handlers.ErrCodeNotFound {
		t.Fatalf("no route: %d %s", w.Code, w.Body.String())
	}

	w = f.serve(httptest.NewRequest(http.MethodPut, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed || errCode(t, w) != handlers.ErrCodeMethodNotAllowed {
		t.Fatalf("no method: %d %s", w.Code, w.Body.String())
	}

	// swagger is off by default
	if w := f.serve(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil)); w.Code != http.StatusNotFound {
		t.Fatalf("swagger disabled: %d", w.Code)
	}
}

func TestRegisterRoutes_CORS(t *testing.T) {
	f := newRouter(t, baseConfig(), nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://fan.example")
	if got := f.serve(req).Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-all ACAO = %q", got)
	}

	cfg := baseConfig()
	cfg.CORS.AllowedOrigins = []string{"http://fan.example"}
	f = newRouter(t, cfg, nil)

	pre := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	pre.Header.Set("Origin", "http://fan.example")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPost)
	pre.Header.Set("Access-Control-Request-Headers", "Authorization, Idempotency-Key")
	w := f.serve(pre)
	if w.Header().Get("Access-Control-Allow-Origin") != "http://fan.example" {
		t.Fatalf("preflight ACAO = %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if allow := strings.ToLower(w.Header().Get("Access-Control-Allow-Headers")); !strings.Contains(allow, "idempotency-key") {
		t.Fatalf("allow headers = %q", allow)
	}

	bad := httptest.NewRequest(http.MethodGet, "/health", nil)
	bad.Header.Set("Origin", "http://evil.example")
	if w := f.serve(bad); w.Code != http.StatusForbidden {
		t.Fatalf("disallowed origin: %d", w.Code)
	}
}

func TestRegisterRoutes_APIFlowWithBearer(t *testing.T) {
	f := newRouter(t, baseConfig(), nil)

	req := jsonReq(http.MethodPost, "/api/rooms", `{"name":"stage"}`)
	req.Header.Set("Authorization", "Bearer tok-maker")
	w := f.serve(req)
	if w.Code != http.StatusOK {
		t.Fatalf("create room: %d %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w = f.serve(req)
	if w.Code != http.StatusOK || w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("rooms gzip: %d enc=%q", w.Code, w.Header().Get("Content-Encoding"))
	}

	var room domain.Room
	if err := f.db.First(&room).Error; err != nil || room.CreatorUID != "maker" {
		t.Fatalf("room: %+v err=%v", room, err)
	}

	w = f.serve(jsonReq(http.MethodPost, "/api/posts", fmt.Sprintf(`{"room_id":%d,"content":"hi"}`, room.ID)))
	if w.Code != http.StatusBadRequest || errCode(t, w) != handlers.ErrCodeBadRequest {
		t.Fatalf("anonymous post: %d", w.Code)
	}
}

func TestRegisterRoutes_ReplayBypassesRateLimit(t *testing.T) {
	cfg := baseConfig()
	cfg.RateRPS = 0.0001
	cfg.RateBurst = 2
	f := newRouter(t, cfg, nil)
	room := domain.Room{Name: "r", CreatorUID: "fan"}
	if err := f.db.Create(&room).Error; err != nil {
		t.Fatalf("seed room: %v", err)
	}

	post := func(key string) *httptest.ResponseRecorder {
		req := jsonReq(http.MethodPost, "/api/posts", fmt.Sprintf(`{"room_id":%d,"content":"hello"}`, room.ID))
		req.Header.Set("Authorization", "Bearer tok-fan")
		if key != "" {
			req.Header.Set(middleware.HeaderIdempotencyKey, key)
		}
		return f.serve(req)
	}

	if w := post("k-1"); w.Code != http.StatusOK || w.Header().Get(handlers.HeaderReplayed) != "" {
		t.Fatalf("first: %d replayed=%q", w.Code, w.Header().Get(handlers.HeaderReplayed))
	}
	// the retry neither creates a post nor spends a token
	if w := post("k-1"); w.Code != http.StatusOK || w.Header().Get(handlers.HeaderReplayed) != "true" {
		t.Fatalf("replay: %d replayed=%q", w.Code, w.Header().Get(handlers.HeaderReplayed))
	}
	if w := post(""); w.Code != http.StatusOK {
		t.Fatalf("second token: %d", w.Code)
	}
	if w := post(""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("bucket empty: %d", w.Code)
	}

	var n int64
	f.db.Model(&domain.Post{}).Count(&n)
	if n != 2 {
		t.Fatalf("posts = %d; want 2", n)
	}

	bad := post("has space")
	if bad.Code != http.StatusBadRequest {
		t.Fatalf("bad key: %d", bad.Code)
	}
}

func TestRegisterRoutes_AdminFromConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.AdminUIDs = []string{"boss"}
	f := newRouter(t, cfg, nil)

	w := f.serve(jsonReq(http.MethodPost, "/api/delete_all_match_posts", `{"idToken":"tok-fan"}`))
	if w.Code != http.StatusForbidden {
		t.Fatalf("non-admin wipe: %d", w.Code)
	}
	w = f.serve(jsonReq(http.MethodPost, "/api/delete_all_match_posts", `{"idToken":"tok-boss"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("admin wipe: %d %s", w.Code, w.Body.String())
	}

	nobody := newRouter(t, baseConfig(), nil)
	w = nobody.serve(jsonReq(http.MethodPost, "/api/delete_all_match_posts", `{"idToken":"tok-boss"}`))
	if w.Code != http.StatusForbidden {
		t.Fatalf("empty ADMIN_UIDS must forbid everyone: %d", w.Code)
	}
}

func TestRegisterRoutes_StaticAndSwagger(t *testing.T) {
	cfg := baseConfig()
	cfg.SwaggerEnabled = true
	f := newRouter(t, cfg, nil)

	dir := filepath.Join(f.store.Dir, "icons")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "u1_me.png"), []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	w := f.serve(httptest.NewRequest(http.MethodGet, "/static/icons/u1_me.png", nil))
	if w.Code != http.StatusOK || w.Body.String() != "png" {
		t.Fatalf("static: %d %q", w.Code, w.Body.String())
	}

	w = f.serve(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "/match_idols") {
		t.Fatalf("swagger doc: %d", w.Code)
	}
}

func TestRegisterRoutes_RedisLimiter(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := baseConfig()
	cfg.RateRPS = 0
	cfg.RateBurst = 1
	f := newRouter(t, cfg, rdb)

	if w := f.serve(httptest.NewRequest(http.MethodGet, "/api/rooms", nil)); w.Code != http.StatusOK {
		t.Fatalf("first: %d", w.Code)
	}
	w := f.serve(httptest.NewRequest(http.MethodGet, "/api/rooms", nil))
	if w.Code != http.StatusTooManyRequests || w.Header().Get("Retry-After") != "60" || errCode(t, w) != handlers.ErrCodeRateLimited {
		t.Fatalf("second: %d retry=%q", w.Code, w.Header().Get("Retry-After"))
	}
	if keys := mr.Keys(); len(keys) != 1 || !strings.HasPrefix(keys[0], "idolmatch:rl:ip:") {
		t.Fatalf("redis keys = %v", keys)
	}
}

func TestLimitBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	for _, tc := range []struct {
		max  int64
		want int
	}{{10, http.StatusRequestEntityTooLarge}, {0, http.StatusOK}} {
		r := gin.New()
		r.Use(limitBody(tc.max))
		r.POST("/echo", func(c *gin.Context) {
			if _, err := io.ReadAll(c.Request.Body); err != nil {
				c.Status(http.StatusRequestEntityTooLarge)
				return
			}
			c.Status(http.StatusOK)
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")))
		if w.Code != tc.want {
			t.Fatalf("max=%d: got %d want %d", tc.max, w.Code, tc.want)
		}
	}
}

func TestGroupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	groupWithPrefix(r, "/").GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	groupWithPrefix(r, "").GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || w.Body.String() != want {
			t.Fatalf("GET %s = %d %q", path, w.Code, w.Body.String())
		}
	}
}
