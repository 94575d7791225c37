package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ryunskeee/idolmatch/internal/auth"
	"github.com/ryunskeee/idolmatch/internal/domain"
	"github.com/ryunskeee/idolmatch/internal/http/middleware"
	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/services"
	"github.com/ryunskeee/idolmatch/internal/storage"
)

// ---------- test DB + API harness ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())
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
	db.Exec("PRAGMA foreign_keys=ON;")
	if _, err := repo.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// stubVerifier accepts "tok-<uid>" and rejects everything else.
var stubVerifier = auth.VerifierFunc(func(_ context.Context, token string) (auth.Identity, error) {
	if uid, found := strings.CutPrefix(token, "tok-"); found && uid != "" {
		return auth.Identity{UID: uid}, nil
	}
	return auth.Identity{}, auth.ErrUnauthenticated
})

type testAPI struct {
	db    *gorm.DB
	store *storage.Local
	r     *gin.Engine
}

// newTestAPI wires real services over sqlite and a temp-dir store.
func newTestAPI(t *testing.T, admins ...string) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := newHandlerDB(t)
	store, err := storage.NewLocal(t.TempDir(), "/static")
	if err != nil {
		t.Fatalf("local store: %v", err)
	}
	isAdmin := func(uid string) bool {
		for _, a := range admins {
			if a == uid {
				return true
			}
		}
		return false
	}
	idem := &services.IdempotencyService{DB: db}
	h := New(Services{
		Accounts:  &services.AccountService{DB: db},
		Rooms:     &services.RoomService{DB: db},
		Reactions: &services.ReactionService{DB: db},
		Profiles:  &services.ProfileService{DB: db, Store: store},
		Matches:   &services.MatchService{DB: db, Store: store, IsAdmin: isAdmin},
		Champion:  &services.ChampionService{DB: db, Store: store},
		Idem:      idem,
	}, stubVerifier)

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Identity(stubVerifier))
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, idem.Lookup))
	h.Register(r.Group("/api"))
	return &testAPI{db: db, store: store, r: r}
}

// ---------- request helpers ----------

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func (a *testAPI) json(method, path string, body any, hdr ...string) *httptest.ResponseRecorder {
	var rd io.Reader = http.NoBody
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	return a.do(req)
}

func rawJSON(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func (a *testAPI) form(path string, fields map[string]string) *httptest.ResponseRecorder {
	vals := make([]string, 0, len(fields))
	for k, v := range fields {
		vals = append(vals, k+"="+v)
	}
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(strings.Join(vals, "&")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

// multipartReq builds a multipart request; file may be empty to omit it.
func multipartReq(t *testing.T, path string, fields map[string]string, fileField, filename string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("create file: %v", err)
		}
		_, _ = fw.Write(content)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeErr(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("decode error body %q: %v", w.Body.String(), err)
	}
	return e
}

func expectCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status=%d want %d body=%s", w.Code, status, w.Body.String())
	}
	if code != "" {
		if got := decodeErr(t, w).Code; got != code {
			t.Fatalf("code=%q want %q", got, code)
		}
	}
}

func expectOK(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != `{"result":"ok"}` {
		t.Fatalf("status=%d body=%s; want 200 {\"result\":\"ok\"}", w.Code, w.Body.String())
	}
}

func seedUser(t *testing.T, db *gorm.DB, u domain.User) {
	t.Helper()
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

var pngBytes = []byte("\x89PNG\r\n\x1a\nfake")
