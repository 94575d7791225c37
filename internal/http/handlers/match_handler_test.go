package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ryunskeee/idolmatch/internal/domain"
	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/services"
)

func postMatch(t *testing.T, api *testAPI, uid, feature string, hdr ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := multipartReq(t, "/api/match_post", map[string]string{
		"idToken":  "tok-" + uid,
		"caption":  "look",
		"xAccount": "@" + uid,
		"feature":  feature,
		"idolName": " Rin ",
	}, "image", "stage.jpg", pngBytes)
	for i := 0; i+1 < len(hdr); i += 2 {
		req.Header.Set(hdr[i], hdr[i+1])
	}
	return api.do(req)
}

func listMatches(t *testing.T, api *testAPI, filter string) []repo.MatchRow {
	t.Helper()
	w := api.json(http.MethodGet, "/api/match_idols?feature="+url.QueryEscape(filter), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list: %d %s", w.Code, w.Body.String())
	}
	var rows []repo.MatchRow
	if err := json.Unmarshal(w.Body.Bytes(), &rows); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rows
}

func TestCreateMatchPost_AndFilter(t *testing.T) {
	api := newTestAPI(t)
	seedUser(t, api.db, domain.User{UID: "u1", Username: "mika"})

	expectOK(t, postMatch(t, api, "u1", "＃cute ＃idol"))
	expectOK(t, postMatch(t, api, "u2", "#idol2"))

	var mp domain.MatchPost
	api.db.Where("uid = ?", "u1").First(&mp)
	if mp.Feature != "#cute#idol#" || mp.IdolName != "Rin" {
		t.Fatalf("stored post: %+v", mp)
	}
	if !strings.HasPrefix(mp.ImgURL, "/static/match_images/") || !strings.HasSuffix(mp.ImgURL, "_stage.jpg") {
		t.Fatalf("img_url = %q", mp.ImgURL)
	}

	all := listMatches(t, api, "")
	if len(all) != 2 || all[0].XAccount != "@u2" {
		t.Fatalf("newest first expected: %+v", all)
	}

	rows := listMatches(t, api, "idol")
	if len(rows) != 1 || rows[0].ID != mp.ID {
		t.Fatalf("filter idol must exclude #idol2#: %+v", rows)
	}
	if rows[0].Username == nil || *rows[0].Username != "mika" {
		t.Fatalf("username join missing: %+v", rows[0])
	}
	if got := listMatches(t, api, "＃cute"); len(got) != 1 {
		t.Fatalf("full-width filter: %+v", got)
	}
	if got := listMatches(t, api, "nothing"); len(got) != 0 {
		t.Fatalf("expected empty list, got %+v", got)
	}
}

func TestCreateMatchPost_Validation(t *testing.T) {
	api := newTestAPI(t)

	w := api.do(multipartReq(t, "/api/match_post", map[string]string{"caption": "x"}, "image", "a.png", pngBytes))
	expectCode(t, w, http.StatusUnauthorized, ErrCodeUnauthorized)

	w = api.do(multipartReq(t, "/api/match_post", map[string]string{"idToken": "tok-u1"}, "", "", nil))
	expectCode(t, w, http.StatusBadRequest, ErrCodeBadRequest)

	w = api.do(multipartReq(t, "/api/match_post", map[string]string{"idToken": "tok-u1"}, "image", "a.bmp", pngBytes))
	expectCode(t, w, http.StatusBadRequest, ErrCodeBadRequest)

	var n int64
	api.db.Model(&domain.MatchPost{}).Count(&n)
	if n != 0 {
		t.Fatalf("nothing should be stored, got %d", n)
	}
}

func TestCreateMatchPost_IdempotencyReplay(t *testing.T) {
	api := newTestAPI(t)
	expectOK(t, postMatch(t, api, "u1", "#a", "Idempotency-Key", "mp-1"))
	w := postMatch(t, api, "u1", "#a", "Idempotency-Key", "mp-1")
	expectOK(t, w)
	if w.Header().Get(HeaderReplayed) != "true" {
		t.Fatalf("replay header missing")
	}
	var n int64
	api.db.Model(&domain.MatchPost{}).Count(&n)
	if n != 1 {
		t.Fatalf("posts = %d; want 1", n)
	}
}

func TestListMatchPosts_ETag(t *testing.T) {
	api := newTestAPI(t)
	expectOK(t, postMatch(t, api, "u1", "#a"))

	w := api.json(http.MethodGet, "/api/match_idols?feature=a", nil)
	etag := w.Header().Get("ETag")
	req := httptest.NewRequest(http.MethodGet, "/api/match_idols?feature=a", nil)
	req.Header.Set("If-None-Match", etag)
	if w = api.do(req); w.Code != http.StatusNotModified {
		t.Fatalf("want 304, got %d", w.Code)
	}

	// a different filter has a different tag
	req = httptest.NewRequest(http.MethodGet, "/api/match_idols?feature=b", nil)
	req.Header.Set("If-None-Match", etag)
	if w = api.do(req); w.Code != http.StatusOK {
		t.Fatalf("other filter must not match, got %d", w.Code)
	}
}

func TestLikeMatchPost(t *testing.T) {
	api := newTestAPI(t)
	expectOK(t, postMatch(t, api, "u1", ""))
	var mp domain.MatchPost
	api.db.First(&mp)

	body := map[string]any{"idToken": "tok-fan", "post_id": mp.ID}
	expectOK(t, api.json(http.MethodPost, "/api/like_match_post", body))

	w := api.json(http.MethodPost, "/api/like_match_post", body)
	expectCode(t, w, http.StatusConflict, ErrCodeAlreadyLiked)

	api.db.First(&mp, mp.ID)
	if mp.Likes != 1 {
		t.Fatalf("likes = %d; want 1", mp.Likes)
	}

	w = api.json(http.MethodPost, "/api/like_match_post", map[string]any{"idToken": "tok-fan", "post_id": 999})
	expectCode(t, w, http.StatusNotFound, ErrCodeNotFound)
	w = api.json(http.MethodPost, "/api/like_match_post", map[string]any{"idToken": "tok-fan"})
	expectCode(t, w, http.StatusBadRequest, ErrCodeBadRequest)
	w = api.json(http.MethodPost, "/api/like_match_post", map[string]any{"post_id": mp.ID})
	expectCode(t, w, http.StatusUnauthorized, ErrCodeUnauthorized)
}

func TestMyMatchPosts_AndDeletes(t *testing.T) {
	api := newTestAPI(t, "admin")
	expectOK(t, postMatch(t, api, "me", "#a"))
	expectOK(t, postMatch(t, api, "me", "#b"))
	expectOK(t, postMatch(t, api, "them", "#c"))

	w := api.json(http.MethodPost, "/api/my_match_posts", nil, "Authorization", "Bearer tok-me")
	var mine []services.OwnMatchPost
	if err := json.Unmarshal(w.Body.Bytes(), &mine); err != nil || len(mine) != 2 {
		t.Fatalf("mine: %s err=%v", w.Body.String(), err)
	}
	if mine[0].Feature != "#b#" {
		t.Fatalf("newest first expected: %+v", mine)
	}

	w = api.json(http.MethodPost, "/api/my_match_posts", map[string]string{"idToken": "tok-nobody"})
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("empty list expected: %d %s", w.Code, w.Body.String())
	}

	var theirs domain.MatchPost
	api.db.Where("uid = ?", "them").First(&theirs)

	// someone else's post: silent no-op
	expectOK(t, api.form("/api/delete_match_post", map[string]string{"idToken": "tok-me", "post_id": fmt.Sprint(theirs.ID)}))
	w = api.form("/api/delete_match_post", map[string]string{"idToken": "tok-me"})
	expectCode(t, w, http.StatusBadRequest, ErrCodeBadRequest)

	expectOK(t, api.form("/api/delete_match_post", map[string]string{"idToken": "tok-me", "post_id": fmt.Sprint(mine[0].ID)}))
	expectOK(t, api.form("/api/delete_all_my_match_posts", map[string]string{"idToken": "tok-me"}))

	var left []domain.MatchPost
	api.db.Find(&left)
	if len(left) != 1 || left[0].ID != theirs.ID {
		t.Fatalf("only their post should remain: %+v", left)
	}

	w = api.form("/api/delete_all_match_posts", map[string]string{"idToken": "tok-me"})
	expectCode(t, w, http.StatusForbidden, ErrCodeForbidden)
	w = api.form("/api/delete_all_match_posts", map[string]string{})
	expectCode(t, w, http.StatusUnauthorized, ErrCodeUnauthorized)

	expectOK(t, api.json(http.MethodPost, "/api/delete_all_match_posts", map[string]string{"idToken": "tok-admin"}))
	var n int64
	api.db.Model(&domain.MatchPost{}).Count(&n)
	if n != 0 {
		t.Fatalf("board not wiped: %d left", n)
	}
}
