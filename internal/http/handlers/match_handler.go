package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ryunskeee/idolmatch/internal/domain"
	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/services"
)

// CreateMatchPostRequest holds the non-file fields of POST /match_post.
type CreateMatchPostRequest struct {
	IDToken  string `form:"idToken"`
	Caption  string `form:"caption"`
	XAccount string `form:"xAccount"`
	Feature  string `form:"feature"`
	IdolName string `form:"idolName"`
}

// MatchPostIDRequest names one match post.
type MatchPostIDRequest struct {
	IDToken string   `json:"idToken" form:"idToken"`
	PostID  flexUint `json:"post_id" form:"post_id" swaggertype:"integer" example:"7"`
}

// ListMatchPosts godoc
// @ID          listMatchPosts
// @Summary     Browse the matching board
// @Description Newest first. The feature filter folds full-width characters, drops spaces and surrounding '#', then matches the whole tag. Supports weak ETag via If-None-Match.
// @Tags        Matching
// @Produce     json
// @Param       feature        query   string  false  "Tag filter"  example(#cute)
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {array}   repo.MatchRow
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /match_idols [get]
func (h *Handlers) ListMatchPosts(c *gin.Context) {
	ctx := c.Request.Context()
	filter := c.Query("feature")

	if st, err := h.svc.Matches.Stats(ctx); err == nil {
		if notModified(c, "match:"+url.PathEscape(domain.FilterTag(filter)), st) {
			return
		}
	}

	rows, err := h.svc.Matches.List(ctx, filter)
	if err != nil {
		serviceError(c, err)
		return
	}
	if rows == nil {
		rows = []repo.MatchRow{}
	}
	ok(c, http.StatusOK, rows)
}

// CreateMatchPost godoc
// @ID          createMatchPost
// @Summary     Post an image to the matching board
// @Description Accepts png, jpg, jpeg and gif. Honours an optional Idempotency-Key.
// @Tags        Matching
// @Accept      multipart/form-data
// @Produce     json
// @Param       Idempotency-Key  header    string  false  "Idempotency key"
// @Param       idToken          formData  string  true   "Identity token"
// @Param       image            formData  file    true   "Image"
// @Param       caption          formData  string  false  "Caption"
// @Param       xAccount         formData  string  false  "X account"
// @Param       feature          formData  string  false  "Hashtags"  example(#cute #idol)
// @Param       idolName         formData  string  false  "Idol name"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or disallowed file"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     413  {object}  handlers.ErrorResponse  "Upload too large"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /match_post [post]
func (h *Handlers) CreateMatchPost(c *gin.Context) {
	var req CreateMatchPostRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	if h.replayed(c, uid, services.ScopeMatchPost) {
		done(c)
		return
	}
	name, f, err := formFile(c, "image")
	if err != nil {
		uploadError(c, err)
		return
	}
	if f != nil {
		defer f.Close()
	}
	mp, err := h.svc.Matches.Create(c.Request.Context(), uid, services.CreateMatchPostInput{
		Caption:  req.Caption,
		XAccount: req.XAccount,
		Feature:  req.Feature,
		IdolName: req.IdolName,
		Filename: name,
		Image:    f,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	h.remember(c, uid, services.ScopeMatchPost, mp.ID)
	done(c)
}

// ListMyMatchPosts godoc
// @ID          listMyMatchPosts
// @Summary     List the caller's match posts
// @Tags        Matching
// @Accept      json
// @Produce     json
// @Param       Authorization  header  string                 false  "Bearer token (alternative to idToken)"
// @Param       body           body    handlers.TokenRequest  false  "Identity token"
// @Success     200  {array}   services.OwnMatchPost
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /my_match_posts [post]
func (h *Handlers) ListMyMatchPosts(c *gin.Context) {
	var req TokenRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	posts, err := h.svc.Matches.ListMine(c.Request.Context(), uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, posts)
}

// DeleteMatchPost godoc
// @ID          deleteMatchPost
// @Summary     Delete one of the caller's match posts
// @Description Posts by other users are left alone and the call still succeeds.
// @Tags        Matching
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       idToken  formData  string  true  "Identity token"
// @Param       post_id  formData  int     true  "Match post ID"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing post id"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /delete_match_post [post]
func (h *Handlers) DeleteMatchPost(c *gin.Context) {
	var req MatchPostIDRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	if err := h.svc.Matches.DeleteOwn(c.Request.Context(), uid, uint(req.PostID)); err != nil {
		serviceError(c, err)
		return
	}
	done(c)
}

// DeleteAllMyMatchPosts godoc
// @ID          deleteAllMyMatchPosts
// @Summary     Delete every match post of the caller
// @Tags        Matching
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       idToken  formData  string  true  "Identity token"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /delete_all_my_match_posts [post]
func (h *Handlers) DeleteAllMyMatchPosts(c *gin.Context) {
	var req TokenRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	if _, err := h.svc.Matches.DeleteAllOwn(c.Request.Context(), uid); err != nil {
		serviceError(c, err)
		return
	}
	done(c)
}

// DeleteAllMatchPosts godoc
// @ID          deleteAllMatchPosts
// @Summary     Wipe the matching board
// @Description Admin only (ADMIN_UIDS).
// @Tags        Matching
// @Accept      x-www-form-urlencoded
// @Produce     json
// @Param       idToken  formData  string  true  "Identity token"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     403  {object}  handlers.ErrorResponse  "Not an admin"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /delete_all_match_posts [post]
func (h *Handlers) DeleteAllMatchPosts(c *gin.Context) {
	var req TokenRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	if _, err := h.svc.Matches.DeleteAll(c.Request.Context(), uid); err != nil {
		serviceError(c, err)
		return
	}
	done(c)
}

// LikeMatchPost godoc
// @ID          likeMatchPost
// @Summary     Like a match post
// @Description Each user can like a post once; a second like is answered with code "already_liked".
// @Tags        Matching
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.MatchPostIDRequest  true  "Token and post id"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing post id"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     404  {object}  handlers.ErrorResponse  "Match post not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Already liked"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /like_match_post [post]
func (h *Handlers) LikeMatchPost(c *gin.Context) {
	var req MatchPostIDRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	if err := h.svc.Matches.Like(c.Request.Context(), uid, uint(req.PostID)); err != nil {
		serviceError(c, err)
		return
	}
	done(c)
}
