package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/services"
	"github.com/ryunskeee/idolmatch/internal/utils"
)

// CreateRoomRequest is the payload of POST /rooms. When a token is present
// the verified uid becomes the creator and creator_uid is ignored.
type CreateRoomRequest struct {
	IDToken    string `json:"idToken,omitempty" form:"idToken"`
	Name       string `json:"name" form:"name" example:"live-report"`
	CreatorUID string `json:"creator_uid" form:"creator_uid" example:"uid-123"`
}

// TokenRequest carries only an identity token.
type TokenRequest struct {
	IDToken string `json:"idToken" form:"idToken"`
}

// CreatePostRequest is the payload of POST /posts.
type CreatePostRequest struct {
	IDToken string   `json:"idToken" form:"idToken"`
	Content string   `json:"content" form:"content" example:"see you at the show"`
	RoomID  flexUint `json:"room_id" form:"room_id" swaggertype:"integer" example:"3"`
}

// SuccessResponse acknowledges a created post.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// ReactionRequest is the payload of POST /reaction.
type ReactionRequest struct {
	PostID   flexUint `json:"post_id" form:"post_id" swaggertype:"integer" example:"12"`
	Reaction string   `json:"reaction" form:"reaction" enums:"like,heart" example:"like"`
}

// ListRooms godoc
// @ID          listRooms
// @Summary     List rooms
// @Tags        Rooms
// @Produce     json
// @Success     200  {array}   services.RoomView
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /rooms [get]
func (h *Handlers) ListRooms(c *gin.Context) {
	rooms, err := h.svc.Rooms.ListRooms(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, rooms)
}

// CreateRoom godoc
// @ID          createRoom
// @Summary     Create a room
// @Description Room names are unique; a taken name is answered with code "conflict".
// @Tags        Rooms
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.CreateRoomRequest  true  "Room name and creator"
// @Success     200  {object}  services.RoomView
// @Failure     400  {object}  handlers.ErrorResponse  "Missing field or duplicate name"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /rooms [post]
func (h *Handlers) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if !bind(c, &req) {
		return
	}
	creator := req.CreatorUID
	if hasToken(c, req.IDToken) {
		uid, authed := h.authenticate(c, req.IDToken)
		if !authed {
			return
		}
		creator = uid
	}
	room, err := h.svc.Rooms.CreateRoom(c.Request.Context(), req.Name, creator)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, room)
}

// DeleteRoom godoc
// @ID          deleteRoom
// @Summary     Delete a room and its posts
// @Description Only the room's creator may delete it; an unknown room is forbidden too.
// @Tags        Rooms
// @Accept      json
// @Produce     json
// @Param       id             path    int                    true   "Room ID"
// @Param       Authorization  header  string                 false  "Bearer token (alternative to idToken)"
// @Param       body           body    handlers.TokenRequest  false  "Identity token"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad room id"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the creator"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /rooms/{id} [delete]
func (h *Handlers) DeleteRoom(c *gin.Context) {
	roomID, valid := utils.ParseID(c.Param("id"))
	if !valid {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "room id must be a positive integer")
		return
	}
	var req TokenRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	if err := h.svc.Rooms.DeleteRoom(c.Request.Context(), uid, roomID); err != nil {
		serviceError(c, err)
		return
	}
	done(c)
}

// ListPosts godoc
// @ID          listPosts
// @Summary     List the posts of a room
// @Description Newest first. A missing or malformed room_id yields an empty list. Supports weak ETag via If-None-Match.
// @Tags        Posts
// @Produce     json
// @Param       room_id        query   int     false  "Room ID"
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Success     200  {array}   repo.PostRow
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /posts [get]
func (h *Handlers) ListPosts(c *gin.Context) {
	roomID, valid := utils.ParseID(c.Query("room_id"))
	if !valid {
		ok(c, http.StatusOK, []repo.PostRow{})
		return
	}
	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	if st, err := h.svc.Rooms.PostsStats(ctx, roomID); err == nil {
		if notModified(c, "posts:"+strconv.FormatUint(uint64(roomID), 10), st) {
			return
		}
	}

	rows, err := h.svc.Rooms.ListPosts(ctx, roomID)
	if err != nil {
		serviceError(c, err)
		return
	}
	if rows == nil {
		rows = []repo.PostRow{}
	}
	ok(c, http.StatusOK, rows)
}

// CreatePost godoc
// @ID          createPost
// @Summary     Post a message in a room
// @Description Honours an optional Idempotency-Key: a retried key replays success without a second insert.
// @Tags        Posts
// @Accept      json
// @Produce     json
// @Param       Idempotency-Key  header  string                       false  "Idempotency key"
// @Param       body             body    handlers.CreatePostRequest  true   "Post"
// @Success     200  {object}  handlers.SuccessResponse
// @Header      200  {string}  Idempotency-Replayed  "true when a retried key was replayed"
// @Failure     400  {object}  handlers.ErrorResponse  "Missing token, content or room_id"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     404  {object}  handlers.ErrorResponse  "Room not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /posts [post]
func (h *Handlers) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if !bind(c, &req) {
		return
	}
	// Token, content and room are required together, before any verification.
	if !hasToken(c, req.IDToken) || strings.TrimSpace(req.Content) == "" || req.RoomID == 0 {
		serviceError(c, services.ErrMissingField)
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	if h.replayed(c, uid, services.ScopePosts) {
		ok(c, http.StatusOK, SuccessResponse{Success: true})
		return
	}
	post, err := h.svc.Rooms.CreatePost(c.Request.Context(), uid, req.Content, uint(req.RoomID))
	if err != nil {
		serviceError(c, err)
		return
	}
	h.remember(c, uid, services.ScopePosts, post.ID)
	ok(c, http.StatusOK, SuccessResponse{Success: true})
}

// React godoc
// @ID          react
// @Summary     Like or heart a post
// @Description Anonymous counters; every call counts. Reacting to an unknown post succeeds without effect.
// @Tags        Posts
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ReactionRequest  true  "Post and reaction kind"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing field or unknown reaction"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /reaction [post]
func (h *Handlers) React(c *gin.Context) {
	var req ReactionRequest
	if !bind(c, &req) {
		return
	}
	if err := h.svc.Reactions.React(c.Request.Context(), uint(req.PostID), req.Reaction); err != nil {
		serviceError(c, err)
		return
	}
	done(c)
}
