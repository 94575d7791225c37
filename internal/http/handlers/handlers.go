// Package handlers implements the public JSON API of the fan community.
//
// Handlers are transport-thin: they bind the request, resolve the caller's
// identity, call an application service and translate the result (or the
// service's sentinel error) into an HTTP response.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ryunskeee/idolmatch/internal/auth"
	"github.com/ryunskeee/idolmatch/internal/domain"
	"github.com/ryunskeee/idolmatch/internal/http/middleware"
	"github.com/ryunskeee/idolmatch/internal/repo"
	"github.com/ryunskeee/idolmatch/internal/services"
)

//
// Service contracts (context-aware)
//

// AccountService registers usernames.
type AccountService interface {
	RegisterUsername(ctx context.Context, uid, username string) error
	NeedsUsername(ctx context.Context, uid string) (bool, error)
}

// RoomService manages rooms and the posts inside them.
type RoomService interface {
	ListRooms(ctx context.Context) ([]services.RoomView, error)
	CreateRoom(ctx context.Context, name, creatorUID string) (*services.RoomView, error)
	ListPosts(ctx context.Context, roomID uint) ([]repo.PostRow, error)
	PostsStats(ctx context.Context, roomID uint) (repo.ListStats, error)
	CreatePost(ctx context.Context, uid, content string, roomID uint) (*domain.Post, error)
	DeleteRoom(ctx context.Context, uid string, roomID uint) error
}

// ReactionService bumps the like/heart counters of posts.
type ReactionService interface {
	React(ctx context.Context, postID uint, kind string) error
}

// ProfileService reads and edits user profiles.
type ProfileService interface {
	GetProfile(ctx context.Context, uid string) (*services.Profile, error)
	SetProfile(ctx context.Context, uid, profile string, username *string) error
	UploadIcon(ctx context.Context, uid, filename string, r io.Reader) (string, error)
}

// MatchService runs the matching board.
type MatchService interface {
	List(ctx context.Context, filter string) ([]repo.MatchRow, error)
	Stats(ctx context.Context) (repo.ListStats, error)
	ListMine(ctx context.Context, uid string) ([]services.OwnMatchPost, error)
	Create(ctx context.Context, uid string, in services.CreateMatchPostInput) (*domain.MatchPost, error)
	DeleteOwn(ctx context.Context, uid string, postID uint) error
	DeleteAllOwn(ctx context.Context, uid string) (int64, error)
	DeleteAll(ctx context.Context, uid string) (int64, error)
	Like(ctx context.Context, uid string, postID uint) error
}

// ChampionService gates the shared gallery.
type ChampionService interface {
	Upload(ctx context.Context, uid, filename string, r io.Reader) (string, error)
	List(ctx context.Context) ([]string, error)
}

// IdempotencyService remembers completed creates keyed by Idempotency-Key.
type IdempotencyService interface {
	Replayed(ctx context.Context, userID, scope, key string) (bool, error)
	Remember(ctx context.Context, userID, scope, key, resourceID string) error
}

//
// Handler wiring
//

// Services bundles the application services used by Handlers. Idem may be nil,
// in which case Idempotency-Key headers are validated but not honoured.
type Services struct {
	Accounts  AccountService
	Rooms     RoomService
	Reactions ReactionService
	Profiles  ProfileService
	Matches   MatchService
	Champion  ChampionService
	Idem      IdempotencyService
}

// Handlers groups every API endpoint.
type Handlers struct {
	svc      Services
	verifier auth.Verifier
}

// New constructs Handlers bound to the given services and identity verifier.
func New(svc Services, verifier auth.Verifier) *Handlers {
	return &Handlers{svc: svc, verifier: verifier}
}

//
// Identity
//

// authenticate resolves the caller. A token sent in the body wins; otherwise
// the uid verified by middleware.Identity is reused, and as a last resort the
// bearer header is verified here. Every failure is answered with the same 401.
func (h *Handlers) authenticate(c *gin.Context, bodyToken string) (string, bool) {
	token := strings.TrimSpace(bodyToken)
	if token == "" {
		if uid := middleware.UserID(c); uid != "" {
			return uid, true
		}
		token = middleware.BearerToken(c.GetHeader("Authorization"))
	}
	if token == "" || h.verifier == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, auth.ErrUnauthenticated.Error())
		return "", false
	}
	id, err := h.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		middleware.LoggerFrom(c).Debug().Err(err).Msg("token rejected")
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, auth.ErrUnauthenticated.Error())
		return "", false
	}
	c.Set(middleware.UserIDKey, id.UID)
	return id.UID, true
}

// hasToken reports whether the request carries any credential.
func hasToken(c *gin.Context, bodyToken string) bool {
	return strings.TrimSpace(bodyToken) != "" ||
		middleware.UserID(c) != "" ||
		middleware.BearerToken(c.GetHeader("Authorization")) != ""
}

//
// Binding
//

// bind decodes the body according to its Content-Type (JSON, urlencoded or
// multipart form). An empty body is not an error; missing fields are left to
// the services to reject.
func bind(c *gin.Context, obj any) bool {
	err := c.ShouldBind(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	if tooLarge(err) {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
		return false
	}
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
	return false
}

func tooLarge(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}

// formFile opens an uploaded file. A missing file yields ("", nil, nil) so the
// service decides how to report it.
func formFile(c *gin.Context, field string) (string, multipart.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil, nil
		}
		return "", nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return "", nil, err
	}
	return fh.Filename, f, nil
}

func uploadError(c *gin.Context, err error) {
	if tooLarge(err) {
		fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
		return
	}
	fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid upload")
}

// flexUint accepts a JSON number, a numeric string or a form value. Blank
// and non-positive inputs decode to zero, which services treat as missing.
type flexUint uint

func (u *flexUint) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*u = 0
		return nil
	}
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	} else {
		var n json.Number
		if err := json.Unmarshal(b, &n); err != nil {
			return err
		}
	}
	return u.UnmarshalParam(s)
}

// UnmarshalParam implements binding.BindUnmarshaler for form values.
func (u *flexUint) UnmarshalParam(param string) error {
	param = strings.TrimSpace(param)
	if param == "" {
		*u = 0
		return nil
	}
	n, err := strconv.ParseInt(param, 10, 64)
	if err != nil {
		return fmt.Errorf("not an id: %q", param)
	}
	if n < 0 {
		n = 0
	}
	*u = flexUint(n)
	return nil
}

//
// Errors
//

// serviceError maps service sentinels onto the error envelope. Anything not
// recognised is logged and answered with a generic 500.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, auth.ErrUnauthenticated):
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, auth.ErrUnauthenticated.Error())
	case errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrMissingFile),
		errors.Is(err, services.ErrDisallowedFileType),
		errors.Is(err, services.ErrInvalidReaction):
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateRoomName):
		fail(c, http.StatusBadRequest, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrAlreadyLiked):
		fail(c, http.StatusConflict, ErrCodeAlreadyLiked, err.Error())
	case errors.Is(err, services.ErrForbidden):
		fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrRoomNotFound),
		errors.Is(err, services.ErrMatchPostNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case tooLarge(err):
		fail(c, http.StatusRequestEntityTooLarge, ErrCodeTooLarge, "request body too large")
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
	}
}

//
// Conditional responses
//

// notModified sets a weak ETag derived from st and answers 304 when the
// client already holds it. It reports whether the response was written.
func notModified(c *gin.Context, scope string, st repo.ListStats) bool {
	etag := fmt.Sprintf(`W/"%s:%d:%d:%d:%d"`, scope, st.Count, st.MaxID, st.Counter, st.UsersUpdated.UnixNano())
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

//
// Idempotency
//

// HeaderReplayed marks responses served for a retried Idempotency-Key.
const HeaderReplayed = "Idempotency-Replayed"

// replayed reports whether uid already completed this request under the
// Idempotency-Key. The middleware's own check keyed on the bearer identity
// only drives the rate-limit bypass; here the uid is the one that was
// actually authenticated. Lookup failures are logged and treated as a miss.
func (h *Handlers) replayed(c *gin.Context, uid, scope string) bool {
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok || h.svc.Idem == nil {
		return false
	}
	hit, err := h.svc.Idem.Replayed(c.Request.Context(), uid, scope, key)
	if err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency lookup failed")
		return false
	}
	if hit {
		c.Header(HeaderReplayed, "true")
	}
	return hit
}

// remember records a completed create. Failures only cost the replay.
func (h *Handlers) remember(c *gin.Context, uid, scope string, resourceID uint) {
	key, ok := middleware.GetIdempotencyKey(c)
	if !ok || h.svc.Idem == nil {
		return
	}
	if err := h.svc.Idem.Remember(c.Request.Context(), uid, scope, key, strconv.FormatUint(uint64(resourceID), 10)); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Msg("idempotency record failed")
	}
}
