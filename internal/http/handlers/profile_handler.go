package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetProfileRequest is the payload of POST /profile. An absent username
// leaves the current one untouched; a present one, even blank, replaces it.
type SetProfileRequest struct {
	IDToken  string  `json:"idToken" form:"idToken"`
	Profile  string  `json:"profile" form:"profile" example:"Fan since 2019."`
	Username *string `json:"username,omitempty" form:"username" example:"mika"`
}

// UploadIconRequest holds the non-file fields of POST /upload_icon.
type UploadIconRequest struct {
	IDToken string `form:"idToken"`
}

// IconResponse returns the public URL of a stored icon.
type IconResponse struct {
	IconURL string `json:"icon_url" example:"/static/icons/5f2b.../me.png"`
}

// GetProfile godoc
// @ID          getProfile
// @Summary     Read the caller's profile
// @Tags        Profile
// @Produce     json
// @Param       Authorization  header  string  true  "Bearer token"
// @Success     200  {object}  services.Profile
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profile [get]
func (h *Handlers) GetProfile(c *gin.Context) {
	uid, authed := h.authenticate(c, "")
	if !authed {
		return
	}
	p, err := h.svc.Profiles.GetProfile(c.Request.Context(), uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, p)
}

// SetProfile godoc
// @ID          setProfile
// @Summary     Update the caller's profile text and optionally the username
// @Tags        Profile
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.SetProfileRequest  true  "Profile fields"
// @Success     200  {object}  handlers.ResultResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /profile [post]
func (h *Handlers) SetProfile(c *gin.Context) {
	var req SetProfileRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	if err := h.svc.Profiles.SetProfile(c.Request.Context(), uid, req.Profile, req.Username); err != nil {
		serviceError(c, err)
		return
	}
	done(c)
}

// UploadIcon godoc
// @ID          uploadIcon
// @Summary     Upload the caller's icon
// @Description Accepts png, jpg, jpeg and gif.
// @Tags        Profile
// @Accept      multipart/form-data
// @Produce     json
// @Param       idToken  formData  string  true  "Identity token"
// @Param       icon     formData  file    true  "Icon image"
// @Success     200  {object}  handlers.IconResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or disallowed file"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     413  {object}  handlers.ErrorResponse  "Upload too large"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /upload_icon [post]
func (h *Handlers) UploadIcon(c *gin.Context) {
	var req UploadIconRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
		return
	}
	name, f, err := formFile(c, "icon")
	if err != nil {
		uploadError(c, err)
		return
	}
	if f != nil {
		defer f.Close()
	}
	url, err := h.svc.Profiles.UploadIcon(c.Request.Context(), uid, name, f)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, IconResponse{IconURL: url})
}
