package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChampionUploadRequest holds the non-file fields of POST /champion_image.
type ChampionUploadRequest struct {
	IDToken string `form:"idToken"`
}

// URLResponse returns the public URL of a stored image.
type URLResponse struct {
	URL string `json:"url" example:"/static/champion_images/stage.png"`
}

// ListChampionImages godoc
// @ID          listChampionImages
// @Summary     List the champion gallery
// @Tags        Champion
// @Produce     json
// @Success     200  {array}   string
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /champion_image [get]
func (h *Handlers) ListChampionImages(c *gin.Context) {
	urls, err := h.svc.Champion.List(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	if urls == nil {
		urls = []string{}
	}
	ok(c, http.StatusOK, urls)
}

// UploadChampionImage godoc
// @ID          uploadChampionImage
// @Summary     Add an image to the champion gallery
// @Description Only the top-ranked user (level, then point) may upload. Same file names overwrite.
// @Tags        Champion
// @Accept      multipart/form-data
// @Produce     json
// @Param       idToken  formData  string  true  "Identity token"
// @Param       image    formData  file    true  "Image"
// @Success     200  {object}  handlers.URLResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Missing or disallowed file"
// @Failure     401  {object}  handlers.ErrorResponse  "Authentication failed"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the champion"
// @Failure     413  {object}  handlers.ErrorResponse  "Upload too large"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /champion_image [post]
func (h *Handlers) UploadChampionImage(c *gin.Context) {
	var req ChampionUploadRequest
	if !bind(c, &req) {
		return
	}
	uid, authed := h.authenticate(c, req.IDToken)
	if !authed {
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
	url, err := h.svc.Champion.Upload(c.Request.Context(), uid, name, f)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, URLResponse{URL: url})
}
