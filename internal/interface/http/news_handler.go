package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-portal/internal/application"
	repo "github.com/oksasatya/go-auth-portal/internal/domain/repository"
	"github.com/oksasatya/go-auth-portal/internal/infrastructure/storage"
	"github.com/oksasatya/go-auth-portal/pkg/helpers"
	"github.com/oksasatya/go-auth-portal/pkg/response"
)

// MaxImageBytes caps a single news image upload.
const MaxImageBytes = 5 << 20

var errImageTooLarge = errors.New("image exceeds 5MB")

type NewsHandler struct {
	Svc    *application.NewsService
	Logger *logrus.Logger
}

func NewNewsHandler(svc *application.NewsService, logger *logrus.Logger) *NewsHandler {
	return &NewsHandler{Svc: svc, Logger: logger}
}

func newsInputFrom(c *gin.Context) application.NewsInput {
	return application.NewsInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		Author:      c.PostForm("author"),
		Category:    c.PostForm("category"),
	}
}

// imageFrom opens the optional "image" part. The returned close func is never nil.
func imageFrom(c *gin.Context) (*application.Image, func(), error) {
	noop := func() {}
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, err
	}
	if fh.Size > MaxImageBytes {
		return nil, noop, errImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, noop, err
	}
	ct, ext, body, err := storage.SniffImage(f)
	if err != nil {
		_ = f.Close()
		return nil, noop, err
	}
	return &application.Image{ContentType: ct, Ext: ext, Body: body}, func() { _ = f.Close() }, nil
}

func (h *NewsHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]NewsView, 0, len(items))
	for i := range items {
		out = append(out, NewNewsView(&items[i]))
	}
	response.Success(c, http.StatusOK, out, "news", gin.H{"total": len(out)})
}

func (h *NewsHandler) Count(c *gin.Context) {
	n, err := h.Svc.Count(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"count": n}, "news count", nil)
}

func (h *NewsHandler) Get(c *gin.Context) {
	n, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewNewsView(n), "news", nil)
}

func (h *NewsHandler) Create(c *gin.Context) {
	img, closeImg, err := imageFrom(c)
	defer closeImg()
	if err != nil {
		h.fail(c, err)
		return
	}
	n, err := h.Svc.Create(c.Request.Context(), newsInputFrom(c), img)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, NewNewsView(n), "News created", nil)
}

func (h *NewsHandler) Update(c *gin.Context) {
	img, closeImg, err := imageFrom(c)
	defer closeImg()
	if err != nil {
		h.fail(c, err)
		return
	}
	n, err := h.Svc.Update(c.Request.Context(), c.Param("id"), newsInputFrom(c), img)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewNewsView(n), "News updated", nil)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "News deleted successfully", nil)
}

func (h *NewsHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, "Title and description are required", nil)
	case errors.Is(err, storage.ErrUnsupportedImage):
		response.Error(c, http.StatusBadRequest, "Only images are allowed", nil)
	case errors.Is(err, errImageTooLarge):
		response.Error(c, http.StatusBadRequest, "Image is too large", nil)
	case errors.Is(err, repo.ErrContentNotFound):
		response.Error(c, http.StatusNotFound, "News not found", nil)
	default:
		helpers.LogError(h.Logger, "news request failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.Error(c, http.StatusInternalServerError, msgSomethingWrong, nil)
	}
}
