package handlers_test

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-auth-portal/internal/application"
	"github.com/oksasatya/go-auth-portal/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-auth-portal/internal/interface/http"
	"github.com/oksasatya/go-auth-portal/internal/interface/middleware"
	"github.com/oksasatya/go-auth-portal/internal/mocks"
	"github.com/oksasatya/go-auth-portal/pkg/helpers"
)

type contentServer struct {
	engine  *gin.Engine
	uploads *mocks.MockUploadSink
	token   string
}

func newContentServer(t *testing.T) *contentServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwt := helpers.NewJWTManager(helpers.JWTConfig{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    time.Hour,
	})
	token, _, err := jwt.IssueAccessToken("acc-1", "a@x.com")
	require.NoError(t, err)

	uploads := &mocks.MockUploadSink{}
	news := handlers.NewNewsHandler(application.NewNewsService(memory.NewNewsRepository(), uploads, helpers.NopLogger()), helpers.NopLogger())
	services := handlers.NewServiceHandler(application.NewCatalogService(memory.NewServiceRepository()), helpers.NopLogger())

	r := gin.New()
	api := r.Group("/api")
	api.GET("/news", news.List)
	api.GET("/news/count", news.Count)
	api.GET("/news/:id", news.Get)
	api.GET("/services", services.List)
	api.GET("/services/:id", services.Get)

	w := api.Group("", middleware.Auth(jwt))
	w.POST("/news", news.Create)
	w.PUT("/news/:id", news.Update)
	w.DELETE("/news/:id", news.Delete)
	w.POST("/services", services.Create)
	w.PUT("/services/:id", services.Update)
	w.DELETE("/services/:id", services.Delete)

	return &contentServer{engine: r, uploads: uploads, token: token}
}

func (s *contentServer) serve(t *testing.T, req *http.Request, authed bool) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	if authed {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, file []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("image", "upload.bin")
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, path string, v any) *http.Request {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestNews_CreateWithImageAndRead(t *testing.T) {
	s := newContentServer(t)
	img := pngBytes(t)

	req := multipartRequest(t, http.MethodPost, "/api/news", map[string]string{
		"title": "Launch", "description": "We shipped", "author": "ann", "category": "product",
	}, img)
	rec, env := s.serve(t, req, true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created handlers.NewsView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "/uploads/news/file.png", created.Image)
	require.Len(t, s.uploads.Saved, 1)
	assert.Equal(t, img, s.uploads.Saved[0])

	rec, env = s.serve(t, httptest.NewRequest(http.MethodGet, "/api/news/"+created.ID, nil), false)
	require.Equal(t, http.StatusOK, rec.Code)
	var got handlers.NewsView
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "Launch", got.Title)

	rec, env = s.serve(t, httptest.NewRequest(http.MethodGet, "/api/news/count", nil), false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))
}

func TestNews_Rejections(t *testing.T) {
	s := newContentServer(t)

	rec, _ := s.serve(t, multipartRequest(t, http.MethodPost, "/api/news", map[string]string{"title": "t", "description": "d"}, nil), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := s.serve(t, multipartRequest(t, http.MethodPost, "/api/news", map[string]string{"title": "t"}, nil), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Title and description are required", env.Message)

	rec, env = s.serve(t, multipartRequest(t, http.MethodPost, "/api/news",
		map[string]string{"title": "t", "description": "d"}, []byte("just some text, not an image")), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Only images are allowed", env.Message)
	assert.Empty(t, s.uploads.Saved)

	rec, env = s.serve(t, httptest.NewRequest(http.MethodGet, "/api/news/missing", nil), false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "News not found", env.Message)

	rec, _ = s.serve(t, httptest.NewRequest(http.MethodDelete, "/api/news/missing", nil), true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNews_UpdateIsPartialAndDelete(t *testing.T) {
	s := newContentServer(t)
	rec, env := s.serve(t, multipartRequest(t, http.MethodPost, "/api/news", map[string]string{"title": "t", "description": "d"}, nil), true)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created handlers.NewsView
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env = s.serve(t, multipartRequest(t, http.MethodPut, "/api/news/"+created.ID, map[string]string{"category": "ops"}, nil), true)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated handlers.NewsView
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "t", updated.Title)
	assert.Equal(t, "ops", updated.Category)

	rec, _ = s.serve(t, httptest.NewRequest(http.MethodDelete, "/api/news/"+created.ID, nil), true)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.serve(t, httptest.NewRequest(http.MethodGet, "/api/news/"+created.ID, nil), false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServices_CRUD(t *testing.T) {
	s := newContentServer(t)

	rec, _ := s.serve(t, jsonRequest(t, http.MethodPost, "/api/services", gin.H{"name": "Hosting", "description": "VPS"}), false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := s.serve(t, jsonRequest(t, http.MethodPost, "/api/services", gin.H{"name": "Hosting", "description": "VPS"}), true)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created handlers.ServiceView
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "default-logo.png", created.Logo)
	assert.Zero(t, created.CommunicationRate)

	rec, env = s.serve(t, jsonRequest(t, http.MethodPut, "/api/services/"+created.ID, gin.H{"communicationRate": 0.75}), true)
	require.Equal(t, http.StatusOK, rec.Code)
	var updated handlers.ServiceView
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "Hosting", updated.Name)
	assert.Equal(t, 0.75, updated.CommunicationRate)

	rec, env = s.serve(t, httptest.NewRequest(http.MethodGet, "/api/services", nil), false)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []handlers.ServiceView
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 1)

	rec, _ = s.serve(t, httptest.NewRequest(http.MethodDelete, "/api/services/"+created.ID, nil), true)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, env = s.serve(t, httptest.NewRequest(http.MethodGet, "/api/services/"+created.ID, nil), false)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Service not found", env.Message)
}

func TestServices_Validation(t *testing.T) {
	s := newContentServer(t)

	rec, env := s.serve(t, jsonRequest(t, http.MethodPost, "/api/services", gin.H{"name": "Hosting"}), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name and description are required", env.Message)

	rec, _ = s.serve(t, jsonRequest(t, http.MethodPost, "/api/services",
		gin.H{"name": "Hosting", "description": "VPS", "communicationRate": -1}), true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
