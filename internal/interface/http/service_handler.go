package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-auth-portal/internal/application"
	repo "github.com/oksasatya/go-auth-portal/internal/domain/repository"
	"github.com/oksasatya/go-auth-portal/pkg/helpers"
	"github.com/oksasatya/go-auth-portal/pkg/response"
)

type ServiceHandler struct {
	Svc    *application.CatalogService
	Logger *logrus.Logger
}

func NewServiceHandler(svc *application.CatalogService, logger *logrus.Logger) *ServiceHandler {
	return &ServiceHandler{Svc: svc, Logger: logger}
}

type serviceRequest struct {
	Name              string   `json:"name" binding:"max=200"`
	Description       string   `json:"description"`
	Logo              string   `json:"logo"`
	CommunicationRate *float64 `json:"communicationRate" binding:"omitempty,gte=0"`
}

func (r serviceRequest) input() application.ServiceInput {
	return application.ServiceInput{
		Name:              r.Name,
		Description:       r.Description,
		Logo:              r.Logo,
		CommunicationRate: r.CommunicationRate,
	}
}

func (h *ServiceHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]ServiceView, 0, len(items))
	for i := range items {
		out = append(out, NewServiceView(&items[i]))
	}
	response.Success(c, http.StatusOK, out, "services", gin.H{"total": len(out)})
}

func (h *ServiceHandler) Get(c *gin.Context) {
	s, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewServiceView(s), "service", nil)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	s, err := h.Svc.Create(c.Request.Context(), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, NewServiceView(s), "Service created", nil)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c, err)
		return
	}
	s, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, NewServiceView(s), "Service updated", nil)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "Service deleted", nil)
}

func (h *ServiceHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrValidation):
		response.Error(c, http.StatusBadRequest, "Name and description are required", nil)
	case errors.Is(err, repo.ErrContentNotFound):
		response.Error(c, http.StatusNotFound, "Service not found", nil)
	default:
		helpers.LogError(h.Logger, "service request failed", err, logrus.Fields{"request_id": c.GetString("request_id")})
		response.Error(c, http.StatusInternalServerError, msgSomethingWrong, nil)
	}
}
