package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/hiring-pipeline-api/internal/dto"
	"github.com/noah-isme/hiring-pipeline-api/internal/middleware"
	"github.com/noah-isme/hiring-pipeline-api/internal/models"
	appErrors "github.com/noah-isme/hiring-pipeline-api/pkg/errors"
	"github.com/noah-isme/hiring-pipeline-api/pkg/response"
)

type applicationService interface {
	Get(ctx context.Context, id string) (*models.Application, error)
	History(ctx context.Context, id string) ([]models.StageChange, error)
	ChangeStage(ctx context.Context, id string, req dto.StageTransitionRequest) (*dto.StageTransitionResponse, error)
}

// ApplicationHandler exposes application read and stage transition endpoints.
type ApplicationHandler struct {
	service applicationService
}

// NewApplicationHandler constructs the handler.
func NewApplicationHandler(svc applicationService) *ApplicationHandler {
	return &ApplicationHandler{service: svc}
}

// Get godoc
// @Summary Get application
// @Tags Applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	app, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, app, middleware.ResponseMeta(c))
}

// History godoc
// @Summary List stage history
// @Tags Applications
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /applications/{id}/history [get]
func (h *ApplicationHandler) History(c *gin.Context) {
	history, err := h.service.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.AddMeta(c, "count", len(history))
	response.OK(c, history, middleware.ResponseMeta(c))
}

// ChangeStage godoc
// @Summary Move application to another stage
// @Tags Applications
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param payload body dto.StageTransitionRequest true "Target stage"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /applications/{id}/stage [patch]
func (h *ApplicationHandler) ChangeStage(c *gin.Context) {
	var req dto.StageTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.service.ChangeStage(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result, middleware.ResponseMeta(c))
}
