// Package handlers adapts the decision service to the HTTP surface. The
// handlers stay thin: decode, delegate, map errors.
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shemankubana/IncludEd/internal/decision/action"
	"github.com/shemankubana/IncludEd/internal/platform/logger"
	"github.com/shemankubana/IncludEd/internal/services"
)

type DecisionHandler struct {
	log         *logger.Logger
	decisionSvc services.DecisionService
	maxBatch    int
}

func NewDecisionHandler(log *logger.Logger, dsvc services.DecisionService, maxBatch int) *DecisionHandler {
	if maxBatch <= 0 {
		maxBatch = 64
	}
	return &DecisionHandler{
		log:         log.With("handler", "DecisionHandler"),
		decisionSvc: dsvc,
		maxBatch:    maxBatch,
	}
}

func (h *DecisionHandler) respondServiceError(c *gin.Context, err error) {
	code := services.ErrorCode(err)
	status := services.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.log.Error("decision request failed", "code", code, "error", err)
	}
	RespondError(c, status, code, err)
}

// POST /predict
func (h *DecisionHandler) Predict(c *gin.Context) {
	var req services.PredictionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resp, err := h.decisionSvc.Predict(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	RespondOK(c, resp)
}

// POST /predict/batch
func (h *DecisionHandler) PredictBatch(c *gin.Context) {
	var reqs []services.PredictionRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if len(reqs) == 0 {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("batch must contain at least one item"))
		return
	}
	if len(reqs) > h.maxBatch {
		RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("batch of %d exceeds limit %d", len(reqs), h.maxBatch))
		return
	}

	RespondOK(c, h.decisionSvc.PredictBatch(c.Request.Context(), reqs))
}

// POST /detect/struggle
func (h *DecisionHandler) DetectStruggle(c *gin.Context) {
	var req services.StruggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resp, err := h.decisionSvc.DetectStruggle(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	RespondOK(c, resp)
}

// POST /reward
func (h *DecisionHandler) RecordReward(c *gin.Context) {
	var req services.RewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	resp, err := h.decisionSvc.RecordReward(c.Request.Context(), req)
	if err != nil {
		h.respondServiceError(c, err)
		return
	}
	RespondOK(c, resp)
}

// GET /model/info
func (h *DecisionHandler) ModelInfo(c *gin.Context) {
	RespondOK(c, h.decisionSvc.ModelInfo())
}

type actionsResponse struct {
	Actions      []action.Descriptor `json:"actions"`
	TotalActions int                 `json:"total_actions"`
}

// GET /actions
func (h *DecisionHandler) ListActions(c *gin.Context) {
	list := h.decisionSvc.Actions()
	RespondOK(c, actionsResponse{Actions: list, TotalActions: len(list)})
}
