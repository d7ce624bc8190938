package http

import (
	"strings"

	"report-runtime/internal/model"
	"report-runtime/pkg/errors"

	"github.com/gin-gonic/gin"
)

func (h *handler) processRunRequest(c *gin.Context) (runReq, error) {
	var req runReq

	ctx := c.Request.Context()
	if c.Request.ContentLength == 0 {
		return req, nil
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processRunRequest: ShouldBindJSON failed: %v", err)
		v := errors.NewValidationError()
		v.Add("criteria", "must be a JSON object")
		return req, v
	}
	return req, nil
}

func (h *handler) processCriteriaRequest(c *gin.Context) (criteriaReq, error) {
	var req criteriaReq

	ctx := c.Request.Context()
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processCriteriaRequest: ShouldBindJSON failed: %v", err)
		v := errors.NewValidationError()
		v.Add("criteria", "is required and must be a JSON object")
		return req, v
	}
	return req, nil
}

func (h *handler) processWidgetRequest(c *gin.Context) (widgetReq, error) {
	id := strings.TrimSpace(c.Param("widget_id"))
	if id == "" {
		return widgetReq{}, errWidgetIDRequired
	}
	return widgetReq{WidgetID: model.WidgetID(id)}, nil
}

func (h *handler) processExportRequest(c *gin.Context) (exportReq, error) {
	var req exportReq

	ctx := c.Request.Context()
	w, err := h.processWidgetRequest(c)
	if err != nil {
		return req, err
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.processExportRequest: ShouldBindJSON failed: %v", err)
		v := errors.NewValidationError()
		v.Add("format", "is required")
		return req, v
	}
	req.WidgetID = w.WidgetID
	return req, nil
}

func (h *handler) processRestoreRequest(c *gin.Context) (restoreReq, error) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		return restoreReq{}, errEmptyToken
	}
	return restoreReq{Token: token}, nil
}
