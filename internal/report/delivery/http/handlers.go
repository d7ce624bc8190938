package http

import (
	"report-runtime/pkg/response"

	"github.com/gin-gonic/gin"
)

// GetStatus returns the report phase and every widget's state.
func (h *handler) GetStatus(c *gin.Context) {
	response.OK(c, h.newStatusResp(h.uc.Status()))
}

// Run submits the criteria form. Widgets load in the background; poll
// GetStatus for completion.
func (h *handler) Run(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRunRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	if err := h.uc.Run(ctx, req.toInput()); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Run: usecase Run failed: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.Accepted(c, h.newPhaseResp())
}

func (h *handler) ReloadAll(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.uc.ReloadAll(ctx); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ReloadAll: usecase ReloadAll failed: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.Accepted(c, h.newPhaseResp())
}

func (h *handler) ReloadWidget(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processWidgetRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	if err := h.uc.ReloadWidget(ctx, req.WidgetID); err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ReloadWidget: usecase ReloadWidget failed: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.Accepted(c, h.newPhaseResp())
}

// ExportWidget downloads a widget's data as CSV or JSON and returns where it
// was stored.
func (h *handler) ExportWidget(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processExportRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	location, err := h.uc.ExportWidget(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ExportWidget: usecase ExportWidget failed: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, exportResp{Location: location})
}

func (h *handler) ChangeCriteria(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCriteriaRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	fields, err := h.uc.ChangeCriteria(ctx, req.Criteria)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.ChangeCriteria: usecase ChangeCriteria failed: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, h.newFieldsResp(fields))
}

// Restore renders a saved report by its history token.
func (h *handler) Restore(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRestoreRequest(c)
	if err != nil {
		response.Error(c, err, h.d)
		return
	}

	restored, err := h.uc.Restore(ctx, req.Token)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Restore: usecase Restore failed: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, h.newRestoreResp(restored))
}

func (h *handler) Back(c *gin.Context) {
	ctx := c.Request.Context()

	restored, err := h.uc.Back(ctx)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Back: usecase Back failed: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, h.newRestoreResp(restored))
}

func (h *handler) Forward(c *gin.Context) {
	ctx := c.Request.Context()

	restored, err := h.uc.Forward(ctx)
	if err != nil {
		h.l.Errorf(ctx, "report.delivery.http.Forward: usecase Forward failed: %v", err)
		response.Error(c, h.mapError(err), h.d)
		return
	}

	response.OK(c, h.newRestoreResp(restored))
}
