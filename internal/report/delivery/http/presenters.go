package http

import (
	"report-runtime/internal/model"
	"report-runtime/internal/report"
)

type runReq struct {
	Criteria model.Criteria `json:"criteria"`
	Debug    bool           `json:"debug"`
}

func (r runReq) toInput() report.RunInput {
	return report.RunInput{
		Criteria: r.Criteria,
		Debug:    r.Debug,
	}
}

type criteriaReq struct {
	Criteria model.Criteria `json:"criteria" binding:"required"`
}

type exportReq struct {
	WidgetID model.WidgetID
	Format   string `json:"format" binding:"required"`
	Filename string `json:"filename"`
}

func (r exportReq) toInput() report.ExportInput {
	return report.ExportInput{
		WidgetID: r.WidgetID,
		Format:   r.Format,
		Filename: r.Filename,
	}
}

type widgetReq struct {
	WidgetID model.WidgetID
}

type restoreReq struct {
	Token string
}

type statusResp struct {
	Phase           string       `json:"phase"`
	Mode            string       `json:"mode"`
	Datetime        string       `json:"datetime"`
	Timezone        string       `json:"timezone"`
	Debug           bool         `json:"debug"`
	Token           string       `json:"token,omitempty"`
	URL             string       `json:"url"`
	ReloadScheduled bool         `json:"reload_scheduled"`
	ReadyCount      int          `json:"ready_count"`
	Widgets         []widgetResp `json:"widgets"`
}

type widgetResp struct {
	ID              string `json:"id"`
	Slug            string `json:"slug,omitempty"`
	State           string `json:"state"`
	JobID           string `json:"job_id,omitempty"`
	ErrorMessage    string `json:"error_message,omitempty"`
	ServerException bool   `json:"server_exception,omitempty"`
	ErrorDetails    string `json:"error_details,omitempty"`
	LastUpdate      string `json:"last_update,omitempty"`
}

type phaseResp struct {
	Phase string `json:"phase"`
}

type exportResp struct {
	Location string `json:"location"`
}

type fieldResp struct {
	ID   string `json:"id"`
	HTML string `json:"html"`
}

type restoreResp struct {
	Restored bool   `json:"restored"`
	Phase    string `json:"phase"`
	Token    string `json:"token,omitempty"`
}

func (h *handler) newStatusResp(s report.Status) statusResp {
	resp := statusResp{
		Phase:           string(s.Phase),
		Mode:            string(s.Mode),
		Datetime:        s.Datetime,
		Timezone:        s.Timezone,
		Debug:           s.Debug,
		Token:           s.Token,
		URL:             s.URL,
		ReloadScheduled: s.ReloadScheduled,
		ReadyCount:      s.ReadyCount,
		Widgets:         make([]widgetResp, 0, len(s.Widgets)),
	}
	for _, w := range s.Widgets {
		wr := widgetResp{
			ID:    w.ID.String(),
			Slug:  w.Slug,
			State: w.State,
			JobID: w.JobID,
		}
		if w.Error != nil {
			wr.ErrorMessage = w.Error.Message
			wr.ServerException = w.Error.ServerException
			wr.ErrorDetails = w.Error.Details
		}
		if w.LastUpdate != nil {
			wr.LastUpdate = w.LastUpdate.Datetime
		}
		resp.Widgets = append(resp.Widgets, wr)
	}
	return resp
}

func (h *handler) newPhaseResp() phaseResp {
	return phaseResp{Phase: string(h.uc.Status().Phase)}
}

func (h *handler) newFieldsResp(fields []model.FieldUpdate) []fieldResp {
	resp := make([]fieldResp, 0, len(fields))
	for _, f := range fields {
		resp = append(resp, fieldResp{ID: f.ID, HTML: f.HTML})
	}
	return resp
}

func (h *handler) newRestoreResp(restored bool) restoreResp {
	s := h.uc.Status()
	resp := restoreResp{Restored: restored, Phase: string(s.Phase)}
	if restored {
		resp.Token = s.Token
	}
	return resp
}
