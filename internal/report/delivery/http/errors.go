package http

import (
	"errors"
	"net/http"

	"report-runtime/internal/report"
	"report-runtime/internal/state"
	pkgErrors "report-runtime/pkg/errors"
)

var (
	errInvalidCriteria     = pkgErrors.NewHTTPError(http.StatusBadRequest, "Invalid report criteria")
	errDefinitionFailed    = pkgErrors.NewHTTPError(http.StatusBadGateway, "Failed to load report definition")
	errWidgetNotFound      = pkgErrors.NewHTTPError(http.StatusNotFound, "Widget not found")
	errEmbedNotFound       = pkgErrors.NewHTTPError(http.StatusNotFound, "Embedded widget not found in report")
	errWidgetNotReloadable = pkgErrors.NewHTTPError(http.StatusConflict, "Widget cannot be reloaded")
	errInvalidFormat       = pkgErrors.NewHTTPError(http.StatusBadRequest, "Unsupported export format")
	errExportFailed        = pkgErrors.NewHTTPError(http.StatusBadGateway, "Widget export failed")
	errNotStarted          = pkgErrors.NewHTTPError(http.StatusConflict, "Report has no widgets")
	errEmptyToken          = pkgErrors.NewHTTPError(http.StatusBadRequest, "History token is required")
	errCorruptedState      = pkgErrors.NewHTTPError(http.StatusUnprocessableEntity, "Saved report state is not valid")
	errWidgetIDRequired    = pkgErrors.NewHTTPError(http.StatusBadRequest, "Widget ID is required")
)

func (h *handler) mapError(err error) error {
	var criteriaErr *report.CriteriaError
	if errors.As(err, &criteriaErr) && criteriaErr.Body != "" {
		return pkgErrors.NewHTTPError(http.StatusBadRequest, criteriaErr.Body)
	}

	switch {
	case errors.Is(err, report.ErrInvalidCriteria):
		return errInvalidCriteria
	case errors.Is(err, report.ErrDefinitionFailed):
		return errDefinitionFailed
	case errors.Is(err, report.ErrWidgetNotFound):
		return errWidgetNotFound
	case errors.Is(err, report.ErrEmbedNotFound):
		return errEmbedNotFound
	case errors.Is(err, report.ErrWidgetNotReloadable):
		return errWidgetNotReloadable
	case errors.Is(err, report.ErrInvalidFormat):
		return errInvalidFormat
	case errors.Is(err, report.ErrExportFailed):
		return errExportFailed
	case errors.Is(err, report.ErrNotStarted):
		return errNotStarted
	case errors.Is(err, state.ErrEmptyToken):
		return errEmptyToken
	case errors.Is(err, state.ErrCorruptedState):
		return errCorruptedState
	default:
		panic(err)
	}
}
