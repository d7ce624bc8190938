package httpserver

import (
	"context"
	"fmt"
	"time"

	"report-runtime/config"
	"report-runtime/internal/export"
	exportMemory "report-runtime/internal/export/repository/memory"
	exportMinio "report-runtime/internal/export/repository/minio"
	"report-runtime/internal/job"
	jobClient "report-runtime/internal/job/client"
	"report-runtime/internal/middleware"
	"report-runtime/internal/model"
	"report-runtime/internal/presenter"
	"report-runtime/internal/report"
	reportHTTP "report-runtime/internal/report/delivery/http"
	reportProducer "report-runtime/internal/report/delivery/kafka/producer"
	reportRepo "report-runtime/internal/report/repository/http"
	reportUsecase "report-runtime/internal/report/usecase"
	stateRepo "report-runtime/internal/state/repository"
	stateMemory "report-runtime/internal/state/repository/memory"
	statePostgre "report-runtime/internal/state/repository/postgre"
	stateRedis "report-runtime/internal/state/repository/redis"
	stateUsecase "report-runtime/internal/state/usecase"
	pkghttp "report-runtime/pkg/http"
	"report-runtime/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	headerCSRFToken = "X-CSRFToken"
	headerAuthToken = "X-AuthToken"

	exportLinkExpiry = 24 * time.Hour
)

// setupReportDomain builds the report runtime (repositories -> usecase ->
// delivery) and registers the control routes.
func (srv *HTTPServer) setupReportDomain(ctx context.Context, r *gin.RouterGroup, mw middleware.Middleware) error {
	cfg := srv.config

	reportCfg, err := newReportConfig(cfg.Report)
	if err != nil {
		return err
	}

	client := pkghttp.NewClient(pkghttp.ClientConfig{
		Timeout: time.Duration(cfg.Job.Timeout) * time.Second,
		Headers: requestHeaders(cfg.Report),
	})
	jobs := jobClient.New(srv.l, jobClient.Config{Origin: cfg.Report.Origin, HTTPClient: client})
	repo := reportRepo.New(srv.l, client, reportRepo.Config{
		Origin:     cfg.Report.Origin,
		WidgetsURL: cfg.Report.WidgetsURL,
		FormURL:    cfg.Report.FormURL,
		DebugURL:   cfg.Report.DebugURL,
	})

	states, err := srv.newStateRepository(ctx)
	if err != nil {
		return err
	}
	stateUC := stateUsecase.New(states, srv.l, cfg.State.KeyPrefix)

	srv.presenter = presenter.New(srv.l, srv.discord, presenter.Config{AutoConfirm: cfg.Report.DebugConfirm})

	var publisher report.Publisher
	if srv.kafkaProducer != nil {
		publisher = reportProducer.New(srv.l, srv.kafkaProducer)
	}

	uc := reportUsecase.New(repo, jobs, stateUC, srv.presenter, publisher, srv.newExportRepository(), srv.l, reportUsecase.Config{
		Report:  reportCfg,
		Cadence: newCadence(cfg.Job),
	})
	srv.reportUC = uc

	handler := reportHTTP.New(srv.l, uc, srv.discord)
	handler.RegisterRoutes(r, mw)
	r.GET("/api/v1/report/page", srv.getPage)

	srv.l.Infof(ctx, "Report domain registered (state backend %s)", cfg.State.Backend)
	return nil
}

func (srv *HTTPServer) getPage(c *gin.Context) {
	response.OK(c, srv.presenter.Page())
}

func (srv *HTTPServer) newStateRepository(ctx context.Context) (stateRepo.Repository, error) {
	switch srv.config.State.Backend {
	case config.StateBackendRedis:
		return stateRedis.New(srv.redisClient, srv.l), nil
	case config.StateBackendPostgres:
		if err := statePostgre.EnsureSchema(ctx, srv.postgresDB); err != nil {
			return nil, fmt.Errorf("failed to prepare report state table: %w", err)
		}
		return statePostgre.New(srv.postgresDB, srv.l), nil
	default:
		return stateMemory.New(srv.config.State.MaxBytes), nil
	}
}

func (srv *HTTPServer) newExportRepository() export.Repository {
	if srv.minioClient == nil {
		return exportMemory.New()
	}
	return exportMinio.New(srv.l, srv.minioClient, exportMinio.Config{
		Bucket:     srv.config.MinIO.Bucket,
		Prefix:     "exports",
		LinkExpiry: exportLinkExpiry,
	})
}

// newReportConfig turns the flat page settings into the orchestrator config.
func newReportConfig(rc config.ReportConfig) (report.Config, error) {
	embedCriteria, err := model.ParseCriteria([]byte(rc.EmbedCriteria))
	if err != nil {
		return report.Config{}, fmt.Errorf("report.embed_criteria: %w", err)
	}

	var printCriteria model.Criteria
	if rc.PrintCriteria != "" {
		if printCriteria, err = model.ParseCriteria([]byte(rc.PrintCriteria)); err != nil {
			return report.Config{}, fmt.Errorf("report.print_criteria: %w", err)
		}
	}

	return report.Config{
		ReportURL:      rc.URL,
		DebugURL:       rc.DebugURL,
		Embedded:       rc.Embedded,
		EmbedSlug:      rc.EmbedSlug,
		EmbedCriteria:  embedCriteria,
		ReloadInterval: time.Duration(rc.ReloadMinutes) * time.Minute,
		Offset:         time.Duration(rc.OffsetSeconds) * time.Second,
		Static:         rc.Static,
		Live:           rc.Live,
		Print:          rc.Print,
		PrintCriteria:  printCriteria,
		AutoRun:        rc.AutoRun,
		RestoreToken:   rc.RestoreToken,
	}, nil
}

func newCadence(jc config.JobConfig) job.Cadence {
	return job.Cadence{
		PollInterval:       time.Duration(jc.PollIntervalMS) * time.Millisecond,
		QuietDelay:         time.Duration(jc.QuietDelayMS) * time.Millisecond,
		ExportPollInterval: time.Duration(jc.ExportPollIntervalMS) * time.Millisecond,
	}
}

func requestHeaders(rc config.ReportConfig) map[string]string {
	h := map[string]string{}
	if rc.CSRFToken != "" {
		h[headerCSRFToken] = rc.CSRFToken
	}
	if rc.AuthToken != "" {
		h[headerAuthToken] = rc.AuthToken
	}
	return h
}
