package httpserver

import (
	"net/http"

	"report-runtime/pkg/response"

	"github.com/gin-gonic/gin"
)

// Health response constants (single source for version and service identity).
const (
	HealthVersion = "1.0.0"
	ServiceName   = "report-runtime"
)

// healthCheck reports the process is up and where the report stands.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	body := gin.H{
		"status":  "healthy",
		"version": HealthVersion,
		"service": ServiceName,
	}
	if srv.reportUC != nil {
		body["report_phase"] = srv.reportUC.Status().Phase
	}
	response.OK(c, body)
}

// readyCheck pings every configured backend.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()
	deps := gin.H{}

	if srv.postgresDB != nil {
		if err := srv.postgresDB.PingContext(ctx); err != nil {
			srv.notReady(c, "Database connection failed", err)
			return
		}
		deps["database"] = "connected"
	}
	if srv.redisClient != nil {
		if err := srv.redisClient.Ping(ctx); err != nil {
			srv.notReady(c, "Redis connection failed", err)
			return
		}
		deps["redis"] = "connected"
	}
	if srv.minioClient != nil {
		if err := srv.minioClient.HealthCheck(ctx); err != nil {
			srv.notReady(c, "MinIO connection failed", err)
			return
		}
		deps["minio"] = "connected"
	}
	if srv.kafkaProducer != nil {
		if err := srv.kafkaProducer.HealthCheck(); err != nil {
			srv.notReady(c, "Kafka producer unavailable", err)
			return
		}
		deps["kafka"] = "connected"
	}

	response.OK(c, gin.H{
		"status":       "ready",
		"version":      HealthVersion,
		"service":      ServiceName,
		"dependencies": deps,
	})
}

func (srv *HTTPServer) notReady(c *gin.Context, msg string, err error) {
	srv.l.Warnf(c.Request.Context(), "httpserver.readyCheck: %s: %v", msg, err)
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"status":  "not ready",
		"message": msg,
		"error":   err.Error(),
	})
}

func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": HealthVersion,
		"service": ServiceName,
	})
}
