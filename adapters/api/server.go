package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"goprofile/adapters/report"
	"goprofile/domain/profile"
	"goprofile/internal"
	"goprofile/internal/errors"
	"goprofile/ports"
)

const megabyte = 1 << 20

// Server exposes the profiler over HTTP
type Server struct {
	router      *gin.Engine
	profiler    ports.ProfilerPort
	reader      ports.DatasetReaderPort
	renderer    ports.ReportRendererPort
	logger      *internal.Logger
	maxUploadMB int64
}

// NewServer wires the routes. gin's mode is left to the caller.
func NewServer(profiler ports.ProfilerPort, reader ports.DatasetReaderPort, renderer ports.ReportRendererPort,
	maxUploadMB int64, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:      gin.New(),
		profiler:    profiler,
		reader:      reader,
		renderer:    renderer,
		logger:      logger.With("api"),
		maxUploadMB: maxUploadMB,
	}
	s.router.Use(gin.Logger(), gin.Recovery())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	v1.POST("/profile", s.handleProfile)
	v1.POST("/profile/upload", s.handleUpload)
}

// Handler returns the router for use in an http.Server
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// respond renders the report in the requested format
func (s *Server) respond(c *gin.Context, rep *profile.Report, format report.Format) {
	var buf bytes.Buffer
	if err := s.renderer.Render(&buf, rep, string(format)); err != nil {
		s.fail(c, errors.Wrap(err, "render report"))
		return
	}
	c.Data(http.StatusOK, report.ContentType(format), buf.Bytes())
}

// fail writes {code, error} with the status implied by the error's code
func (s *Server) fail(c *gin.Context, err error) {
	code := errors.Classify(err)
	status := errors.HTTPStatus(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("%s %s: %v", c.Request.Method, c.FullPath(), err)
	} else {
		s.logger.Debug("%s %s rejected (%s): %v", c.Request.Method, c.FullPath(), code, err)
	}
	c.AbortWithStatusJSON(status, gin.H{"code": code, "error": err.Error()})
}
