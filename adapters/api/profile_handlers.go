package api

import (
	stderrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"goprofile/adapters/report"
	"goprofile/domain/dataset"
	"goprofile/domain/profile"
	"goprofile/internal/errors"
)

// ProfileRequest is the JSON body of POST /api/v1/profile. The row count is
// taken from the first column.
type ProfileRequest struct {
	Name    string           `json:"name"`
	Columns []dataset.Column `json:"columns"`
	Target  string           `json:"target"`
	Format  string           `json:"format"`
	TopN    int              `json:"top_n"`
}

func (s *Server) handleProfile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadMB*megabyte)

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, s.bodyError(err))
		return
	}

	format, err := report.ParseFormat(req.Format)
	if err != nil {
		s.fail(c, err)
		return
	}

	ds := dataset.New(req.Name, req.Columns...)
	s.run(c, ds, profile.Options{Target: req.Target, TopN: req.TopN}, format)
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadMB*megabyte)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) {
			s.fail(c, errors.InvalidInput("multipart field \"file\" is required"))
			return
		}
		s.fail(c, s.bodyError(err))
		return
	}
	defer file.Close()

	format, err := report.ParseFormat(c.PostForm("format"))
	if err != nil {
		s.fail(c, err)
		return
	}

	opts := profile.Options{Target: c.PostForm("target")}
	if raw := c.PostForm("top_n"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			s.fail(c, errors.InvalidInput("top_n must be a positive integer"))
			return
		}
		opts.TopN = n
	}

	ds, err := s.reader.Read(c.Request.Context(), header.Filename, file)
	if err != nil {
		s.fail(c, errors.Wrapf(err, "read %s", header.Filename))
		return
	}
	s.run(c, ds, opts, format)
}

func (s *Server) run(c *gin.Context, ds *dataset.Dataset, opts profile.Options, format report.Format) {
	start := time.Now()
	rep, err := s.profiler.Analyze(c.Request.Context(), ds, opts)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.logger.Info("profiled %q (%d rows, %d columns) in %s", ds.Name, ds.RowCount, len(ds.Columns), time.Since(start))
	s.respond(c, rep, format)
}

// bodyError distinguishes an oversized body from a malformed one
func (s *Server) bodyError(err error) error {
	var tooLarge *http.MaxBytesError
	if stderrors.As(err, &tooLarge) {
		return errors.PayloadTooLarge(s.maxUploadMB)
	}
	return errors.WithCode(errors.CodeInvalidInput, errors.Wrap(err, "decode request"))
}
