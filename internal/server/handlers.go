package server

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ukaji3/timesheet-go/pkg/timesheet"
	"github.com/ukaji3/timesheet-go/pkg/timesheet/models"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// UploadResponse is returned after a timesheet has been processed.
type UploadResponse struct {
	ID          string         `json:"id"`
	FileName    string         `json:"file_name"`
	DownloadURL string         `json:"download_url"`
	Metrics     models.Metrics `json:"metrics"`
	Report      *models.Report `json:"report"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{Status: "ok"})
}

// handleUpload checks an uploaded workbook and keeps the annotated copy for
// download. No download is created when the check fails.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("upload exceeds %d bytes", tooLarge.Limit)
		}
		s.metrics.observeFailure(CodeInvalidUpload)
		renderError(w, r, errInvalidUpload(err))
		return
	}
	defer file.Close()

	opts := s.cfg.CheckOptions()
	opts.Logger = s.logger

	var out bytes.Buffer
	report, err := timesheet.CheckReader(header.Filename, file, &out, opts)
	if err != nil {
		apiErr := errFromCheck(err)
		s.logger.WarnContext(ctx, "timesheet check failed",
			slog.String("file", header.Filename),
			slog.String("error_code", apiErr.ErrorCode),
			slog.String("error", err.Error()))
		s.metrics.observeFailure(apiErr.ErrorCode)
		renderError(w, r, apiErr)
		return
	}

	name := timesheet.DownloadName(s.now())
	id := s.store.put(name, out.Bytes())
	s.metrics.observeCheck(report)

	s.logger.InfoContext(ctx, "timesheet processed",
		slog.String("id", id),
		slog.String("file", header.Filename),
		slog.Int("missing", report.Metrics.MissingCount),
		slog.Float64("billable_hours", report.Metrics.TotalBillableHours))

	render.JSON(w, r, UploadResponse{
		ID:          id,
		FileName:    name,
		DownloadURL: "/api/v1/timesheets/" + id + "/download",
		Metrics:     report.Metrics,
		Report:      report,
	})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	d, ok := s.store.get(id)
	if !ok {
		renderError(w, r, NewAPIError(http.StatusNotFound, CodeNotFound, "Processed timesheet not found or expired", id))
		return
	}

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", d.fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(d.data)))
	if _, err := w.Write(d.data); err != nil {
		s.logger.WarnContext(r.Context(), "download interrupted", slog.String("id", id), slog.String("error", err.Error()))
	}
}
