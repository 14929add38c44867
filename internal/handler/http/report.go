package http

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/attendly-hq/attendance-engine-go/internal/handler/http/response"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/storage"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	// Generated report workbooks, newest first
	List(w http.ResponseWriter, r *http.Request)

	// Download the most recent report
	Latest(w http.ResponseWriter, r *http.Request)

	// Download a report by file name
	Download(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportStorage storage.FileStorage
}

func NewReportHandler(reportStorage storage.FileStorage) ReportHandler {
	return &reportHandlerImpl{
		reportStorage: reportStorage,
	}
}

// List handles GET /reports
func (h *reportHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, err := h.reportStorage.List(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, files, &response.Meta{Count: len(files)})
}

// Latest handles GET /reports/latest
func (h *reportHandlerImpl) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, err := h.reportStorage.List(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if len(files) == 0 {
		response.NotFound(w, "No report has been generated yet")
		return
	}

	h.stream(w, r, files[0].Name)
}

// Download handles GET /reports/{filename}
func (h *reportHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")
	if !validator.IsValidReportFileName(filename) {
		response.BadRequest(w, "invalid report file name", nil)
		return
	}

	h.stream(w, r, filename)
}

func (h *reportHandlerImpl) stream(w http.ResponseWriter, r *http.Request, filename string) {
	ctx := r.Context()

	exists, err := h.reportStorage.Exists(ctx, filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !exists {
		response.NotFound(w, "Report not found")
		return
	}

	file, err := h.reportStorage.Download(ctx, filename)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := io.Copy(w, file); err != nil {
		// Headers are already out; nothing useful left to send.
		return
	}
}
