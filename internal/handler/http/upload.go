package http

import (
	"net/http"

	"github.com/attendly-hq/attendance-engine-go/internal/handler/http/response"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/storage"
	"github.com/attendly-hq/attendance-engine-go/internal/pkg/validator"
	"github.com/attendly-hq/attendance-engine-go/internal/service/ingest"
)

const maxUploadSize = 32 << 20 // 32 MB across all parts

type UploadHandler interface {
	// Store source workbooks for the next run
	Upload(w http.ResponseWriter, r *http.Request)

	// Names of the workbooks a run expects, with upload state
	List(w http.ResponseWriter, r *http.Request)
}

type uploadHandlerImpl struct {
	uploadStorage storage.FileStorage
}

func NewUploadHandler(uploadStorage storage.FileStorage) UploadHandler {
	return &uploadHandlerImpl{
		uploadStorage: uploadStorage,
	}
}

// Upload handles POST /uploads. Each part's file name must match one of
// the expected workbook names; the stored file always overwrites the
// previous upload of that name.
func (h *uploadHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		response.BadRequest(w, "invalid multipart request", nil)
		return
	}

	expected := ingest.SourceFiles()
	var stored []string
	for _, headers := range r.MultipartForm.File {
		for _, header := range headers {
			if !validator.IsInSlice(header.Filename, expected) {
				response.BadRequest(w, "unexpected workbook name", map[string]string{
					"filename": header.Filename,
				})
				return
			}

			file, err := header.Open()
			if err != nil {
				response.BadRequest(w, "unreadable upload", map[string]string{
					"filename": header.Filename,
				})
				return
			}
			path, err := h.uploadStorage.Upload(ctx, file, header.Filename)
			file.Close()
			if err != nil {
				response.HandleError(w, err)
				return
			}
			stored = append(stored, path)
		}
	}

	if len(stored) == 0 {
		response.BadRequest(w, "no files in request", nil)
		return
	}

	response.Created(w, "workbooks stored", map[string]any{
		"stored": stored,
	})
}

// List handles GET /uploads
func (h *uploadHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	files, err := h.uploadStorage.List(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	present := make(map[string]storage.FileInfo, len(files))
	for _, f := range files {
		present[f.Name] = f
	}

	type entry struct {
		Name     string            `json:"name"`
		Uploaded bool              `json:"uploaded"`
		File     *storage.FileInfo `json:"file,omitempty"`
	}
	var entries []entry
	for _, name := range ingest.SourceFiles() {
		e := entry{Name: name}
		if info, ok := present[name]; ok {
			e.Uploaded = true
			e.File = &info
		}
		entries = append(entries, e)
	}

	response.Success(w, entries)
}
