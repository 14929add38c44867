package http

import (
	"net/http"

	"github.com/attendly-hq/attendance-engine-go/internal/domain/pipeline"
	"github.com/attendly-hq/attendance-engine-go/internal/handler/http/response"
)

type PipelineHandler interface {
	// Run the pipeline synchronously
	Run(w http.ResponseWriter, r *http.Request)

	// Run the pipeline in the background
	RunAsync(w http.ResponseWriter, r *http.Request)

	// Current or last run state
	Status(w http.ResponseWriter, r *http.Request)
}

type pipelineHandlerImpl struct {
	pipelineService pipeline.Service
}

func NewPipelineHandler(pipelineService pipeline.Service) PipelineHandler {
	return &pipelineHandlerImpl{
		pipelineService: pipelineService,
	}
}

// Run handles POST /pipeline/run
func (h *pipelineHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	result, err := h.pipelineService.Run(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "pipeline run finished", result)
}

// RunAsync handles POST /pipeline/run-async
func (h *pipelineHandlerImpl) RunAsync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	runID, err := h.pipelineService.RunAsync(ctx)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "pipeline run started", map[string]string{
		"run_id": runID,
	})
}

// Status handles GET /pipeline/status
func (h *pipelineHandlerImpl) Status(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.pipelineService.Status())
}
