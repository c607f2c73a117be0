package handlers

import (
	"net/http"

	"github.com/akolanti/quizcrafter/internal/adapter"
	"github.com/akolanti/quizcrafter/internal/adapter/utils"
	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/akolanti/quizcrafter/internal/job"
)

// PostQuizJobHandler godoc
// @Summary      Queue a quiz job
// @Description  Stores the file, queues a background job and returns its id. Poll /status/{id} for the questions.
// @Tags         Jobs
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file    true   "Document"
// @Param        topic         formData  string  true   "Topic used for retrieval"
// @Param        numQuestions  formData  int     false  "Number of questions, default 5"
// @Success      202  {object}  api.InitJobResponse  "Job successfully created"
// @Failure      400  {object}  api.JobResponse      "Bad form data"
// @Failure      503  {object}  api.JobResponse      "Queue unavailable"
// @Router       /jobs/quiz [post]
func (h *Handler) PostQuizJobHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !validateContext(ctx) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	req, path, filename, err := h.namedUpload(r)
	if err != nil {
		writeClassifiedError(ctx, w, filename, err)
		return
	}

	newJob := job.NewQuizJob(utils.GetNewUUID(), traceId(ctx), jobModel.JobPayload{
		Topic:        req.Topic,
		NumQuestions: req.NumQuestions,
		DocumentName: filename,
		DocumentPath: path,
	})
	if err := h.jobs.Submit(ctx, newJob); err != nil {
		logRH.FromContext(ctx).Error("Failed to queue job", "error", err)
		WriteErrorResponse(w, http.StatusServiceUnavailable, newJob.Id, "Job queue unavailable")
		return
	}
	writeJsonResponse(w, http.StatusAccepted, adapter.ToInitJobResponse(newJob.Id))
}

// GetStatusHandler godoc
// @Summary      Get job status
// @Description  Retrieves the current status of a quiz job, with the questions once complete.
// @Tags         Jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  api.JobResponse   "Successful retrieval of job status"
// @Failure      404  {object}  api.JobResponse   "Job not found"
// @Router       /status/{id} [get]
func (h *Handler) GetStatusHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !validateContext(ctx) {
		return
	}
	idString := utils.GetChiURLParam(r, "id")
	logRH.FromContext(ctx).Debug("Get Status Request", "URL path", r.URL.Path)

	result, isFound := h.jobs.GetJob(ctx, idString)
	if !isFound {
		WriteErrorResponse(w, http.StatusNotFound, idString, "Job not found")
		return
	}
	writeJsonResponse(w, http.StatusOK, adapter.ToAPIResponse(result))
}
