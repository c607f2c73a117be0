package handlers

import (
	"net/http"

	"github.com/akolanti/quizcrafter/internal/adapter"
	"github.com/akolanti/quizcrafter/internal/api"
	"github.com/akolanti/quizcrafter/internal/config"
	"github.com/akolanti/quizcrafter/internal/data/store"
	"github.com/akolanti/quizcrafter/internal/domain/commonModels"
	"github.com/akolanti/quizcrafter/internal/domain/jobModel"
	"github.com/akolanti/quizcrafter/internal/job"
	"github.com/akolanti/quizcrafter/internal/metrics"
	"github.com/akolanti/quizcrafter/internal/rag"
	"github.com/akolanti/quizcrafter/pkg/logger_i"
)

var logRH = logger_i.NewLogger("request_handler")

// Handler serves the quiz endpoints. Every dependency is injected.
type Handler struct {
	quiz                rag.Service
	uploads             *store.UploadStore
	snapshots           jobModel.SnapshotStore
	jobs                *job.Service
	defaultNumQuestions int
}

type Deps struct {
	Quiz                rag.Service
	Uploads             *store.UploadStore
	Snapshots           jobModel.SnapshotStore
	Jobs                *job.Service
	DefaultNumQuestions int
}

func NewHandler(d Deps) *Handler {
	n := d.DefaultNumQuestions
	if n <= 0 {
		n = config.DefaultNumQuestions
	}
	return &Handler{
		quiz:                d.Quiz,
		uploads:             d.Uploads,
		snapshots:           d.Snapshots,
		jobs:                d.Jobs,
		defaultNumQuestions: n,
	}
}

// HealthHandler godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Router       /healthz [get]
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJsonResponse(w, http.StatusOK, api.HealthResponse{Status: "ok"})
}

// UploadHandler godoc
// @Summary      Upload the document to quiz on
// @Description  Stores the file under a fixed name. A later upload replaces the earlier one.
// @Tags         Quiz
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "PDF, DOCX, ODT, RTF or plain text document"
// @Success      200  {object}  api.UploadResponse
// @Failure      400  {object}  api.JobResponse "Missing file or file too large"
// @Failure      500  {object}  api.JobResponse "Storage error"
// @Router       /upload/ [post]
func (h *Handler) UploadHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !validateContext(ctx) {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize)
	if err := parseForm(r); err != nil {
		writeClassifiedError(ctx, w, "", err)
		return
	}
	file, header, err := formFile(r)
	if err != nil {
		writeClassifiedError(ctx, w, "", err)
		return
	}
	defer closeQuietly(file)

	path, err := h.uploads.SaveFixed(ctx, file)
	if err != nil {
		writeClassifiedError(ctx, w, header.Filename, err)
		return
	}
	logRH.FromContext(ctx).Info("Document uploaded", "filename", header.Filename, "path", path)
	writeJsonResponse(w, http.StatusOK, api.UploadResponse{Message: "File uploaded successfully"})
}

// GenerateQuestionsHandler godoc
// @Summary      Generate questions for the UI
// @Description  Generates multiple-choice questions on a topic from the last uploaded document.
// @Tags         Quiz
// @Accept       multipart/form-data
// @Produce      json
// @Param        topic         formData  string  true   "Topic used for retrieval"
// @Param        numQuestions  formData  int     false  "Number of questions, default 5"
// @Success      200  {array}   commonModels.UIQuestion
// @Failure      400  {object}  api.JobResponse "Bad topic or numQuestions"
// @Failure      422  {object}  api.JobResponse "Document unreadable"
// @Failure      502  {object}  api.JobResponse "Backend failure or malformed model output"
// @Failure      504  {object}  api.JobResponse "Generation timed out"
// @Router       /generate-questions/ [post]
func (h *Handler) GenerateQuestionsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !validateContext(ctx) {
		return
	}
	req, err := h.quizRequest(r)
	if err != nil {
		writeClassifiedError(ctx, w, "", err)
		return
	}

	doc, err := h.uploads.LoadDocument(ctx, h.uploads.FixedPath())
	if err != nil {
		writeClassifiedError(ctx, w, "", err)
		return
	}
	req.Document = doc

	result, err := h.quiz.GenerateQuiz(ctx, req)
	if err != nil {
		writeClassifiedError(ctx, w, "", err)
		return
	}
	store.SaveSnapshotQuietly(ctx, h.snapshots, result.Questions)

	questions, diagnostics := adapter.ToUIQuestions(ctx, result.Questions)
	metrics.AddGeneratedQuestions("ui", len(questions))
	logRH.FromContext(ctx).Info("Questions generated", "questions", len(questions), "diagnostics", len(result.Diagnostics)+len(diagnostics))
	writeJsonResponse(w, http.StatusOK, questions)
}

// GenerateQuizForDBHandler godoc
// @Summary      Upload a document and generate questions for storage
// @Description  Stores the file under its own name. Returns questions whose correctAnswer holds the full option text and the stored path as resourceFile.
// @Tags         Quiz
// @Accept       multipart/form-data
// @Produce      json
// @Param        file          formData  file    true   "Document"
// @Param        topic         formData  string  true   "Topic used for retrieval"
// @Param        numQuestions  formData  int     false  "Number of questions, default 5"
// @Success      200  {object}  api.DBQuizResponse
// @Failure      400  {object}  api.JobResponse "Bad form data"
// @Failure      422  {object}  api.JobResponse "Document unreadable"
// @Failure      502  {object}  api.JobResponse "Backend failure or malformed model output"
// @Failure      504  {object}  api.JobResponse "Generation timed out"
// @Router       /generate-quiz-for-db/ [post]
func (h *Handler) GenerateQuizForDBHandler(w http.ResponseWriter, r *http.Request) {
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

	doc, err := h.uploads.LoadDocument(ctx, path)
	if err != nil {
		writeClassifiedError(ctx, w, filename, err)
		return
	}
	req.Document = doc

	result, err := h.quiz.GenerateQuiz(ctx, req)
	if err != nil {
		writeClassifiedError(ctx, w, filename, err)
		return
	}
	store.SaveSnapshotQuietly(ctx, h.snapshots, result.Questions)

	questions, diagnostics := adapter.ToDBQuestions(ctx, result.Questions)
	metrics.AddGeneratedQuestions("db", len(questions))
	writeJsonResponse(w, http.StatusOK, api.DBQuizResponse{
		Questions:    questions,
		ResourceFile: path,
		Warnings:     append(result.Diagnostics, diagnostics...),
	})
}

func (h *Handler) quizRequest(r *http.Request) (commonModels.QuizRequest, error) {
	if err := parseForm(r); err != nil {
		return commonModels.QuizRequest{}, err
	}
	topic, err := parseTopic(r.FormValue("topic"))
	if err != nil {
		return commonModels.QuizRequest{}, err
	}
	n, err := parseNumQuestions(r.FormValue("numQuestions"), h.defaultNumQuestions)
	if err != nil {
		return commonModels.QuizRequest{}, err
	}
	return commonModels.QuizRequest{Topic: topic, NumQuestions: n}, nil
}

// namedUpload validates the form and stores the file under its own name.
func (h *Handler) namedUpload(r *http.Request) (commonModels.QuizRequest, string, string, error) {
	req, err := h.quizRequest(r)
	if err != nil {
		return req, "", "", err
	}
	file, header, err := formFile(r)
	if err != nil {
		return req, "", "", err
	}
	defer closeQuietly(file)

	path, err := h.uploads.SaveNamed(r.Context(), header.Filename, file)
	return req, path, header.Filename, err
}
