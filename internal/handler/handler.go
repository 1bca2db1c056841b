// Package handler exposes the generation and persistence operations as a
// JSON API consumed by the web frontend.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/studyforge/studyforge/internal/generate"
	"github.com/studyforge/studyforge/internal/llm"
	"github.com/studyforge/studyforge/internal/model"
	"github.com/studyforge/studyforge/internal/store"
)

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	store    *store.Store
	llm      *llm.Client
	exams    *generate.ExamGenerator
	solver   *generate.Solver
	paths    *generate.PathGenerator
	language string
}

// New creates a new Handler. language is the default response language for
// requests that do not specify one.
func New(s *store.Store, l *llm.Client, exams *generate.ExamGenerator, solver *generate.Solver, paths *generate.PathGenerator, language string) *Handler {
	return &Handler{store: s, llm: l, exams: exams, solver: solver, paths: paths, language: language}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/solve", h.handleSolve)

		r.Post("/exam-series", h.handleCreateSeries)
		r.Get("/exam-series", h.handleListSeries)
		r.Get("/exam-series/{id}", h.handleGetSeries)
		r.Delete("/exam-series/{id}", h.handleDeleteSeries)
		r.Post("/exams/{id}/submit", h.handleSubmitExam)

		r.Post("/learning-paths", h.handleCreatePath)
		r.Get("/learning-paths", h.handleListPaths)
		r.Get("/learning-paths/{id}", h.handleGetPath)
		r.Delete("/learning-paths/{id}", h.handleDeletePath)
		r.Post("/learning-paths/{id}/steps/{n}/material", h.handleStepMaterial)
		r.Post("/learning-paths/{id}/steps/{n}/quiz", h.handleStepQuiz)

		r.Post("/practice-exams", h.handleSavePracticeExam)
		r.Get("/practice-exams", h.handleListPracticeExams)
		r.Get("/practice-exams/{id}", h.handleGetPracticeExam)
		r.Delete("/practice-exams/{id}", h.handleDeletePracticeExam)
		r.Post("/practice-exams/{id}/submit", h.handleSubmitPracticeExam)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses: bad input is the
// caller's fault, transport failures are the upstream provider's.
func writeError(w http.ResponseWriter, err error) {
	var inputErr *generate.InputError
	var transportErr *generate.TransportError
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &inputErr):
		status = http.StatusBadRequest
	case errors.As(err, &transportErr):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeNotFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": what + " not found"})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}

func (h *Handler) lang(requested string) string {
	if requested != "" {
		return requested
	}
	return h.language
}

// fileUpload carries an uploaded file; Data is base64 in the JSON body.
type fileUpload struct {
	Name string `json:"name"`
	Data []byte `json:"data"`
}

type solveRequest struct {
	Content  string      `json:"content"`
	File     *fileUpload `json:"file"`
	Language string      `json:"language"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if !decodeBody(w, r, &req) {
		return
	}

	content := req.Content
	if req.File != nil {
		extracted, err := h.llm.ExtractText(r.Context(), req.File.Name, req.File.Data)
		if err != nil {
			writeError(w, &generate.TransportError{Op: "text extraction", Err: err})
			return
		}
		content = extracted
	}

	problems, err := h.solver.Solve(r.Context(), content, h.lang(req.Language))
	if err != nil {
		writeError(w, err)
		return
	}
	// An empty result is a success: nothing solvable was found.
	if problems == nil {
		problems = []model.Problem{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"problems": problems})
}

type createSeriesRequest struct {
	Topic            string       `json:"topic"`
	Description      string       `json:"description"`
	NumberOfExams    int          `json:"numberOfExams"`
	QuestionsPerExam int          `json:"questionsPerExam"`
	ExamTime         int          `json:"examTime"`
	Language         string       `json:"language"`
	Files            []fileUpload `json:"files"`
}

func (h *Handler) handleCreateSeries(w http.ResponseWriter, r *http.Request) {
	var req createSeriesRequest
	if !decodeBody(w, r, &req) {
		return
	}

	genReq := generate.SeriesRequest{
		Topic:       req.Topic,
		Description: req.Description,
		Settings: generate.SeriesSettings{
			NumberOfExams:    req.NumberOfExams,
			QuestionsPerExam: req.QuestionsPerExam,
		},
		ExamTimeMinutes: req.ExamTime,
		Language:        h.lang(req.Language),
	}
	for _, f := range req.Files {
		genReq.ReferenceFiles = append(genReq.ReferenceFiles, generate.ReferenceFile{Name: f.Name, Data: f.Data})
	}

	series, err := h.exams.GenerateSeries(r.Context(), genReq)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.SaveExamSeries(series); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, series)
}

func (h *Handler) handleListSeries(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListExamSeries()
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []model.ExamSeries{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetSeries(w http.ResponseWriter, r *http.Request) {
	series, err := h.store.GetExamSeries(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if series == nil {
		writeNotFound(w, "exam series")
		return
	}
	writeJSON(w, http.StatusOK, series)
}

func (h *Handler) handleDeleteSeries(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteExamSeries(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type submitRequest struct {
	Score     float64 `json:"score"`
	TimeTaken int     `json:"timeTaken"`
}

func (h *Handler) handleSubmitExam(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res := model.ExamResult{Score: req.Score, CompletedAt: time.Now(), TimeTaken: req.TimeTaken}
	if err := h.store.UpdateExamResult(chi.URLParam(r, "id"), res); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "exam")
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type createPathRequest struct {
	Topic    string `json:"topic"`
	Language string `json:"language"`
}

func (h *Handler) handleCreatePath(w http.ResponseWriter, r *http.Request) {
	var req createPathRequest
	if !decodeBody(w, r, &req) {
		return
	}

	path, err := h.paths.GeneratePath(r.Context(), req.Topic, h.lang(req.Language))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.store.SaveLearningPath(path); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, path)
}

func (h *Handler) handleListPaths(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListLearningPaths()
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []model.LearningPath{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetPath(w http.ResponseWriter, r *http.Request) {
	path, err := h.store.GetLearningPath(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if path == nil {
		writeNotFound(w, "learning path")
		return
	}
	writeJSON(w, http.StatusOK, path)
}

func (h *Handler) handleDeletePath(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteLearningPath(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pathStep resolves the {id}/{n} pair used by the per-step endpoints.
// Step numbers are 1-based and equal to the stored positional index.
func (h *Handler) pathStep(w http.ResponseWriter, r *http.Request) (*model.LearningPath, *model.LearningStep, bool) {
	path, err := h.store.GetLearningPath(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return nil, nil, false
	}
	if path == nil {
		writeNotFound(w, "learning path")
		return nil, nil, false
	}
	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil || n < 1 || n > len(path.Steps) {
		writeNotFound(w, "learning step")
		return nil, nil, false
	}
	return path, &path.Steps[n-1], true
}

type stepContentRequest struct {
	Language     string `json:"language"`
	NumQuestions int    `json:"numQuestions"`
}

func (h *Handler) handleStepMaterial(w http.ResponseWriter, r *http.Request) {
	path, step, ok := h.pathStep(w, r)
	if !ok {
		return
	}
	var req stepContentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	// Material is generated fresh on every open and never stored.
	material, err := h.paths.GenerateStepMaterial(r.Context(), path.Topic, *step, h.lang(req.Language))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, material)
}

func (h *Handler) handleStepQuiz(w http.ResponseWriter, r *http.Request) {
	path, step, ok := h.pathStep(w, r)
	if !ok {
		return
	}
	var req stepContentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	questions, err := h.paths.GenerateStepQuiz(r.Context(), path.Topic, step.Title, h.lang(req.Language), req.NumQuestions)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (h *Handler) handleSavePracticeExam(w http.ResponseWriter, r *http.Request) {
	var exam model.PracticeExam
	if !decodeBody(w, r, &exam) {
		return
	}
	if exam.Title == "" || len(exam.Questions) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "a practice exam needs a title and at least one question"})
		return
	}
	if exam.ID == "" {
		exam.ID = uuid.NewString()
	}
	if exam.CreatedAt.IsZero() {
		exam.CreatedAt = time.Now()
	}
	if err := h.store.SavePracticeExam(&exam); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, exam)
}

func (h *Handler) handleListPracticeExams(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.ListPracticeExams()
	if err != nil {
		writeError(w, err)
		return
	}
	if list == nil {
		list = []model.PracticeExam{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetPracticeExam(w http.ResponseWriter, r *http.Request) {
	exam, err := h.store.GetPracticeExam(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	if exam == nil {
		writeNotFound(w, "practice exam")
		return
	}
	writeJSON(w, http.StatusOK, exam)
}

func (h *Handler) handleDeletePracticeExam(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeletePracticeExam(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleSubmitPracticeExam(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res := model.ExamResult{Score: req.Score, CompletedAt: time.Now(), TimeTaken: req.TimeTaken}
	if err := h.store.UpdatePracticeExamResult(chi.URLParam(r, "id"), res); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeNotFound(w, "practice exam")
			return
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
