// Package generate drives the build-prompt, call-model, normalize, decode
// sequence for each feature, substituting deterministic fallback records
// when generated content cannot be decoded. Persistence is never performed
// here; callers save the returned records.
package generate

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/time/rate"

	"github.com/studyforge/studyforge/internal/codec"
	"github.com/studyforge/studyforge/internal/i18n"
	"github.com/studyforge/studyforge/internal/llm"
	"github.com/studyforge/studyforge/internal/llm/prompts"
	"github.com/studyforge/studyforge/internal/model"
)

const (
	defaultQuestionsPerExam = 10
	defaultExamTimeMinutes  = 30
	// Inter-level delay keeping sequential series generation under
	// provider rate limits.
	defaultLevelDelay = time.Second
)

// ReferenceFile is an uploaded file supplied as a content source.
type ReferenceFile struct {
	Name string
	Data []byte
}

// SeriesSettings holds the user-chosen shape of a series.
type SeriesSettings struct {
	NumberOfExams    int
	QuestionsPerExam int
}

// SeriesRequest is the input to GenerateSeries. At least one of
// Description or ReferenceFiles must carry content.
type SeriesRequest struct {
	Topic           string
	Description     string
	ReferenceFiles  []ReferenceFile
	Settings        SeriesSettings
	ExamTimeMinutes int
	Language        string
}

// ExamGenerator produces progressive exam series.
type ExamGenerator struct {
	llm     llm.Completer
	retry   RetryPolicy
	limiter *rate.Limiter
}

// NewExamGenerator creates an exam generator. A zero levelDelay uses the
// default one-second spacing between per-level requests.
func NewExamGenerator(c llm.Completer, retry RetryPolicy, levelDelay time.Duration) *ExamGenerator {
	if levelDelay <= 0 {
		levelDelay = defaultLevelDelay
	}
	return &ExamGenerator{
		llm:     c,
		retry:   retry,
		limiter: rate.NewLimiter(rate.Every(levelDelay), 1),
	}
}

// examPayload is the raw decoded response shape before defaulting.
type examPayload struct {
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Instructions  string            `json:"instructions"`
	TotalPoints   int               `json:"totalPoints"`
	EstimatedTime int               `json:"estimatedTime"`
	Questions     []questionPayload `json:"questions"`
}

type questionPayload struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Type          string   `json:"type"`
	Options       []string `json:"options"`
	CorrectAnswer any      `json:"correctAnswer"`
	Points        int      `json:"points"`
	Explanation   string   `json:"explanation"`
	Difficulty    string   `json:"difficulty"`
}

// GenerateSeries builds one exam per difficulty level, sequentially and
// throttled. A transport failure at any level aborts the whole series with
// no partial result; a level whose content cannot be decoded degrades to a
// single-question fallback exam and generation continues.
func (g *ExamGenerator) GenerateSeries(ctx context.Context, req SeriesRequest) (*model.ExamSeries, error) {
	if strings.TrimSpace(req.Description) == "" && len(req.ReferenceFiles) == 0 {
		return nil, &InputError{Msg: "a description or at least one reference file is required"}
	}

	n := req.Settings.NumberOfExams
	if n < 1 {
		n = 1
	}
	questionsPerExam := req.Settings.QuestionsPerExam
	if questionsPerExam < 1 {
		questionsPerExam = defaultQuestionsPerExam
	}
	examTime := req.ExamTimeMinutes
	if examTime < 1 {
		examTime = defaultExamTimeMinutes
	}

	// Encoded reference content is prepared for providers that accept
	// multi-part input; the exam path itself is driven by the text prompt
	// alone and attachment stays best-effort.
	for _, f := range req.ReferenceFiles {
		if _, err := codec.FileToTransportEncoding(f.Name, f.Data); err != nil {
			slog.Warn("skipping unreadable reference file", "name", f.Name, "error", err)
		}
	}

	languageName := i18n.LanguageName(req.Language)
	loc := i18n.NewLocalizer(req.Language)
	now := time.Now()
	seriesID := uuid.NewString()

	exams := make([]model.Exam, 0, n)
	for level := 1; level <= n; level++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, &TransportError{Op: "series throttle", Err: err}
		}

		prompt := prompts.BuildExamPrompt(req.Topic, req.Description, level, n, questionsPerExam, examTime, languageName)
		raw, err := completeWithRetry(ctx, g.llm, prompt, g.retry)
		if err != nil {
			return nil, err
		}

		var payload examPayload
		if derr := llm.DecodeResponse(raw, &payload); derr != nil || len(payload.Questions) == 0 {
			slog.Warn("exam content unusable, substituting fallback",
				"level", level, "topic", req.Topic, "error", derr)
			exams = append(exams, fallbackExam(loc, seriesID, req.Topic, level, examTime, now))
			continue
		}

		exams = append(exams, buildExam(loc, payload, seriesID, req.Topic, level, questionsPerExam, examTime, now))
	}

	return &model.ExamSeries{
		ID:          seriesID,
		Topic:       req.Topic,
		Description: req.Description,
		Exams:       exams,
		TotalExams:  n,
		CreatedAt:   now,
	}, nil
}

// buildExam converts a decoded payload into an Exam, defaulting every
// field the model left out.
func buildExam(loc *goi18n.Localizer, payload examPayload, seriesID, topic string, level, questionsPerExam, examTime int, now time.Time) model.Exam {
	cfg := prompts.DifficultyConfig(level)
	examID := uuid.NewString()

	defaultPoints := 100 / questionsPerExam
	if defaultPoints < 1 {
		defaultPoints = 1
	}

	questions := make([]model.Question, 0, len(payload.Questions))
	totalPoints := 0
	for i, qp := range payload.Questions {
		q := model.Question{
			ID:            qp.ID,
			Question:      qp.Question,
			Type:          model.QuestionType(qp.Type),
			Options:       qp.Options,
			CorrectAnswer: qp.CorrectAnswer,
			Points:        qp.Points,
			Explanation:   qp.Explanation,
			Difficulty:    model.QuestionDifficulty(qp.Difficulty),
		}
		if q.ID == "" {
			q.ID = examID + "-q" + strconv.Itoa(i+1)
		}
		if q.Type == "" {
			q.Type = model.QuestionShortAnswer
		}
		if q.Type != model.QuestionMultipleChoice {
			q.Options = nil
		}
		if q.Points <= 0 {
			q.Points = defaultPoints
		}
		if q.Difficulty == "" {
			q.Difficulty = model.QuestionMedium
		}
		totalPoints += q.Points
		questions = append(questions, q)
	}

	exam := model.Exam{
		ID:              examID,
		SeriesID:        seriesID,
		Title:           payload.Title,
		Description:     payload.Description,
		Instructions:    payload.Instructions,
		Questions:       questions,
		TotalPoints:     payload.TotalPoints,
		EstimatedTime:   payload.EstimatedTime,
		DifficultyLevel: level,
		DifficultyLabel: cfg.Label,
		CreatedAt:       now,
	}
	data := map[string]any{"Topic": topic, "Label": cfg.Label}
	if exam.Title == "" {
		exam.Title = i18n.Td(loc, "FallbackExamTitle", data)
	}
	if exam.Description == "" {
		exam.Description = i18n.Td(loc, "FallbackExamDescription", data)
	}
	if exam.Instructions == "" {
		exam.Instructions = i18n.T(loc, "FallbackExamInstructions")
	}
	if exam.TotalPoints <= 0 {
		exam.TotalPoints = totalPoints
	}
	if exam.EstimatedTime <= 0 {
		exam.EstimatedTime = examTime
	}
	return exam
}
