package generate

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studyforge/studyforge/internal/i18n"
	"github.com/studyforge/studyforge/internal/llm"
	"github.com/studyforge/studyforge/internal/llm/prompts"
	"github.com/studyforge/studyforge/internal/model"
)

const defaultQuizQuestions = 5

// PathGenerator produces learning paths plus the ephemeral per-step
// material and quizzes. Only the path skeleton is ever persisted; material
// and quizzes are regenerated each time a step is opened.
type PathGenerator struct {
	llm   llm.Completer
	retry RetryPolicy
}

// NewPathGenerator creates a path generator.
func NewPathGenerator(c llm.Completer, retry RetryPolicy) *PathGenerator {
	return &PathGenerator{llm: c, retry: retry}
}

type pathPayload struct {
	Topic              string `json:"topic"`
	TotalEstimatedTime string `json:"totalEstimatedTime"`
	Difficulty         string `json:"difficulty"`
	Description        string `json:"description"`
	Steps              []struct {
		Index             int      `json:"step"`
		Title             string   `json:"title"`
		Description       string   `json:"description"`
		EstimatedTime     string   `json:"estimatedTime"`
		Difficulty        string   `json:"difficulty"`
		Prerequisites     []string `json:"prerequisites"`
		KeyTopics         []string `json:"keyTopics"`
		PracticeExercises []string `json:"practiceExercises"`
	} `json:"steps"`
}

// GeneratePath builds an ordered study plan for a topic. Undecodable
// content degrades to a deterministic 3-step path.
func (g *PathGenerator) GeneratePath(ctx context.Context, topic, language string) (*model.LearningPath, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, &InputError{Msg: "a topic is required"}
	}

	prompt := prompts.BuildLearningPathPrompt(topic, i18n.LanguageName(language))
	raw, err := completeWithRetry(ctx, g.llm, prompt, g.retry)
	if err != nil {
		return nil, err
	}

	loc := i18n.NewLocalizer(language)
	now := time.Now()

	var payload pathPayload
	if derr := llm.DecodeResponse(raw, &payload); derr != nil || len(payload.Steps) == 0 {
		slog.Warn("learning path content unusable, substituting fallback", "topic", topic, "error", derr)
		return fallbackPath(loc, topic, now), nil
	}

	path := &model.LearningPath{
		ID:                 uuid.NewString(),
		Topic:              topic,
		TotalEstimatedTime: payload.TotalEstimatedTime,
		Difficulty:         model.PathDifficulty(payload.Difficulty),
		Description:        payload.Description,
		CreatedAt:          now,
	}
	switch path.Difficulty {
	case model.PathBeginner, model.PathIntermediate, model.PathAdvanced, model.PathMixed:
	default:
		path.Difficulty = model.PathMixed
	}
	for i, sp := range payload.Steps {
		path.Steps = append(path.Steps, model.LearningStep{
			// Positional numbering; whatever the model produced is
			// repaired here and again on save.
			Index:             i + 1,
			Title:             sp.Title,
			Description:       sp.Description,
			EstimatedTime:     sp.EstimatedTime,
			Difficulty:        sp.Difficulty,
			Prerequisites:     sp.Prerequisites,
			KeyTopics:         sp.KeyTopics,
			PracticeExercises: sp.PracticeExercises,
		})
	}
	return path, nil
}

// GenerateStepMaterial builds study material for one step. Undecodable
// content degrades to deterministic fallback material.
func (g *PathGenerator) GenerateStepMaterial(ctx context.Context, topic string, step model.LearningStep, language string) (*model.LearningMaterial, error) {
	prompt := prompts.BuildStepMaterialPrompt(topic, step.Title, step.Description, i18n.LanguageName(language))
	raw, err := completeWithRetry(ctx, g.llm, prompt, g.retry)
	if err != nil {
		return nil, err
	}

	loc := i18n.NewLocalizer(language)
	var material model.LearningMaterial
	if derr := llm.DecodeResponse(raw, &material); derr != nil || material.Content == "" {
		slog.Warn("step material unusable, substituting fallback", "step", step.Title, "error", derr)
		return fallbackMaterial(loc, topic, step.Title), nil
	}
	if material.StepTitle == "" {
		material.StepTitle = step.Title
	}
	return &material, nil
}

// GenerateStepQuiz builds a short quiz for one step. Undecodable content
// degrades to a single deterministic fallback question.
func (g *PathGenerator) GenerateStepQuiz(ctx context.Context, topic, stepTitle, language string, numQuestions int) ([]model.QuizQuestion, error) {
	if numQuestions < 1 {
		numQuestions = defaultQuizQuestions
	}
	prompt := prompts.BuildStepQuizPrompt(topic, stepTitle, i18n.LanguageName(language), numQuestions)
	raw, err := completeWithRetry(ctx, g.llm, prompt, g.retry)
	if err != nil {
		return nil, err
	}

	loc := i18n.NewLocalizer(language)
	var questions []model.QuizQuestion
	if derr := llm.DecodeResponse(raw, &questions); derr != nil {
		slog.Warn("step quiz unusable, substituting fallback", "step", stepTitle, "error", derr)
		return fallbackQuiz(loc, topic, stepTitle), nil
	}

	usable := questions[:0]
	for _, q := range questions {
		if q.Question == "" || len(q.Options) < 2 || q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			continue
		}
		usable = append(usable, q)
	}
	if len(usable) == 0 {
		slog.Warn("step quiz had no usable questions, substituting fallback", "step", stepTitle)
		return fallbackQuiz(loc, topic, stepTitle), nil
	}
	return usable, nil
}
