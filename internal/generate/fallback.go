package generate

import (
	"time"

	"github.com/google/uuid"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"

	"github.com/studyforge/studyforge/internal/i18n"
	"github.com/studyforge/studyforge/internal/llm/prompts"
	"github.com/studyforge/studyforge/internal/model"
)

// Fallback records: deterministic minimal placeholders substituted when
// generated content fails to decode. They are clearly generic but keep the
// operation available; the decode error is logged, never surfaced.

func fallbackExam(loc *goi18n.Localizer, seriesID, topic string, level, examTimeMinutes int, now time.Time) model.Exam {
	cfg := prompts.DifficultyConfig(level)
	examID := uuid.NewString()
	data := map[string]any{"Topic": topic, "Label": cfg.Label}
	return model.Exam{
		ID:           examID,
		SeriesID:     seriesID,
		Title:        i18n.Td(loc, "FallbackExamTitle", data),
		Description:  i18n.Td(loc, "FallbackExamDescription", data),
		Instructions: i18n.T(loc, "FallbackExamInstructions"),
		Questions: []model.Question{
			{
				ID:            examID + "-q1",
				Question:      i18n.Td(loc, "FallbackQuestion", data),
				Type:          model.QuestionEssay,
				CorrectAnswer: "",
				Points:        100,
				Explanation:   i18n.T(loc, "FallbackQuestionExplanation"),
				Difficulty:    model.QuestionMedium,
			},
		},
		TotalPoints:     100,
		EstimatedTime:   examTimeMinutes,
		DifficultyLevel: level,
		DifficultyLabel: cfg.Label,
		CreatedAt:       now,
	}
}

func fallbackPath(loc *goi18n.Localizer, topic string, now time.Time) *model.LearningPath {
	data := map[string]any{"Topic": topic}
	stepTime := i18n.T(loc, "FallbackStepTime")
	steps := []model.LearningStep{
		{
			Index:         1,
			Title:         i18n.Td(loc, "FallbackStepFoundationsTitle", data),
			Description:   i18n.Td(loc, "FallbackStepFoundationsDescription", data),
			EstimatedTime: stepTime,
			Difficulty:    string(model.PathBeginner),
			KeyTopics:     []string{topic},
		},
		{
			Index:         2,
			Title:         i18n.T(loc, "FallbackStepPracticeTitle"),
			Description:   i18n.Td(loc, "FallbackStepPracticeDescription", data),
			EstimatedTime: stepTime,
			Difficulty:    string(model.PathIntermediate),
			KeyTopics:     []string{topic},
		},
		{
			Index:         3,
			Title:         i18n.T(loc, "FallbackStepReviewTitle"),
			Description:   i18n.T(loc, "FallbackStepReviewDescription"),
			EstimatedTime: stepTime,
			Difficulty:    string(model.PathIntermediate),
			KeyTopics:     []string{topic},
		},
	}
	return &model.LearningPath{
		ID:                 uuid.NewString(),
		Topic:              topic,
		TotalEstimatedTime: i18n.T(loc, "FallbackPathTotalTime"),
		Difficulty:         model.PathMixed,
		Description:        i18n.Td(loc, "FallbackPathDescription", data),
		Steps:              steps,
		CreatedAt:          now,
	}
}

func fallbackMaterial(loc *goi18n.Localizer, topic, stepTitle string) *model.LearningMaterial {
	data := map[string]any{"Topic": topic, "Step": stepTitle}
	return &model.LearningMaterial{
		StepTitle: stepTitle,
		Content:   i18n.Td(loc, "FallbackMaterialContent", data),
		Examples:  []model.StepExample{},
		KeyPoints: []string{i18n.T(loc, "FallbackMaterialKeyPoint")},
	}
}

func fallbackQuiz(loc *goi18n.Localizer, topic, stepTitle string) []model.QuizQuestion {
	data := map[string]any{"Topic": topic, "Step": stepTitle}
	return []model.QuizQuestion{
		{
			Question: i18n.Td(loc, "FallbackQuizQuestion", data),
			Options: []string{
				i18n.Td(loc, "FallbackQuizCorrectOption", data),
				i18n.Td(loc, "FallbackQuizWrongOption1", data),
				i18n.T(loc, "FallbackQuizWrongOption2"),
				i18n.T(loc, "FallbackQuizWrongOption3"),
			},
			CorrectAnswer: 0,
			Explanation:   i18n.T(loc, "FallbackQuizExplanation"),
		},
	}
}

func fallbackProblem(loc *goi18n.Localizer, statement string) model.Problem {
	return model.Problem{
		ID:        uuid.NewString(),
		Statement: statement,
		Steps: []model.SolutionStep{
			{Index: 1, Explanation: i18n.T(loc, "FallbackSolutionStep")},
		},
		FinalAnswer: i18n.T(loc, "FallbackSolutionAnswer"),
	}
}
