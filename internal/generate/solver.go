package generate

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/studyforge/studyforge/internal/i18n"
	"github.com/studyforge/studyforge/internal/llm"
	"github.com/studyforge/studyforge/internal/llm/prompts"
	"github.com/studyforge/studyforge/internal/model"
)

// Solver runs a single problem-solving pass over typed text or text
// extracted from an uploaded file.
type Solver struct {
	llm   llm.Completer
	retry RetryPolicy
}

// NewSolver creates a solver.
func NewSolver(c llm.Completer, retry RetryPolicy) *Solver {
	return &Solver{llm: c, retry: retry}
}

type problemPayload struct {
	Statement string `json:"statement"`
	Subject   string `json:"subject"`
	Steps     []struct {
		Index       int    `json:"step"`
		Explanation string `json:"explanation"`
		Work        string `json:"work"`
	} `json:"steps"`
	FinalAnswer string `json:"finalAnswer"`
}

// Solve extracts and solves every problem in content. Zero problems found
// is a success with an empty slice; the UI surfaces it as a "no problems
// found" condition, not an error. Undecodable content degrades to a single
// fallback problem.
func (s *Solver) Solve(ctx context.Context, content, language string) ([]model.Problem, error) {
	if strings.TrimSpace(content) == "" {
		return nil, &InputError{Msg: "no content to solve: provide text or an uploaded file"}
	}

	prompt := prompts.BuildSolverPrompt(content, i18n.LanguageName(language))
	raw, err := completeWithRetry(ctx, s.llm, prompt, s.retry)
	if err != nil {
		return nil, err
	}

	var payloads []problemPayload
	if derr := llm.DecodeResponse(raw, &payloads); derr != nil {
		slog.Warn("solver content unusable, substituting fallback", "error", derr)
		loc := i18n.NewLocalizer(language)
		return []model.Problem{fallbackProblem(loc, excerpt(content))}, nil
	}

	problems := make([]model.Problem, 0, len(payloads))
	for _, p := range payloads {
		problem := model.Problem{
			ID:          uuid.NewString(),
			Statement:   p.Statement,
			Subject:     p.Subject,
			FinalAnswer: p.FinalAnswer,
		}
		for i, sp := range p.Steps {
			problem.Steps = append(problem.Steps, model.SolutionStep{
				Index:       i + 1,
				Explanation: sp.Explanation,
				Work:        sp.Work,
			})
		}
		problems = append(problems, problem)
	}
	return problems, nil
}

// excerpt truncates content for use as a fallback problem statement.
func excerpt(content string) string {
	content = strings.TrimSpace(content)
	const max = 200
	if utf8.RuneCountInString(content) <= max {
		return content
	}
	runes := []rune(content)
	return string(runes[:max]) + "…"
}
