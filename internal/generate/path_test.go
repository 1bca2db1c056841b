package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/studyforge/studyforge/internal/model"
)

func TestGeneratePathHappyPath(t *testing.T) {
	raw := `{
		"topic": "Linear Algebra",
		"totalEstimatedTime": "6 weeks",
		"difficulty": "Intermediate",
		"description": "vectors to eigenvalues",
		"steps": [
			{"step": 3, "title": "Vectors", "description": "d1", "estimatedTime": "1 week",
			 "difficulty": "Beginner", "keyTopics": ["vectors"], "practiceExercises": ["add vectors"]},
			{"step": 3, "title": "Matrices", "description": "d2", "estimatedTime": "2 weeks",
			 "difficulty": "Intermediate", "prerequisites": ["Vectors"], "keyTopics": ["matrices"], "practiceExercises": ["multiply"]}
		]
	}`
	g := NewPathGenerator(&stubCompleter{responses: []string{raw}}, RetryPolicy{})

	path, err := g.GeneratePath(context.Background(), "Linear Algebra", "en")
	if err != nil {
		t.Fatalf("GeneratePath: %v", err)
	}
	if path.Difficulty != model.PathIntermediate {
		t.Errorf("difficulty = %q", path.Difficulty)
	}
	if len(path.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(path.Steps))
	}
	// Duplicate model numbering is repaired to positional order.
	if path.Steps[0].Index != 1 || path.Steps[1].Index != 2 {
		t.Errorf("steps not renumbered: %d, %d", path.Steps[0].Index, path.Steps[1].Index)
	}
	if path.Steps[1].Prerequisites[0] != "Vectors" {
		t.Errorf("prerequisites lost: %+v", path.Steps[1])
	}
}

func TestGeneratePathUnknownDifficultyBecomesMixed(t *testing.T) {
	raw := `{"difficulty": "Impossible", "steps": [{"step": 1, "title": "T", "description": "d"}]}`
	g := NewPathGenerator(&stubCompleter{responses: []string{raw}}, RetryPolicy{})
	path, err := g.GeneratePath(context.Background(), "Topology", "en")
	if err != nil {
		t.Fatalf("GeneratePath: %v", err)
	}
	if path.Difficulty != model.PathMixed {
		t.Errorf("difficulty = %q, want Mixed", path.Difficulty)
	}
}

func TestGeneratePathEmptyTopic(t *testing.T) {
	g := NewPathGenerator(&stubCompleter{}, RetryPolicy{})
	_, err := g.GeneratePath(context.Background(), "  ", "en")
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestGeneratePathMalformedFallsBack(t *testing.T) {
	g := NewPathGenerator(&stubCompleter{responses: []string{"not json"}}, RetryPolicy{})
	path, err := g.GeneratePath(context.Background(), "Calculus", "en")
	if err != nil {
		t.Fatalf("GeneratePath: %v", err)
	}
	if len(path.Steps) != 3 {
		t.Fatalf("fallback path has %d steps, want 3", len(path.Steps))
	}
	for i, s := range path.Steps {
		if s.Index != i+1 {
			t.Errorf("fallback step %d has index %d", i, s.Index)
		}
		if s.Title == "" {
			t.Errorf("fallback step %d has empty title", i)
		}
	}
	if path.Difficulty != model.PathMixed {
		t.Errorf("fallback difficulty = %q", path.Difficulty)
	}
}

func TestGenerateStepMaterial(t *testing.T) {
	raw := `{"stepTitle": "Vectors", "content": "A vector is...",
		"examples": [{"label": "Addition", "detail": "(1,2)+(3,4)=(4,6)"}],
		"keyPoints": ["direction and magnitude"]}`
	g := NewPathGenerator(&stubCompleter{responses: []string{raw}}, RetryPolicy{})

	mat, err := g.GenerateStepMaterial(context.Background(), "Linear Algebra",
		model.LearningStep{Title: "Vectors", Description: "intro"}, "en")
	if err != nil {
		t.Fatalf("GenerateStepMaterial: %v", err)
	}
	if mat.Content == "" || len(mat.Examples) != 1 || mat.Examples[0].Label != "Addition" {
		t.Errorf("unexpected material: %+v", mat)
	}
}

func TestGenerateStepMaterialMalformedFallsBack(t *testing.T) {
	g := NewPathGenerator(&stubCompleter{responses: []string{"{}"}}, RetryPolicy{})
	mat, err := g.GenerateStepMaterial(context.Background(), "Linear Algebra",
		model.LearningStep{Title: "Vectors"}, "en")
	if err != nil {
		t.Fatalf("GenerateStepMaterial: %v", err)
	}
	if mat.Content == "" || mat.StepTitle != "Vectors" {
		t.Errorf("fallback material incomplete: %+v", mat)
	}
}

func TestGenerateStepQuiz(t *testing.T) {
	raw := `[
		{"question": "Q1?", "options": ["a","b","c","d"], "correctAnswer": 2, "explanation": "e"},
		{"question": "", "options": ["a","b"], "correctAnswer": 0, "explanation": "invalid, dropped"},
		{"question": "Q3?", "options": ["a","b","c","d"], "correctAnswer": 9, "explanation": "index out of range, dropped"}
	]`
	g := NewPathGenerator(&stubCompleter{responses: []string{raw}}, RetryPolicy{})

	quiz, err := g.GenerateStepQuiz(context.Background(), "Linear Algebra", "Vectors", "en", 3)
	if err != nil {
		t.Fatalf("GenerateStepQuiz: %v", err)
	}
	if len(quiz) != 1 {
		t.Fatalf("got %d questions, want 1 usable", len(quiz))
	}
	if quiz[0].Question != "Q1?" || quiz[0].CorrectAnswer != 2 {
		t.Errorf("unexpected question: %+v", quiz[0])
	}
}

func TestGenerateStepQuizMalformedFallsBack(t *testing.T) {
	g := NewPathGenerator(&stubCompleter{responses: []string{"oops"}}, RetryPolicy{})
	quiz, err := g.GenerateStepQuiz(context.Background(), "Linear Algebra", "Vectors", "en", 5)
	if err != nil {
		t.Fatalf("GenerateStepQuiz: %v", err)
	}
	if len(quiz) != 1 {
		t.Fatalf("fallback quiz has %d questions, want 1", len(quiz))
	}
	if quiz[0].CorrectAnswer != 0 || len(quiz[0].Options) != 4 {
		t.Errorf("unexpected fallback question: %+v", quiz[0])
	}
}
