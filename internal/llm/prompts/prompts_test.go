package prompts

import (
	"strings"
	"testing"
)

func TestDifficultyConfig(t *testing.T) {
	labels := []string{"Foundation", "Beginner", "Intermediate", "Advanced", "Expert", "Master", "Genius"}
	for i, want := range labels {
		cfg := DifficultyConfig(i + 1)
		if cfg.Label != want {
			t.Errorf("level %d: label = %q, want %q", i+1, cfg.Label, want)
		}
		if cfg.Level != i+1 {
			t.Errorf("level %d: Level field = %d", i+1, cfg.Level)
		}
		if cfg.Complexity == "" || cfg.Cognitive == "" {
			t.Errorf("level %d: empty instruction text", i+1)
		}
	}
}

func TestDifficultyConfigClamps(t *testing.T) {
	if got := DifficultyConfig(0).Label; got != "Foundation" {
		t.Errorf("level 0 clamps to Foundation, got %q", got)
	}
	if got := DifficultyConfig(-3).Label; got != "Foundation" {
		t.Errorf("negative level clamps to Foundation, got %q", got)
	}
	if got := DifficultyConfig(8).Label; got != "Genius" {
		t.Errorf("level 8 clamps to Genius, got %q", got)
	}
}

func TestBuildExamPrompt(t *testing.T) {
	p := BuildExamPrompt("Algebra Basics", "covers linear equations", 2, 3, 10, 30, "Spanish")

	for _, want := range []string{
		"Spanish",
		"Algebra Basics",
		"covers linear equations",
		`"Beginner"`,
		"straightforward application",
		"exactly 10 questions",
		"30 minutes",
		"multiple-choice",
		"ONLY the JSON",
	} {
		if !strings.Contains(p, want) {
			t.Errorf("exam prompt missing %q", want)
		}
	}
}

func TestBuildExamPromptEscalates(t *testing.T) {
	low := BuildExamPrompt("Calculus", "", 1, 7, 10, 30, "English")
	high := BuildExamPrompt("Calculus", "", 7, 7, 10, 30, "English")

	if !strings.Contains(low, "basic recall") {
		t.Error("level 1 prompt missing Foundation complexity text")
	}
	if !strings.Contains(high, "leading specialist") {
		t.Error("level 7 prompt missing Genius complexity text")
	}
	if low == high {
		t.Error("prompts for different levels must differ")
	}
}

func TestBuildSolverPrompt(t *testing.T) {
	p := BuildSolverPrompt("Solve 2x+4=10", "English")
	for _, want := range []string{"Solve 2x+4=10", "English", "empty array", "finalAnswer", "ONLY the JSON"} {
		if !strings.Contains(p, want) {
			t.Errorf("solver prompt missing %q", want)
		}
	}
}

func TestBuildLearningPathPrompt(t *testing.T) {
	p := BuildLearningPathPrompt("Linear Algebra", "German")
	for _, want := range []string{"Linear Algebra", "German", "totalEstimatedTime", `"Mixed"`, "practiceExercises", "ONLY the JSON"} {
		if !strings.Contains(p, want) {
			t.Errorf("path prompt missing %q", want)
		}
	}
}

func TestBuildStepPrompts(t *testing.T) {
	m := BuildStepMaterialPrompt("Statistics", "Probability basics", "Events and sample spaces", "English")
	for _, want := range []string{"Statistics", "Probability basics", "Events and sample spaces", "keyPoints", "examples"} {
		if !strings.Contains(m, want) {
			t.Errorf("material prompt missing %q", want)
		}
	}

	q := BuildStepQuizPrompt("Statistics", "Probability basics", "English", 5)
	for _, want := range []string{"exactly 5", "correctAnswer", "0-based"} {
		if !strings.Contains(q, want) {
			t.Errorf("quiz prompt missing %q", want)
		}
	}

	// Empty step description omits its section.
	m2 := BuildStepMaterialPrompt("Statistics", "Probability basics", "", "English")
	if strings.Contains(m2, "STEP DESCRIPTION") {
		t.Error("material prompt should omit empty step description")
	}
}
