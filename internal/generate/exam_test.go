package generate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func validExamJSON(level int) string {
	return fmt.Sprintf("```json\n"+`{
		"title": "Level %d Exam",
		"description": "desc",
		"instructions": "answer everything",
		"totalPoints": 100,
		"estimatedTime": 30,
		"questions": [
			{"id": "q1", "question": "What is x?", "type": "multiple-choice",
			 "options": ["1","2","3","4"], "correctAnswer": 1, "points": 50,
			 "explanation": "because", "difficulty": "Easy"},
			{"question": "Explain y.", "type": "essay", "correctAnswer": "y is y",
			 "explanation": "so", "difficulty": "Hard"}
		]
	}`+"\n```", level)
}

func TestGenerateSeriesHappyPath(t *testing.T) {
	stub := &stubCompleter{responses: []string{validExamJSON(1), validExamJSON(2)}}
	g := newTestExamGenerator(stub)

	series, err := g.GenerateSeries(context.Background(), SeriesRequest{
		Topic:           "Algebra Basics",
		Description:     "covers linear equations",
		Settings:        SeriesSettings{NumberOfExams: 2, QuestionsPerExam: 10},
		ExamTimeMinutes: 30,
		Language:        "en",
	})
	if err != nil {
		t.Fatalf("GenerateSeries: %v", err)
	}

	if series.TotalExams != 2 {
		t.Errorf("TotalExams = %d, want 2", series.TotalExams)
	}
	if len(series.Exams) != 2 {
		t.Fatalf("got %d exams, want 2", len(series.Exams))
	}
	if series.ID == "" || series.CreatedAt.IsZero() {
		t.Error("series missing id or createdAt")
	}

	first, second := series.Exams[0], series.Exams[1]
	if first.DifficultyLevel != 1 || first.DifficultyLabel != "Foundation" {
		t.Errorf("exam 0: level %d label %q, want 1/Foundation", first.DifficultyLevel, first.DifficultyLabel)
	}
	if second.DifficultyLevel != 2 || second.DifficultyLabel != "Beginner" {
		t.Errorf("exam 1: level %d label %q, want 2/Beginner", second.DifficultyLevel, second.DifficultyLabel)
	}
	for _, e := range series.Exams {
		if e.SeriesID != series.ID {
			t.Errorf("exam %s not tagged with series id", e.ID)
		}
		if len(e.Questions) != 2 {
			t.Errorf("exam %s: %d questions, want 2", e.ID, len(e.Questions))
		}
	}

	// Prompts escalate per level.
	if !strings.Contains(stub.prompts[0], "Foundation") || !strings.Contains(stub.prompts[1], "Beginner") {
		t.Error("per-level prompts missing difficulty labels")
	}
}

func TestGenerateSeriesDefaultsMissingFields(t *testing.T) {
	// No title, no points on the question, no totalPoints.
	raw := `{"questions":[{"question":"Q?","type":"short-answer","correctAnswer":"a","explanation":"e"}]}`
	stub := &stubCompleter{responses: []string{raw}}
	g := newTestExamGenerator(stub)

	series, err := g.GenerateSeries(context.Background(), SeriesRequest{
		Topic:       "Sets",
		Description: "basic set theory",
		Settings:    SeriesSettings{NumberOfExams: 1, QuestionsPerExam: 10},
		Language:    "en",
	})
	if err != nil {
		t.Fatalf("GenerateSeries: %v", err)
	}
	exam := series.Exams[0]
	if exam.Title == "" || exam.Instructions == "" || exam.Description == "" {
		t.Error("missing text fields must be defaulted")
	}
	q := exam.Questions[0]
	if q.Points != 10 {
		t.Errorf("question points = %d, want default 100/questionsPerExam = 10", q.Points)
	}
	if q.ID == "" {
		t.Error("question id must be defaulted")
	}
	if exam.TotalPoints != 10 {
		t.Errorf("totalPoints = %d, want sum of question points", exam.TotalPoints)
	}
	if exam.EstimatedTime != 30 {
		t.Errorf("estimatedTime = %d, want requested default 30", exam.EstimatedTime)
	}
}

func TestGenerateSeriesRequiresContent(t *testing.T) {
	g := newTestExamGenerator(&stubCompleter{})
	_, err := g.GenerateSeries(context.Background(), SeriesRequest{
		Topic:       "Algebra",
		Description: "   ",
		Settings:    SeriesSettings{NumberOfExams: 1},
	})
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestGenerateSeriesTransportFailureAborts(t *testing.T) {
	boom := errors.New("rate limited")
	stub := &stubCompleter{
		responses: []string{validExamJSON(1)},
		errs:      []error{nil, boom},
	}
	g := newTestExamGenerator(stub)

	series, err := g.GenerateSeries(context.Background(), SeriesRequest{
		Topic:       "Algebra",
		Description: "covers linear equations",
		Settings:    SeriesSettings{NumberOfExams: 3},
		Language:    "en",
	})
	if series != nil {
		t.Error("no partial series may be returned on transport failure")
	}
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Error("underlying error must be preserved")
	}
}

func TestGenerateSeriesMalformedLevelFallsBack(t *testing.T) {
	stub := &stubCompleter{responses: []string{
		validExamJSON(1),
		"I'm sorry, here is an essay about algebra instead.",
		validExamJSON(3),
	}}
	g := newTestExamGenerator(stub)

	series, err := g.GenerateSeries(context.Background(), SeriesRequest{
		Topic:       "Algebra",
		Description: "covers linear equations",
		Settings:    SeriesSettings{NumberOfExams: 3},
		Language:    "en",
	})
	if err != nil {
		t.Fatalf("GenerateSeries: %v", err)
	}
	if len(series.Exams) != 3 {
		t.Fatalf("got %d exams, want 3", len(series.Exams))
	}

	fb := series.Exams[1]
	if len(fb.Questions) != 1 {
		t.Errorf("fallback exam has %d questions, want 1", len(fb.Questions))
	}
	if fb.DifficultyLevel != 2 || fb.DifficultyLabel != "Beginner" {
		t.Errorf("fallback exam level/label = %d/%q, want 2/Beginner", fb.DifficultyLevel, fb.DifficultyLabel)
	}
	if series.Exams[0].DifficultyLabel != "Foundation" || series.Exams[2].DifficultyLabel != "Intermediate" {
		t.Error("surrounding levels must keep their configured labels")
	}
}

func TestGenerateSeriesLevelsFormContiguousRange(t *testing.T) {
	const n = 4
	responses := make([]string, n)
	for i := range responses {
		responses[i] = validExamJSON(i + 1)
	}
	g := newTestExamGenerator(&stubCompleter{responses: responses})

	series, err := g.GenerateSeries(context.Background(), SeriesRequest{
		Topic:       "Geometry",
		Description: "triangles and circles",
		Settings:    SeriesSettings{NumberOfExams: n},
		Language:    "en",
	})
	if err != nil {
		t.Fatalf("GenerateSeries: %v", err)
	}

	labels := map[string]bool{
		"Foundation": true, "Beginner": true, "Intermediate": true, "Advanced": true,
		"Expert": true, "Master": true, "Genius": true,
	}
	for i, e := range series.Exams {
		if e.DifficultyLevel != i+1 {
			t.Errorf("exam %d has level %d", i, e.DifficultyLevel)
		}
		if !labels[e.DifficultyLabel] {
			t.Errorf("exam %d label %q not in the fixed vocabulary", i, e.DifficultyLabel)
		}
	}
}

func TestGenerateSeriesWithFilesOnly(t *testing.T) {
	stub := &stubCompleter{responses: []string{validExamJSON(1)}}
	g := newTestExamGenerator(stub)

	_, err := g.GenerateSeries(context.Background(), SeriesRequest{
		Topic:          "Physics",
		ReferenceFiles: []ReferenceFile{{Name: "notes.txt", Data: []byte("F = ma")}},
		Settings:       SeriesSettings{NumberOfExams: 1},
		Language:       "en",
	})
	if err != nil {
		t.Fatalf("files alone must satisfy the content requirement: %v", err)
	}
}
