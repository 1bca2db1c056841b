package generate

import (
	"context"
	"errors"
	"testing"
)

func TestSolveHappyPath(t *testing.T) {
	raw := "```json\n" + `[
		{"statement": "2x+4=10", "subject": "algebra",
		 "steps": [
			{"step": 7, "explanation": "subtract 4", "work": "2x = 6"},
			{"step": 2, "explanation": "divide by 2", "work": "x = 3"}
		 ],
		 "finalAnswer": "x = 3"}
	]` + "\n```"
	s := NewSolver(&stubCompleter{responses: []string{raw}}, RetryPolicy{})

	problems, err := s.Solve(context.Background(), "Solve 2x+4=10", "en")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1", len(problems))
	}
	p := problems[0]
	if p.ID == "" || p.Statement != "2x+4=10" || p.FinalAnswer != "x = 3" {
		t.Errorf("unexpected problem: %+v", p)
	}
	// Step numbering is positional regardless of model numbering.
	if len(p.Steps) != 2 || p.Steps[0].Index != 1 || p.Steps[1].Index != 2 {
		t.Errorf("steps not renumbered positionally: %+v", p.Steps)
	}
}

func TestSolveNoProblemsIsSuccess(t *testing.T) {
	s := NewSolver(&stubCompleter{responses: []string{"[]"}}, RetryPolicy{})
	problems, err := s.Solve(context.Background(), "just some lecture notes", "en")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("got %d problems, want 0", len(problems))
	}
}

func TestSolveEmptyContent(t *testing.T) {
	s := NewSolver(&stubCompleter{}, RetryPolicy{})
	_, err := s.Solve(context.Background(), "   \n ", "en")
	var inputErr *InputError
	if !errors.As(err, &inputErr) {
		t.Fatalf("expected InputError, got %v", err)
	}
}

func TestSolveTransportFailure(t *testing.T) {
	boom := errors.New("connection refused")
	s := NewSolver(&stubCompleter{errs: []error{boom}}, RetryPolicy{})
	_, err := s.Solve(context.Background(), "solve x", "en")
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestSolveMalformedFallsBack(t *testing.T) {
	s := NewSolver(&stubCompleter{responses: []string{"no json at all"}}, RetryPolicy{})
	problems, err := s.Solve(context.Background(), "Solve 2x+4=10", "en")
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(problems) != 1 {
		t.Fatalf("got %d problems, want 1 fallback", len(problems))
	}
	if problems[0].Statement != "Solve 2x+4=10" {
		t.Errorf("fallback statement = %q", problems[0].Statement)
	}
	if len(problems[0].Steps) != 1 {
		t.Errorf("fallback problem has %d steps, want 1", len(problems[0].Steps))
	}
}

func TestSolveRetryPolicy(t *testing.T) {
	flaky := &stubCompleter{
		errs:      []error{errors.New("timeout"), nil},
		responses: []string{"", "[]"},
	}
	s := NewSolver(flaky, RetryPolicy{MaxAttempts: 2})
	if _, err := s.Solve(context.Background(), "solve x", "en"); err != nil {
		t.Fatalf("second attempt should have succeeded: %v", err)
	}
	if len(flaky.prompts) != 2 {
		t.Errorf("expected 2 attempts, got %d", len(flaky.prompts))
	}
}
