package generate

import (
	"context"
	"time"

	"github.com/studyforge/studyforge/internal/llm"
)

// RetryPolicy makes the transport retry behavior explicit. The default is
// MaxAttempts 1, i.e. zero retries, which matches the historical behavior
// of this pipeline; deployments that want retries opt in via flags.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

func (p RetryPolicy) attempts() int {
	if p.MaxAttempts < 1 {
		return 1
	}
	return p.MaxAttempts
}

// completeWithRetry runs one completion under the policy. Only the final
// failure is reported, wrapped as a TransportError.
func completeWithRetry(ctx context.Context, c llm.Completer, prompt string, p RetryPolicy) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= p.attempts(); attempt++ {
		if attempt > 1 && p.Backoff > 0 {
			wait := time.Duration(attempt-1) * p.Backoff
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return "", &TransportError{Op: "text completion", Err: ctx.Err()}
			case <-timer.C:
			}
		}
		raw, err := c.Complete(ctx, prompt)
		if err == nil {
			return raw, nil
		}
		lastErr = err
	}
	return "", &TransportError{Op: "text completion", Err: lastErr}
}
