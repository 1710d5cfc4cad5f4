package analyzer

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jurisai/contractvault/internal/model"
)

type timeoutAnalyzer struct {
	next    model.Analyzer
	timeout time.Duration
}

type analyzeResult struct {
	out json.RawMessage
	err error
}

// WithTimeout bounds every call to next by d, returning as soon as the
// deadline passes even if next ignores its context. d <= 0 disables the bound.
func WithTimeout(next model.Analyzer, d time.Duration) model.Analyzer {
	if d <= 0 {
		return next
	}
	return &timeoutAnalyzer{next: next, timeout: d}
}

func (a *timeoutAnalyzer) Analyze(ctx context.Context, input model.AnalysisInput) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	done := make(chan analyzeResult, 1)
	go func() {
		out, err := a.next.Analyze(ctx, input)
		done <- analyzeResult{out: out, err: err}
	}()

	select {
	case res := <-done:
		return res.out, res.err
	case <-ctx.Done():
		return nil, fmt.Errorf("analysis stopped after %s: %w", a.timeout, ctx.Err())
	}
}
