package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jurisai/contractvault/internal/model"
)

const sampleContract = `SERVICE AGREEMENT

1. The Supplier shall deliver the services described in Schedule A within thirty days of the order date.
2. The Customer shall pay every invoice within fifteen days; late amounts accrue a penalty of two percent per month.
3. The Supplier shall indemnify and hold harmless the Customer against all third party claims arising from the services.
4. Either party may terminate this agreement for convenience; the Customer accepts unlimited liability for unpaid fees.
5. Notice under this agreement must be given in writing to the addresses listed on the first page.`

func TestSplitClauses_Numbered(t *testing.T) {
	t.Parallel()

	clauses := SplitClauses(sampleContract)
	require.Len(t, clauses, 5)
	assert.True(t, strings.HasPrefix(clauses[1], "2. The Customer shall pay"))
	for _, c := range clauses {
		assert.Greater(t, len(c), minClauseLen)
	}
}

func TestSplitClauses_SentenceFallback(t *testing.T) {
	t.Parallel()

	text := "The parties agree to cooperate in good faith at all times. Short one. This agreement is governed by the laws of the State of New York!"
	clauses := SplitClauses(text)
	require.Len(t, clauses, 2)
	assert.Equal(t, "The parties agree to cooperate in good faith at all times.", clauses[0])
}

func TestDetectSection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		clause string
		want   string
	}{
		{"Either party may terminate upon notice", "Termination"},
		{"The supplier is liable for direct damages", "Liability"},
		{"Fees are due within 30 days of invoice", "Payment"},
		{"All information shall remain confidential", "Confidentiality"},
		{"Nothing here applies", "General"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectSection(tt.clause))
		})
	}
}

func TestScoreRisk(t *testing.T) {
	t.Parallel()

	t.Run("no phrases", func(t *testing.T) {
		score, highlights, category := ScoreRisk("The parties meet quarterly.")
		assert.Equal(t, baseRiskScore, score)
		assert.Empty(t, highlights)
		assert.Equal(t, RiskLow, category)
	})

	t.Run("highest phrase wins", func(t *testing.T) {
		clause := "Breach of this clause triggers Liquidated Damages and a breach notice."
		score, highlights, category := ScoreRisk(clause)
		assert.Equal(t, 0.9, score)
		assert.Equal(t, RiskCritical, category)

		var breaches int
		for _, h := range highlights {
			assert.Equal(t, strings.ToLower(clause[h.StartPos:h.EndPos]), h.RiskType)
			assert.Equal(t, clause[h.StartPos:h.EndPos], h.Text)
			if h.RiskType == "breach" {
				breaches++
			}
		}
		assert.Equal(t, 2, breaches)
	})

	t.Run("category thresholds", func(t *testing.T) {
		_, _, category := ScoreRisk("this is an exclusive arrangement")
		assert.Equal(t, RiskMedium, category)
		_, _, category = ScoreRisk("the licensee shall indemnify")
		assert.Equal(t, RiskHigh, category)
	})
}

func TestRules_Analyze(t *testing.T) {
	t.Parallel()

	r := NewRules()
	out, err := r.Analyze(context.Background(), model.AnalysisInput{Text: sampleContract})
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal(out, &report))
	assert.Equal(t, 5, report.TotalClauses)
	assert.Equal(t, RiskCritical, report.OverallRisk)
	assert.Equal(t, 1, report.CriticalClauses)
	assert.Equal(t, 3, report.HighRiskClauses)
	require.NotEmpty(t, report.TopRisks)
	assert.Equal(t, "clause-004", report.TopRisks[0])

	again, err := r.Analyze(context.Background(), model.AnalysisInput{Text: sampleContract})
	require.NoError(t, err)
	assert.Equal(t, string(out), string(again))
}

func TestRules_AnalyzeErrors(t *testing.T) {
	t.Parallel()

	r := NewRules()

	_, err := r.Analyze(context.Background(), model.AnalysisInput{Text: "   "})
	assert.True(t, errors.Is(err, ErrNoText))

	_, err = r.Analyze(context.Background(), model.AnalysisInput{Text: "Too short."})
	assert.True(t, errors.Is(err, ErrNoClauses))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Analyze(ctx, model.AnalysisInput{Text: sampleContract})
	assert.True(t, errors.Is(err, context.Canceled))
}
