// Package analyzer provides the analysis collaborators the contract service
// can run on a cache miss: a built-in rule-based clause risk analyzer and a
// client for an out-of-process analysis service.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jurisai/contractvault/internal/model"
)

var (
	// ErrNoText is returned when the document yielded no text to analyze.
	ErrNoText = errors.New("no text extracted from document")
	// ErrNoClauses is returned when no clause long enough to score was found.
	ErrNoClauses = errors.New("no clauses found")
)

// Risk categories, highest first.
const (
	RiskCritical = "CRITICAL"
	RiskHigh     = "HIGH"
	RiskMedium   = "MEDIUM"
	RiskLow      = "LOW"
)

const (
	baseRiskScore  = 0.3
	minClauseLen   = 50
	minSentenceLen = 30
	highRiskScore  = 0.7
	topRiskLimit   = 5
	defaultSection = "General"
)

type riskPattern struct {
	phrase   string
	severity string
	score    float64
}

var riskPatterns = []riskPattern{
	{"unlimited liability", RiskCritical, 1.0},
	{"personal guarantee", RiskCritical, 0.95},
	{"liquidated damages", RiskCritical, 0.9},
	{"immediate termination", RiskCritical, 0.9},
	{"forfeit", RiskCritical, 0.85},
	{"irrevocable", RiskCritical, 0.85},

	{"indemnify", RiskHigh, 0.8},
	{"hold harmless", RiskHigh, 0.8},
	{"penalty", RiskHigh, 0.75},
	{"breach", RiskHigh, 0.7},
	{"default", RiskHigh, 0.7},
	{"void", RiskHigh, 0.75},
	{"terminate", RiskHigh, 0.7},
	{"non-compete", RiskHigh, 0.8},

	{"exclusive", RiskMedium, 0.6},
	{"confidential", RiskMedium, 0.5},
	{"assignment", RiskMedium, 0.6},
	{"modification", RiskMedium, 0.5},
	{"governing law", RiskMedium, 0.5},
	{"jurisdiction", RiskMedium, 0.5},

	{"notice", RiskLow, 0.3},
	{"amendment", RiskLow, 0.3},
	{"entire agreement", RiskLow, 0.2},
	{"severability", RiskLow, 0.2},
}

type sectionKeywords struct {
	section  string
	keywords []string
}

// First match wins, so order matters.
var sections = []sectionKeywords{
	{"Termination", []string{"terminate", "termination", "end", "expire", "dissolution", "cancel"}},
	{"Liability", []string{"liability", "liable", "damages", "loss", "harm", "responsible"}},
	{"Indemnification", []string{"indemnify", "indemnification", "hold harmless", "protect"}},
	{"Payment", []string{"payment", "pay", "invoice", "fee", "amount", "cost", "price"}},
	{"Confidentiality", []string{"confidential", "non-disclosure", "proprietary", "secret", "private"}},
	{"Intellectual Property", []string{"intellectual property", "copyright", "trademark", "patent", "ip"}},
	{"Governing Law", []string{"governing law", "jurisdiction", "court", "legal", "dispute"}},
	{"Force Majeure", []string{"force majeure", "act of god", "unforeseeable", "extraordinary"}},
	{"Warranty", []string{"warranty", "warrant", "guarantee", "representation"}},
	{"Performance", []string{"performance", "obligation", "duty", "comply", "fulfill"}},
	{"Compliance", []string{"comply", "compliance", "regulation", "law", "legal requirement"}},
}

var clauseMarkers = []*regexp.Regexp{
	regexp.MustCompile(`(?:^|\s)\d+\.\d+\.?\s`),
	regexp.MustCompile(`(?:^|\s)\d+\.\s`),
	regexp.MustCompile(`(?:^|\s)\([a-z]\)\s`),
	regexp.MustCompile(`(?:^|\s)[A-Z][A-Z ]+:\s`),
	regexp.MustCompile(`(?:^|\s)Section\s+\d+`),
	regexp.MustCompile(`(?:^|\s)Article\s+\d+`),
}

var (
	whitespaceRun  = regexp.MustCompile(`\s+`)
	sentenceBreaks = regexp.MustCompile(`[.!?]\s+`)
)

// Highlight is one occurrence of a risk phrase inside a clause.
type Highlight struct {
	Text     string  `json:"text"`
	StartPos int     `json:"startPos"`
	EndPos   int     `json:"endPos"`
	RiskType string  `json:"riskType"`
	Severity string  `json:"severity"`
	Score    float64 `json:"score"`
}

// Clause is the risk assessment of a single clause.
type Clause struct {
	ID           string      `json:"clauseId"`
	Text         string      `json:"clauseText"`
	Section      string      `json:"section"`
	RiskScore    float64     `json:"riskScore"`
	RiskCategory string      `json:"riskCategory"`
	Highlights   []Highlight `json:"riskHighlights"`
}

// Report is the analysis result the Rules analyzer produces.
type Report struct {
	TotalClauses     int            `json:"totalClauses"`
	HighRiskClauses  int            `json:"highRiskClauses"`
	CriticalClauses  int            `json:"criticalClauses"`
	OverallRisk      string         `json:"overallRisk"`
	SectionBreakdown map[string]int `json:"sectionBreakdown"`
	TopRisks         []string       `json:"topRisks"`
	Clauses          []Clause       `json:"clauses"`
}

// Rules scores contract clauses against a fixed table of risky phrases.
type Rules struct{}

var _ model.Analyzer = Rules{}

// NewRules returns the rule-based analyzer.
func NewRules() Rules {
	return Rules{}
}

// Analyze implements model.Analyzer.
func (r Rules) Analyze(ctx context.Context, input model.AnalysisInput) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	report, err := r.Report(input.Text)
	if err != nil {
		return nil, err
	}
	out, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return out, nil
}

// Report builds the clause risk report for text.
func (r Rules) Report(text string) (Report, error) {
	if strings.TrimSpace(text) == "" {
		return Report{}, ErrNoText
	}

	clauses := buildClauses(SplitClauses(text))
	if len(clauses) == 0 {
		return Report{}, ErrNoClauses
	}

	report := Report{
		TotalClauses:     len(clauses),
		OverallRisk:      RiskLow,
		SectionBreakdown: make(map[string]int),
		Clauses:          clauses,
	}

	for _, c := range clauses {
		report.SectionBreakdown[c.Section]++
		if c.RiskScore >= highRiskScore {
			report.HighRiskClauses++
		}
		if c.RiskCategory == RiskCritical {
			report.CriticalClauses++
		}
		if categoryRank(c.RiskCategory) > categoryRank(report.OverallRisk) {
			report.OverallRisk = c.RiskCategory
		}
	}

	ranked := make([]Clause, len(clauses))
	copy(ranked, clauses)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].RiskScore > ranked[j].RiskScore })
	for _, c := range ranked {
		if c.RiskScore < highRiskScore || len(report.TopRisks) == topRiskLimit {
			break
		}
		report.TopRisks = append(report.TopRisks, c.ID)
	}

	return report, nil
}

func buildClauses(texts []string) []Clause {
	var out []Clause
	for _, text := range texts {
		if len(text) <= minClauseLen {
			continue
		}
		score, highlights, category := ScoreRisk(text)
		out = append(out, Clause{
			ID:           fmt.Sprintf("clause-%03d", len(out)+1),
			Text:         text,
			Section:      DetectSection(text),
			RiskScore:    score,
			RiskCategory: category,
			Highlights:   highlights,
		})
	}
	return out
}

// SplitClauses breaks text into clauses on numbering and heading markers,
// falling back to sentences when no marker splits the text.
func SplitClauses(text string) []string {
	text = strings.TrimSpace(whitespaceRun.ReplaceAllString(text, " "))
	if text == "" {
		return nil
	}

	for _, marker := range clauseMarkers {
		pieces := splitAt(text, marker)
		if len(pieces) <= 1 {
			continue
		}
		var valid []string
		for _, p := range pieces {
			if p = strings.TrimSpace(p); len(p) > minClauseLen {
				valid = append(valid, p)
			}
		}
		if len(valid) > 0 {
			return valid
		}
	}

	var sentences []string
	prev := 0
	for _, loc := range sentenceBreaks.FindAllStringIndex(text, -1) {
		sentences = append(sentences, text[prev:loc[0]+1])
		prev = loc[1]
	}
	sentences = append(sentences, text[prev:])

	var out []string
	for _, s := range sentences {
		if s = strings.TrimSpace(s); len(s) > minSentenceLen {
			out = append(out, s)
		}
	}
	return out
}

func splitAt(text string, marker *regexp.Regexp) []string {
	var cuts []int
	for _, loc := range marker.FindAllStringIndex(text, -1) {
		start := loc[0]
		if text[start] == ' ' {
			start++
		}
		if start > 0 {
			cuts = append(cuts, start)
		}
	}
	if len(cuts) == 0 {
		return []string{text}
	}

	pieces := make([]string, 0, len(cuts)+1)
	prev := 0
	for _, c := range cuts {
		pieces = append(pieces, text[prev:c])
		prev = c
	}
	return append(pieces, text[prev:])
}

// DetectSection names the contract section a clause most likely belongs to.
func DetectSection(clause string) string {
	lower := strings.ToLower(clause)
	for _, s := range sections {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return s.section
			}
		}
	}
	return defaultSection
}

// ScoreRisk finds every risk phrase in clause and returns the highest score,
// the highlights and the resulting category.
func ScoreRisk(clause string) (float64, []Highlight, string) {
	lower := strings.ToLower(clause)
	// Offsets are only valid against the original when lowering kept byte lengths.
	source := clause
	if len(lower) != len(clause) {
		source = lower
	}

	score := baseRiskScore
	var highlights []Highlight
	for _, p := range riskPatterns {
		for from := 0; from < len(lower); {
			idx := strings.Index(lower[from:], p.phrase)
			if idx < 0 {
				break
			}
			pos := from + idx
			end := pos + len(p.phrase)
			highlights = append(highlights, Highlight{
				Text:     source[pos:end],
				StartPos: pos,
				EndPos:   end,
				RiskType: p.phrase,
				Severity: p.severity,
				Score:    p.score,
			})
			if p.score > score {
				score = p.score
			}
			from = pos + 1
		}
	}

	return score, highlights, categorize(score)
}

func categorize(score float64) string {
	switch {
	case score >= 0.85:
		return RiskCritical
	case score >= 0.7:
		return RiskHigh
	case score >= 0.5:
		return RiskMedium
	default:
		return RiskLow
	}
}

func categoryRank(c string) int {
	switch c {
	case RiskCritical:
		return 3
	case RiskHigh:
		return 2
	case RiskMedium:
		return 1
	default:
		return 0
	}
}
