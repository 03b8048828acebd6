package agents

import (
	"context"
	"sort"
	"strings"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

// RiskConfig tunes the risk detector. Indicators map each category to
// the phrases that trigger it; all matching is case-insensitive.
type RiskConfig struct {
	Indicators map[analysis.Category][]string
	SnippetMax int
}

// DefaultRiskIndicators are the built-in phrase lists, overridable from
// the config file.
func DefaultRiskIndicators() map[analysis.Category][]string {
	return map[analysis.Category][]string{
		analysis.CategoryLegal: {
			"lawsuit", "litigation", "legal action", "breach of contract",
			"liability", "penalty", "indemnification",
		},
		analysis.CategoryCompliance: {
			"compliance", "violation", "non-compliance", "regulatory",
			"audit finding", "gdpr", "data protection",
		},
		analysis.CategoryFinancial: {
			"over budget", "cost overrun", "budget overrun", "debt",
			"unpaid", "financial loss", "bankruptcy", "write-off",
		},
		analysis.CategoryOperational: {
			"outage", "delay", "bottleneck", "missed deadline",
			"resource shortage", "single point of failure", "downtime",
		},
	}
}

// categoryBase is the starting severity per category. Frequency and
// proximity of indicators can escalate it one step.
var categoryBase = map[analysis.Category]analysis.Severity{
	analysis.CategoryLegal:       analysis.SeverityMedium,
	analysis.CategoryCompliance:  analysis.SeverityMedium,
	analysis.CategoryFinancial:   analysis.SeverityMedium,
	analysis.CategoryOperational: analysis.SeverityLow,
}

func (c *RiskConfig) applyDefaults() {
	if len(c.Indicators) == 0 {
		c.Indicators = DefaultRiskIndicators()
	}
	if c.SnippetMax <= 0 {
		c.SnippetMax = 160
	}
}

// RiskDetector scans for configured risk indicators. Deterministic for
// a given text and configuration: callers compare exact flag sets.
type RiskDetector struct {
	cfg        RiskConfig
	categories []analysis.Category // fixed scan order
}

func NewRiskDetector(cfg RiskConfig) *RiskDetector {
	cfg.applyDefaults()
	cats := make([]analysis.Category, 0, len(cfg.Indicators))
	for c := range cfg.Indicators {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return &RiskDetector{cfg: cfg, categories: cats}
}

func (d *RiskDetector) Name() analysis.AgentName { return analysis.AgentRisks }

func (d *RiskDetector) Analyze(ctx context.Context, text string) (analysis.Payload, error) {
	lower := strings.ToLower(text)
	sentences := splitSentences(text)

	// Document-wide indicator frequency, for severity escalation.
	totalHits := make(map[analysis.Category]int)
	for _, cat := range d.categories {
		for _, ind := range d.cfg.Indicators[cat] {
			totalHits[cat] += strings.Count(lower, strings.ToLower(ind))
		}
	}

	// One flag per (sentence, category). Two or more indicators of the
	// same category inside one sentence, or repeated hits across the
	// document, escalate the category's base severity one step.
	var flags []analysis.RiskFlag
	for _, sen := range sentences {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		senLower := strings.ToLower(sen.Text)
		for _, cat := range d.categories {
			hits := 0
			for _, ind := range d.cfg.Indicators[cat] {
				hits += strings.Count(senLower, strings.ToLower(ind))
			}
			if hits == 0 {
				continue
			}
			sev := categoryBase[cat]
			if sev == "" {
				sev = analysis.SeverityLow
			}
			if hits >= 2 || totalHits[cat] >= 3 {
				sev = escalate(sev)
			}
			flags = append(flags, analysis.RiskFlag{
				Snippet:  clip(sen.Text, d.cfg.SnippetMax),
				Category: cat,
				Severity: sev,
			})
		}
	}
	if flags == nil {
		flags = []analysis.RiskFlag{}
	}
	return &analysis.RiskPayload{Flags: flags}, nil
}

func escalate(s analysis.Severity) analysis.Severity {
	switch s {
	case analysis.SeverityLow:
		return analysis.SeverityMedium
	case analysis.SeverityMedium:
		return analysis.SeverityHigh
	}
	return analysis.SeverityHigh
}
