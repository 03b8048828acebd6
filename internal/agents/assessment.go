package agents

import (
	"strings"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

// Rollup labels shown on the dashboard.
const (
	levelLow    = "Low"
	levelMedium = "Medium"
	levelHigh   = "High"
)

// BuildAssessment derives the cross-agent rollup from an assembled
// result set. Like the correlator it only reads Success results.
func BuildAssessment(results []analysis.AgentResult) analysis.Assessment {
	var (
		flags     []analysis.RiskFlag
		items     []analysis.DecisionItem
		wordCount int
		succeeded int
	)
	for i := range results {
		if results[i].Status != analysis.StatusSuccess {
			continue
		}
		succeeded++
		switch p := results[i].Payload.(type) {
		case *analysis.RiskPayload:
			flags = append(flags, p.Flags...)
		case *analysis.DecisionPayload:
			items = append(items, p.Items...)
		case *analysis.SummaryPayload:
			wordCount = len(strings.Fields(p.Summary))
		}
	}

	a := analysis.Assessment{
		RiskLevel:  levelLow,
		Urgency:    levelLow,
		Complexity: levelLow,
	}
	if len(results) > 0 {
		a.Confidence = float64(succeeded) / float64(len(results))
	}

	mediumOrWorse := 0
	for _, f := range flags {
		if f.Severity == analysis.SeverityHigh {
			a.RiskLevel = levelHigh
		}
		if f.Severity.Rank() >= analysis.SeverityMedium.Rank() {
			mediumOrWorse++
		}
	}
	if a.RiskLevel != levelHigh && (mediumOrWorse > 0 || len(flags) > 2) {
		a.RiskLevel = levelMedium
	}
	a.RequiresAttention = mediumOrWorse > 0

	deadlines := 0
	for _, it := range items {
		if it.Deadline != "" {
			deadlines++
		}
		if it.Kind == analysis.KindActionItem {
			a.HasActionItems = true
		}
	}
	switch {
	case deadlines > 0:
		a.Urgency = levelHigh
	case len(flags) > 0 || len(items) > 0:
		a.Urgency = levelMedium
	}

	load := len(flags) + len(items)
	switch {
	case load > 10 || wordCount > 120:
		a.Complexity = levelHigh
	case load > 4 || wordCount > 60:
		a.Complexity = levelMedium
	}
	return a
}

// BuildStatistics computes the document-level counters carried on the
// report.
func BuildStatistics(text string, results []analysis.AgentResult) analysis.Statistics {
	stats := analysis.Statistics{
		WordCount:      len(strings.Fields(text)),
		DocumentLength: len(text),
		KeyTopics:      []string{},
	}
	for i := range results {
		if results[i].Status != analysis.StatusSuccess {
			continue
		}
		switch p := results[i].Payload.(type) {
		case *analysis.SummaryPayload:
			stats.KeyTopics = p.KeyTopics
		case *analysis.RiskPayload:
			stats.TotalRiskFlags = len(p.Flags)
		case *analysis.DecisionPayload:
			stats.TotalDecisions = len(p.Items)
		}
	}
	return stats
}
