package agents

import (
	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

// Correlator derives cross-agent insights from an assembled result set.
// Pure post-processing: it only reads Success results, never fails, and
// never makes an agent aware of another agent's output.
type Correlator struct {
	// MinSharedTokens is the lexical-overlap threshold between a
	// decision snippet and a risk snippet before they are linked.
	MinSharedTokens int
}

// DefaultMinSharedTokens is an illustrative default, tunable per
// deployment.
const DefaultMinSharedTokens = 2

func NewCorrelator(minSharedTokens int) Correlator {
	if minSharedTokens <= 0 {
		minSharedTokens = DefaultMinSharedTokens
	}
	return Correlator{MinSharedTokens: minSharedTokens}
}

// Correlate links every decision item to every risk flag whose wording
// overlaps it enough. Ties all become separate insights; only the exact
// (decision index, risk index) pair is unique. Failed or timed-out
// agents are simply absent from the input.
func (c Correlator) Correlate(results []analysis.AgentResult) []analysis.Insight {
	min := c.MinSharedTokens
	if min <= 0 {
		min = DefaultMinSharedTokens
	}

	insights := []analysis.Insight{}
	for di := range results {
		if results[di].Status != analysis.StatusSuccess {
			continue
		}
		decisions, ok := results[di].Payload.(*analysis.DecisionPayload)
		if !ok {
			continue
		}
		for ri := range results {
			if results[ri].Status != analysis.StatusSuccess {
				continue
			}
			risks, ok := results[ri].Payload.(*analysis.RiskPayload)
			if !ok {
				continue
			}
			for i, item := range decisions.Items {
				for j, flag := range risks.Flags {
					if sharedTokens(item.Snippet, flag.Snippet) < min {
						continue
					}
					insights = append(insights, analysis.Insight{
						AgentA:   results[di].Agent,
						IndexA:   i,
						AgentB:   results[ri].Agent,
						IndexB:   j,
						Relation: analysis.RelationDecisionReferencesRisk,
					})
				}
			}
		}
	}
	return insights
}
