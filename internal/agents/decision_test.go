package agents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

func extractDecisions(t *testing.T, text string) *analysis.DecisionPayload {
	t.Helper()
	d := NewDecisionExtractor(DecisionConfig{})
	payload, err := d.Analyze(context.Background(), text)
	require.NoError(t, err)
	dp, ok := payload.(*analysis.DecisionPayload)
	require.True(t, ok)
	return dp
}

func TestDecisionExtractorNoMarkers(t *testing.T) {
	dp := extractDecisions(t, "The weather report for Tuesday looks fine.")
	assert.Empty(t, dp.Items)
	assert.NotNil(t, dp.Items)
}

func TestDecisionExtractorTrimsReasonAndDeadline(t *testing.T) {
	dp := extractDecisions(t, "We decided to terminate the vendor contract due to repeated compliance violations by March 31.")

	require.Len(t, dp.Items, 1)
	item := dp.Items[0]
	assert.Equal(t, analysis.KindDecision, item.Kind)
	assert.Equal(t, "decided to terminate the vendor contract", item.Snippet)
	assert.Equal(t, "March 31", item.Deadline)
}

func TestDecisionExtractorActionItemWithDeadline(t *testing.T) {
	dp := extractDecisions(t, "Alice will prepare the migration plan by June 1.")

	require.Len(t, dp.Items, 1)
	item := dp.Items[0]
	assert.Equal(t, analysis.KindActionItem, item.Kind)
	assert.Equal(t, "will prepare the migration plan", item.Snippet)
	assert.Equal(t, "June 1", item.Deadline)
}

func TestDecisionExtractorRelativeDeadline(t *testing.T) {
	dp := extractDecisions(t, "The vendor must respond within 30 days.")

	require.Len(t, dp.Items, 1)
	item := dp.Items[0]
	assert.Equal(t, analysis.KindActionItem, item.Kind)
	assert.Equal(t, "must respond", item.Snippet)
	assert.Equal(t, "within 30 days", item.Deadline)
}

func TestDecisionExtractorMissingDeadlineIsEmpty(t *testing.T) {
	dp := extractDecisions(t, "The board approved the hiring freeze.")

	require.Len(t, dp.Items, 1)
	assert.Equal(t, analysis.KindDecision, dp.Items[0].Kind)
	assert.Equal(t, "", dp.Items[0].Deadline)
}

func TestDecisionExtractorEarliestMarkerWins(t *testing.T) {
	// "decided" appears before "will " in the same sentence
	dp := extractDecisions(t, "They decided that Bob will own the runbook.")

	require.Len(t, dp.Items, 1)
	assert.Equal(t, analysis.KindDecision, dp.Items[0].Kind)
}

func TestDecisionExtractorOneItemPerSentence(t *testing.T) {
	dp := extractDecisions(t, "We agreed to ship Friday. Carol must update the changelog. The rest can wait.")

	require.Len(t, dp.Items, 2)
	assert.Equal(t, analysis.KindDecision, dp.Items[0].Kind)
	assert.Equal(t, analysis.KindActionItem, dp.Items[1].Kind)
}

func TestDecisionExtractorDeadlineWithYear(t *testing.T) {
	dp := extractDecisions(t, "The contract must be signed no later than April 2, 2026.")

	require.Len(t, dp.Items, 1)
	assert.Equal(t, "April 2, 2026", dp.Items[0].Deadline)
}

func TestDecisionExtractorDocumentOrder(t *testing.T) {
	text := "First we resolved to split the service. Later Dana will document the split."
	dp := extractDecisions(t, text)

	require.Len(t, dp.Items, 2)
	assert.Contains(t, dp.Items[0].Snippet, "resolved to")
	assert.Contains(t, dp.Items[1].Snippet, "will document")
}
