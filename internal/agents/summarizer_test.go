package agents

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

func TestSummarizerShortTextVerbatim(t *testing.T) {
	s := NewSummarizer(SummarizerConfig{})
	text := "Quarterly budget meeting notes."

	payload, err := s.Analyze(context.Background(), text)
	require.NoError(t, err)

	sp, ok := payload.(*analysis.SummaryPayload)
	require.True(t, ok)
	assert.Equal(t, text, sp.Summary)
	assert.Empty(t, sp.KeyTopics)
	assert.NotNil(t, sp.KeyTopics)
}

func TestSummarizerEmptyTextIsSuccess(t *testing.T) {
	s := NewSummarizer(SummarizerConfig{})

	payload, err := s.Analyze(context.Background(), "   ")
	require.NoError(t, err)

	sp := payload.(*analysis.SummaryPayload)
	assert.Equal(t, "", sp.Summary)
	assert.Empty(t, sp.KeyTopics)
}

func TestSummarizerCapsSentences(t *testing.T) {
	text := strings.Join([]string{
		"The migration project covers every customer database in the region.",
		"The migration requires a full inventory of legacy schemas first.",
		"Each schema owner signs off on the migration mapping before cutover.",
		"A rollback path exists for every phase.",
		"Nothing ships on a Friday.",
	}, " ")
	require.GreaterOrEqual(t, len(text), 200)

	s := NewSummarizer(SummarizerConfig{MaxSentences: 2})
	payload, err := s.Analyze(context.Background(), text)
	require.NoError(t, err)

	sp := payload.(*analysis.SummaryPayload)
	assert.Equal(t,
		"The migration project covers every customer database in the region. "+
			"The migration requires a full inventory of legacy schemas first.",
		sp.Summary)
}

func TestSummarizerDeterministic(t *testing.T) {
	text := strings.Repeat("The vendor delayed the vendor payment schedule again. ", 6)
	s := NewSummarizer(SummarizerConfig{})

	first, err := s.Analyze(context.Background(), text)
	require.NoError(t, err)
	second, err := s.Analyze(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestKeyTopicsFrequencyAndOrder(t *testing.T) {
	// "budget" x3, "vendor" x2, "payment" x2; singletons never qualify.
	text := "The budget review flagged the vendor payment. The vendor missed the budget " +
		"target and the payment window. The budget stands."

	topics := keyTopics(text, 5)

	// selected by frequency, listed by first mention
	assert.Equal(t, []string{"budget", "vendor", "payment"}, topics)
}

func TestKeyTopicsRespectsMax(t *testing.T) {
	text := "alpha alpha bravo bravo charlie charlie delta delta echo echo foxtrot foxtrot"
	topics := keyTopics(text, 3)
	assert.Len(t, topics, 3)
	// equal counts: first mention wins
	assert.Equal(t, []string{"alpha", "bravo", "charlie"}, topics)
}

func TestKeyTopicsSkipsShortAndStopwords(t *testing.T) {
	text := "the the the and and cat cat was was from from"
	topics := keyTopics(text, 5)
	// "cat" is under four chars, stopwords excluded
	assert.Empty(t, topics)
}
