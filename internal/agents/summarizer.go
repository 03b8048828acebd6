package agents

import (
	"context"
	"sort"
	"strings"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

// SummarizerConfig tunes the heuristic summarizer.
type SummarizerConfig struct {
	MaxSentences int // synopsis cap
	MinLength    int // below this the text is returned verbatim
	MaxTopics    int
}

// DefaultSummarizerConfig matches the dashboard defaults.
func DefaultSummarizerConfig() SummarizerConfig {
	return SummarizerConfig{MaxSentences: 3, MinLength: 200, MaxTopics: 5}
}

func (c *SummarizerConfig) applyDefaults() {
	d := DefaultSummarizerConfig()
	if c.MaxSentences <= 0 {
		c.MaxSentences = d.MaxSentences
	}
	if c.MinLength <= 0 {
		c.MinLength = d.MinLength
	}
	if c.MaxTopics <= 0 {
		c.MaxTopics = d.MaxTopics
	}
}

// Summarizer produces a bounded synopsis plus key topics. Pure and
// deterministic; the model-backed variant lives in infra/ai.
type Summarizer struct {
	cfg SummarizerConfig
}

func NewSummarizer(cfg SummarizerConfig) *Summarizer {
	cfg.applyDefaults()
	return &Summarizer{cfg: cfg}
}

func (s *Summarizer) Name() analysis.AgentName { return analysis.AgentSummary }

func (s *Summarizer) Analyze(ctx context.Context, text string) (analysis.Payload, error) {
	trimmed := strings.TrimSpace(text)

	// Short text is its own summary. Empty text yields an empty
	// summary, never a failure.
	if len(trimmed) < s.cfg.MinLength {
		return &analysis.SummaryPayload{
			Summary:   trimmed,
			KeyTopics: keyTopics(trimmed, s.cfg.MaxTopics),
		}, nil
	}

	sentences := splitSentences(trimmed)
	n := s.cfg.MaxSentences
	if n > len(sentences) {
		n = len(sentences)
	}
	parts := make([]string, 0, n)
	for _, sen := range sentences[:n] {
		parts = append(parts, sen.Text)
	}

	return &analysis.SummaryPayload{
		Summary:   strings.Join(parts, " "),
		KeyTopics: keyTopics(trimmed, s.cfg.MaxTopics),
	}, nil
}

// keyTopics picks the most frequent meaningful words. Selection is by
// frequency, ties broken by first mention; the returned list keeps
// first-mention order and holds no duplicates.
func keyTopics(text string, max int) []string {
	tokens := tokenize(text)
	counts := make(map[string]int, len(tokens))
	first := make(map[string]int, len(tokens))
	for i, w := range tokens {
		if len(w) < 4 {
			continue
		}
		counts[w]++
		if _, seen := first[w]; !seen {
			first[w] = i
		}
	}

	type cand struct {
		word  string
		count int
		pos   int
	}
	cands := make([]cand, 0, len(counts))
	for w, c := range counts {
		if c < 2 {
			continue
		}
		cands = append(cands, cand{word: w, count: c, pos: first[w]})
	}
	// frequency desc, ties by first mention
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].count != cands[j].count {
			return cands[i].count > cands[j].count
		}
		return cands[i].pos < cands[j].pos
	})
	if len(cands) > max {
		cands = cands[:max]
	}
	// output ordered by first mention
	sort.Slice(cands, func(i, j int) bool { return cands[i].pos < cands[j].pos })
	topics := make([]string, 0, len(cands))
	for _, c := range cands {
		topics = append(topics, c.word)
	}
	if topics == nil {
		topics = []string{}
	}
	return topics
}
