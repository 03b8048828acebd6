package agents

import (
	"context"
	"regexp"
	"strings"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

// DecisionConfig tunes the decision extractor.
type DecisionConfig struct {
	DecisionMarkers   []string
	ActionItemMarkers []string
	SnippetMax        int
}

func (c *DecisionConfig) applyDefaults() {
	if len(c.DecisionMarkers) == 0 {
		c.DecisionMarkers = []string{
			"decided", "agreed to", "approved", "resolved to", "concluded that",
			"voted to", "chose to",
		}
	}
	if len(c.ActionItemMarkers) == 0 {
		c.ActionItemMarkers = []string{
			"action item", "will ", "must ", "needs to", "shall ",
			"is responsible for", "to follow up", "assigned to",
		}
	}
	if c.SnippetMax <= 0 {
		c.SnippetMax = 160
	}
}

// deadlineRe matches "by March 31", "before April 2, 2026", "due by
// June 1", "no later than May 15" and captures the date phrase itself.
var deadlineRe = regexp.MustCompile(`(?i)\b(?:by|before|due(?:\s+by)?|no later than|until)\s+` +
	`((?:January|February|March|April|May|June|July|August|September|October|November|December)` +
	`\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s+\d{4})?)`)

// relativeDeadlineRe matches "within 30 days" style phrases.
var relativeDeadlineRe = regexp.MustCompile(`(?i)\bwithin\s+(\d+\s+(?:days?|weeks?|months?))`)

// reason-clause cutoffs: the snippet runs from the marker to the end of
// the sentence, minus any trailing justification or deadline phrase.
var snippetCutoffs = []string{" due to ", " because ", "; ", ", since "}

// DecisionExtractor scans for decision and action-item markers, in
// document order, attaching a deadline phrase when one appears in the
// same sentence.
type DecisionExtractor struct {
	cfg DecisionConfig
}

func NewDecisionExtractor(cfg DecisionConfig) *DecisionExtractor {
	cfg.applyDefaults()
	return &DecisionExtractor{cfg: cfg}
}

func (d *DecisionExtractor) Name() analysis.AgentName { return analysis.AgentDecisions }

func (d *DecisionExtractor) Analyze(ctx context.Context, text string) (analysis.Payload, error) {
	var items []analysis.DecisionItem
	for _, sen := range splitSentences(text) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lower := strings.ToLower(sen.Text)

		// earliest marker wins; one item per sentence
		pos, kind := earliestMarker(lower, d.cfg.DecisionMarkers, analysis.KindDecision)
		if apos, akind := earliestMarker(lower, d.cfg.ActionItemMarkers, analysis.KindActionItem); apos >= 0 && (pos < 0 || apos < pos) {
			pos, kind = apos, akind
		}
		if pos < 0 {
			continue
		}

		items = append(items, analysis.DecisionItem{
			Snippet:  clip(decisionSnippet(sen.Text, pos), d.cfg.SnippetMax),
			Kind:     kind,
			Deadline: deadlinePhrase(sen.Text),
		})
	}
	if items == nil {
		items = []analysis.DecisionItem{}
	}
	return &analysis.DecisionPayload{Items: items}, nil
}

func earliestMarker(lower string, markers []string, kind analysis.DecisionKind) (int, analysis.DecisionKind) {
	best := -1
	for _, m := range markers {
		if i := strings.Index(lower, strings.ToLower(m)); i >= 0 && (best < 0 || i < best) {
			best = i
		}
	}
	return best, kind
}

// decisionSnippet cuts from the marker to the end of the sentence,
// trimming reason clauses and terminal punctuation.
func decisionSnippet(sentenceText string, markerPos int) string {
	s := sentenceText[markerPos:]
	lower := strings.ToLower(s)
	cut := len(s)
	for _, stop := range snippetCutoffs {
		if i := strings.Index(lower, stop); i >= 0 && i < cut {
			cut = i
		}
	}
	s = strings.TrimRight(strings.TrimSpace(s[:cut]), ".!?,;")
	// strip a trailing deadline phrase; it is carried separately
	for _, re := range []*regexp.Regexp{deadlineRe, relativeDeadlineRe} {
		if loc := re.FindStringIndex(s); loc != nil && strings.TrimSpace(s[loc[1]:]) == "" {
			s = s[:loc[0]]
		}
	}
	return strings.TrimRight(strings.TrimSpace(s), ".!?,;")
}

// deadlinePhrase returns the date phrase found in the sentence, or ""
// when absent. A missing deadline is not an error.
func deadlinePhrase(sentenceText string) string {
	if m := deadlineRe.FindStringSubmatch(sentenceText); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := relativeDeadlineRe.FindStringSubmatch(sentenceText); m != nil {
		return "within " + strings.TrimSpace(m[1])
	}
	return ""
}
