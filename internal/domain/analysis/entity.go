package analysis

import (
	"time"
)

// AgentName identifies one registered capability inside a report.
type AgentName string

// Well-known agent names. The registry accepts any name; these are the
// three capabilities wired by default.
const (
	AgentSummary   AgentName = "summary"
	AgentRisks     AgentName = "risks"
	AgentDecisions AgentName = "decisions"
)

// Status enum per agent
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
	StatusTimeout Status = "timeout"
)

// FailureKind enum
type FailureKind string

const (
	FailureInvalidInput FailureKind = "invalid_input"
	FailureInternal     FailureKind = "internal_error"
)

// Severity enum
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank maps a severity to an ordering value, higher is worse.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	}
	return 0
}

// Category enum untuk risk flags
type Category string

const (
	CategoryLegal       Category = "legal"
	CategoryCompliance  Category = "compliance"
	CategoryFinancial   Category = "financial"
	CategoryOperational Category = "operational"
)

// DecisionKind enum
type DecisionKind string

const (
	KindDecision   DecisionKind = "decision"
	KindActionItem DecisionKind = "action_item"
)

// Payload is the typed output of one agent. Len reports how many
// indexable items the payload carries; insights may only reference
// indexes below it.
type Payload interface {
	Len() int
}

// SummaryPayload value object
type SummaryPayload struct {
	Summary   string   `json:"summary"`
	KeyTopics []string `json:"key_topics"`
}

func (p *SummaryPayload) Len() int { return len(p.KeyTopics) }

// RiskFlag value object
type RiskFlag struct {
	Snippet  string   `json:"snippet"`
	Category Category `json:"category"`
	Severity Severity `json:"severity"`
}

// RiskPayload value object
type RiskPayload struct {
	Flags []RiskFlag `json:"flags"`
}

func (p *RiskPayload) Len() int { return len(p.Flags) }

// DecisionItem value object
type DecisionItem struct {
	Snippet  string       `json:"snippet"`
	Kind     DecisionKind `json:"kind"`
	Deadline string       `json:"deadline,omitempty"`
}

// DecisionPayload value object
type DecisionPayload struct {
	Items []DecisionItem `json:"items"`
}

func (p *DecisionPayload) Len() int { return len(p.Items) }

// UntypedPayload carries a payload restored from storage where the
// concrete agent type is no longer known.
type UntypedPayload map[string]any

func (p UntypedPayload) Len() int { return 0 }

// AgentError is a captured agent-local fault. It never propagates as a
// failure of the analyze call itself.
type AgentError struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

func (e *AgentError) Error() string { return string(e.Kind) + ": " + e.Message }

// AgentResult is the terminal outcome of one agent task. Exactly one of
// Payload (success) or Err (failure) is set; a timeout carries neither.
type AgentResult struct {
	Agent   AgentName
	Status  Status
	Payload Payload
	Err     *AgentError
}

// Insight links findings from two agents by name and item index.
// Derived after the fact, never produced by an agent on its own.
type Insight struct {
	AgentA   AgentName `json:"agentA"`
	IndexA   int       `json:"indexA"`
	AgentB   AgentName `json:"agentB"`
	IndexB   int       `json:"indexB"`
	Relation string    `json:"relation"`
}

// RelationDecisionReferencesRisk marks a decision whose wording overlaps
// a detected risk.
const RelationDecisionReferencesRisk = "decision_references_risk"

// Assessment is the cross-agent rollup shown on the dashboard.
type Assessment struct {
	RiskLevel         string  `json:"risk_level"`
	Urgency           string  `json:"urgency"`
	Complexity        string  `json:"complexity"`
	Confidence        float64 `json:"confidence_score"`
	RequiresAttention bool    `json:"requires_attention"`
	HasActionItems    bool    `json:"has_action_items"`
}

// Statistics value object
type Statistics struct {
	WordCount      int      `json:"word_count"`
	DocumentLength int      `json:"document_length"`
	KeyTopics      []string `json:"key_topics"`
	TotalRiskFlags int      `json:"total_red_flags"`
	TotalDecisions int      `json:"total_decisions"`
}

// ReportID identifier type
type ReportID string

// Report is the aggregate returned by one analyze call. Results keeps
// registry order; every registered agent has exactly one entry even on
// timeout or failure. Immutable once returned.
type Report struct {
	ID         ReportID
	DocumentID string
	Results    []AgentResult
	Insights   []Insight
	Assessment Assessment
	Stats      Statistics
	DurationMS int64
	CreatedAt  time.Time
}

// Result returns the entry for one agent by name.
func (r *Report) Result(name AgentName) (*AgentResult, bool) {
	for i := range r.Results {
		if r.Results[i].Agent == name {
			return &r.Results[i], true
		}
	}
	return nil, false
}

// Degraded reports whether any agent ended in a non-success state.
func (r *Report) Degraded() bool {
	for i := range r.Results {
		if r.Results[i].Status != StatusSuccess {
			return true
		}
	}
	return false
}
