package analysis

import (
	"encoding/json"
	"time"
)

// Wire form of the report: a generic nested mapping with documentId,
// durationMs, agents keyed by name, and the insight list. This is the
// only shape the API layer and the SQL stores ever see.

type agentResultWire struct {
	Status  Status          `json:"status"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Error   *AgentError     `json:"error,omitempty"`
}

type reportWire struct {
	ID         ReportID                       `json:"id"`
	DocumentID string                         `json:"documentId"`
	DurationMS int64                          `json:"durationMs"`
	Agents     map[AgentName]agentResultWire  `json:"agents"`
	AgentOrder []AgentName                    `json:"agentOrder"`
	Insights   []Insight                      `json:"insights"`
	Assessment Assessment                     `json:"collaborative_insights"`
	Stats      Statistics                     `json:"statistics"`
	CreatedAt  time.Time                      `json:"created_at"`
}

func (r *Report) MarshalJSON() ([]byte, error) {
	w := reportWire{
		ID:         r.ID,
		DocumentID: r.DocumentID,
		DurationMS: r.DurationMS,
		Agents:     make(map[AgentName]agentResultWire, len(r.Results)),
		AgentOrder: make([]AgentName, 0, len(r.Results)),
		Insights:   r.Insights,
		Assessment: r.Assessment,
		Stats:      r.Stats,
		CreatedAt:  r.CreatedAt,
	}
	if w.Insights == nil {
		w.Insights = []Insight{}
	}
	for i := range r.Results {
		res := &r.Results[i]
		entry := agentResultWire{Status: res.Status, Error: res.Err}
		if res.Payload != nil {
			b, err := json.Marshal(res.Payload)
			if err != nil {
				return nil, err
			}
			entry.Payload = b
		}
		w.Agents[res.Agent] = entry
		w.AgentOrder = append(w.AgentOrder, res.Agent)
	}
	return json.Marshal(w)
}

func (r *Report) UnmarshalJSON(b []byte) error {
	var w reportWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	r.ID = w.ID
	r.DocumentID = w.DocumentID
	r.DurationMS = w.DurationMS
	r.Insights = w.Insights
	r.Assessment = w.Assessment
	r.Stats = w.Stats
	r.CreatedAt = w.CreatedAt
	r.Results = make([]AgentResult, 0, len(w.Agents))

	order := w.AgentOrder
	if len(order) != len(w.Agents) {
		order = order[:0]
		for name := range w.Agents {
			order = append(order, name)
		}
	}
	for _, name := range order {
		entry, ok := w.Agents[name]
		if !ok {
			continue
		}
		res := AgentResult{Agent: name, Status: entry.Status, Err: entry.Error}
		if len(entry.Payload) > 0 {
			res.Payload = decodePayload(entry.Payload)
		}
		r.Results = append(r.Results, res)
	}
	return nil
}

// decodePayload restores a typed payload from its wire form. The three
// payload shapes are keyed on distinct fields; anything else comes back
// as an untyped mapping.
func decodePayload(raw json.RawMessage) Payload {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return UntypedPayload{}
	}
	switch {
	case hasKey(probe, "summary"):
		var p SummaryPayload
		if json.Unmarshal(raw, &p) == nil {
			return &p
		}
	case hasKey(probe, "flags"):
		var p RiskPayload
		if json.Unmarshal(raw, &p) == nil {
			return &p
		}
	case hasKey(probe, "items"):
		var p DecisionPayload
		if json.Unmarshal(raw, &p) == nil {
			return &p
		}
	}
	var generic UntypedPayload
	if json.Unmarshal(raw, &generic) == nil {
		return generic
	}
	return UntypedPayload{}
}

func hasKey(m map[string]json.RawMessage, k string) bool {
	_, ok := m[k]
	return ok
}
