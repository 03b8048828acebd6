package agents

import (
	"fmt"
	"sync"
	"time"

	"github.com/dhiaselmi1/documind-ai/internal/domain/analysis"
)

// Task binds one agent to the time budget it will run under.
type Task struct {
	Agent   Agent
	Timeout time.Duration // 0 means: derive from the global timeout
}

// Registry holds the ordered set of agents to run for an analysis,
// with thread-safe add/remove. A Snapshot taken at the start of an
// orchestration is fixed: later mutations never affect a report
// already in progress.
type Registry struct {
	mu      sync.RWMutex
	order   []analysis.AgentName
	entries map[analysis.AgentName]Task
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[analysis.AgentName]Task)}
}

// Register adds an agent with its per-agent timeout. Names are unique.
func (r *Registry) Register(a Agent, timeout time.Duration) error {
	if a == nil {
		return fmt.Errorf("registry: nil agent")
	}
	name := a.Name()
	if name == "" {
		return fmt.Errorf("registry: agent has empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; exists {
		return fmt.Errorf("registry: agent %q already registered", name)
	}
	r.entries[name] = Task{Agent: a, Timeout: timeout}
	r.order = append(r.order, name)
	return nil
}

// Deregister removes an agent by name. Removing an unknown name is a
// no-op.
func (r *Registry) Deregister(name analysis.AgentName) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[name]; !exists {
		return
	}
	delete(r.entries, name)
	for i, n := range r.order {
		if n == name {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Snapshot returns the current task list in registration order.
func (r *Registry) Snapshot() []Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tasks := make([]Task, 0, len(r.order))
	for _, name := range r.order {
		tasks = append(tasks, r.entries[name])
	}
	return tasks
}

// Names returns the registered agent names in registration order.
func (r *Registry) Names() []analysis.AgentName {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]analysis.AgentName, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered agents.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
