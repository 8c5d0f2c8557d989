package measure

import (
	"maps"
	"sync"
)

// DefaultMeasure is a Measure safe for concurrent use.
type DefaultMeasure struct {
	mu    sync.RWMutex
	steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		steps: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(stepID string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mt, ok := m.steps[stepID]; ok {
		return mt
	}
	mt := &DefaultMetric{}
	m.steps[stepID] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(stepID string) Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.steps[stepID]
}

// AllMetrics returns a copy of the metrics by step ID.
func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return maps.Clone(m.steps)
}

var _ Measure = (*DefaultMeasure)(nil)
