package progress

import (
	"sync"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[string]CourseProgress
	volume  mo.Option[float64]
}

// NewMemory returns a Store that lives only as long as the process.
func NewMemory() Store {
	return &memoryStore{records: make(map[string]CourseProgress)}
}

func (m *memoryStore) Read(courseID string) mo.Option[*CourseProgress] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[courseID]
	if !ok {
		return mo.None[*CourseProgress]()
	}
	return mo.Some(&record)
}

func (m *memoryStore) Write(courseID string, p *CourseProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[courseID] = *p
	return nil
}

func (m *memoryStore) All() (map[string]*CourseProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return lo.MapValues(m.records, func(record CourseProgress, _ string) *CourseProgress {
		return &record
	}), nil
}

func (m *memoryStore) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = make(map[string]CourseProgress)
	return nil
}

func (m *memoryStore) Volume() mo.Option[float64] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume
}

func (m *memoryStore) SetVolume(v float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.volume = mo.Some(v)
	return nil
}
