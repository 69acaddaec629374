package sink

import (
	"sort"
	"sync"

	"github.com/cmmoran/objc2hx/internal/binding"
	"github.com/cmmoran/objc2hx/internal/model"
)

// Memory keeps rendered units in memory.
type Memory struct {
	mu    sync.Mutex
	units map[string][]byte
	puts  int
}

func NewMemory() *Memory {
	return &Memory{units: make(map[string][]byte)}
}

func (m *Memory) Put(unit *model.BindingUnit) error {
	data, err := binding.RenderBytes(unit)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.units[unit.Class] = data
	m.puts++
	return nil
}

// Get returns the rendered unit for class.
func (m *Memory) Get(class string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.units[class]
	return data, ok
}

// Classes returns the distinct class names seen, sorted.
func (m *Memory) Classes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.units))
	for c := range m.units {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Puts counts every Put, duplicates included.
func (m *Memory) Puts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}
