package waterflow

import "slices"

// flowMatrix maps item index to placed geometry. Keys are kept sorted; the
// supply engine only ever appends past the last key.
type flowMatrix struct {
	keys   []int
	styles map[int]FlowStyle
}

func newFlowMatrix() *flowMatrix {
	return &flowMatrix{styles: make(map[int]FlowStyle)}
}

func (m *flowMatrix) len() int { return len(m.keys) }

func (m *flowMatrix) get(index int) (FlowStyle, bool) {
	s, ok := m.styles[index]
	return s, ok
}

func (m *flowMatrix) has(index int) bool {
	_, ok := m.styles[index]
	return ok
}

// put commits a fully computed style for index.
func (m *flowMatrix) put(index int, s FlowStyle) {
	if _, ok := m.styles[index]; !ok {
		if n := len(m.keys); n == 0 || m.keys[n-1] < index {
			m.keys = append(m.keys, index)
		} else {
			pos, _ := slices.BinarySearch(m.keys, index)
			m.keys = slices.Insert(m.keys, pos, index)
		}
	}
	m.styles[index] = s
}

func (m *flowMatrix) last() (int, bool) {
	if len(m.keys) == 0 {
		return 0, false
	}
	return m.keys[len(m.keys)-1], true
}

func (m *flowMatrix) indices() []int {
	return slices.Clone(m.keys)
}

// truncate drops every entry with key >= from and returns the dropped keys.
func (m *flowMatrix) truncate(from int) []int {
	pos, _ := slices.BinarySearch(m.keys, from)
	dropped := slices.Clone(m.keys[pos:])
	for _, k := range dropped {
		delete(m.styles, k)
	}
	m.keys = m.keys[:pos]
	return dropped
}

func (m *flowMatrix) reset() []int {
	dropped := m.keys
	m.keys = nil
	m.styles = make(map[int]FlowStyle)
	return dropped
}
