package equation

import "strings"

// SolutionMap maps variable names to values and remembers insertion
// order. The zero value is ready to use.
type SolutionMap struct {
	names  []string
	values map[string]float64
}

// NewSolutionMap pairs names with values positionally.
func NewSolutionMap(names []string, values []float64) SolutionMap {
	var m SolutionMap
	for i, name := range names {
		if i < len(values) {
			m.Set(name, values[i])
		}
	}
	return m
}

// Set assigns v to name, appending name on first use.
func (m *SolutionMap) Set(name string, v float64) {
	if m.values == nil {
		m.values = make(map[string]float64)
	}
	if _, ok := m.values[name]; !ok {
		m.names = append(m.names, name)
	}
	m.values[name] = v
}

// Get returns the value of name.
func (m SolutionMap) Get(name string) (float64, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Names returns the variable names in insertion order.
func (m SolutionMap) Names() []string { return append([]string(nil), m.names...) }

// Values returns the values in insertion order.
func (m SolutionMap) Values() []float64 {
	out := make([]float64, len(m.names))
	for i, name := range m.names {
		out[i] = m.values[name]
	}
	return out
}

// Map returns a copy of the bindings, suitable for expr.Expression.Evaluate.
func (m SolutionMap) Map() map[string]float64 {
	out := make(map[string]float64, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

// Len returns the number of variables.
func (m SolutionMap) Len() int { return len(m.names) }

// String renders "x = 2, y = 1" with FormatValue.
func (m SolutionMap) String() string {
	parts := make([]string, len(m.names))
	for i, name := range m.names {
		parts[i] = name + " = " + FormatValue(m.values[name])
	}
	return strings.Join(parts, ", ")
}
