package sexp

// Mapping is an ordered collection of unique string keys, each bound to a
// Value.  Keys iterate in the order they were first set; setting an existing
// key replaces its value in place.  The zero value is not usable, use
// NewMapping.
type Mapping struct {
	keys []string
	vals map[string]Value
}

// NewMapping returns an empty Mapping.
func NewMapping() *Mapping {
	return &Mapping{vals: map[string]Value{}}
}

func (*Mapping) value() {}

// Kind satisfies Value.
func (*Mapping) Kind() Kind { return KindMapping }

func (m *Mapping) String() string { return stringOf(m) }

// Set binds key to v, overwriting any previous binding.
func (m *Mapping) Set(key string, v Value) {
	if _, ok := m.vals[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.vals[key] = v
}

// Get returns the value bound to key, if any.
func (m *Mapping) Get(key string) (Value, bool) {
	v, ok := m.vals[key]
	return v, ok
}

// Len is the number of keys.
func (m *Mapping) Len() int { return len(m.keys) }

// Keys returns a copy of the keys in iteration order.
func (m *Mapping) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Range calls f for each key in order until f returns false.
func (m *Mapping) Range(f func(key string, v Value) bool) {
	for _, k := range m.keys {
		if !f(k, m.vals[k]) {
			return
		}
	}
}
