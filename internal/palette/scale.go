package palette

// Scale maps distinct categorical values to colors. It is built once from the
// full observed domain and never changes afterwards.
type Scale struct {
	domain []string
	colors []string
	index  map[string]int
}

// NewScale builds a Scale over the distinct values of domain, keeping the
// order of first appearance.
func NewScale(domain []string) *Scale {
	s := &Scale{index: make(map[string]int, len(domain))}
	for _, v := range domain {
		if _, ok := s.index[v]; ok {
			continue
		}
		s.index[v] = len(s.domain)
		s.domain = append(s.domain, v)
	}
	s.colors = Allocate(len(s.domain))
	return s
}

// Color returns the color assigned to v, or DefaultStroke for values outside
// the domain.
func (s *Scale) Color(v string) string {
	if s == nil {
		return DefaultStroke
	}
	i, ok := s.index[v]
	if !ok {
		return DefaultStroke
	}
	return s.colors[i]
}

// Domain returns the distinct values in first-appearance order.
func (s *Scale) Domain() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.domain))
	copy(out, s.domain)
	return out
}

// Len returns the number of distinct values.
func (s *Scale) Len() int {
	if s == nil {
		return 0
	}
	return len(s.domain)
}
