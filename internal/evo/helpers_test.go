package evo

// scriptedSource replays fixed draws so operator tests can assert exact
// offspring and mutations.
type scriptedSource struct {
	ints   []int
	floats []float64
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		panic("scripted source: out of ints")
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v >= n {
		panic("scripted source: int draw out of range")
	}
	return v
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		panic("scripted source: out of floats")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}
