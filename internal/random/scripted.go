package random

// Scripted replays fixed values and is meant for tests that need to force
// a specific gate or pick. When a queue runs dry it falls back to Fallback
// (or zero values when Fallback is nil).
type Scripted struct {
	Floats   []float64
	Ints     []int
	Fallback Source
}

func (s *Scripted) Float64() float64 {
	if len(s.Floats) > 0 {
		v := s.Floats[0]
		s.Floats = s.Floats[1:]
		return v
	}
	if s.Fallback != nil {
		return s.Fallback.Float64()
	}
	return 0
}

// Intn returns the next scripted int reduced modulo n.
func (s *Scripted) Intn(n int) int {
	if len(s.Ints) > 0 {
		v := s.Ints[0]
		s.Ints = s.Ints[1:]
		if v < 0 {
			v = -v
		}
		return v % n
	}
	if s.Fallback != nil {
		return s.Fallback.Intn(n)
	}
	return 0
}
