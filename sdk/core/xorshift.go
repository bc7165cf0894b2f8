package core

// Marsaglia xorshift。

func xorshift128(s *State) uint32 {
	a, b, c, d := s[0], s[1], s[2], s[3]
	t := a ^ (a << 11)
	a, b, c = b, c, d
	d = (d ^ (d >> 19)) ^ (t ^ (t >> 8))
	*s = State{a, b, c, d}
	return d
}

func xorshift32(s *State) uint32 {
	a := s[0]
	a ^= a << 13
	a ^= a >> 17
	a ^= a << 5
	s[0] = a
	return a
}
