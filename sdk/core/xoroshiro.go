package core

// xoroshiro64 與 xoshiro128 兩個家族各自共用同一個狀態轉移，
// 變體之間只差在輸出 tap；tap 一律以轉移「之前」的暫存器計算。

const xoroshiroMul = 0x9E3779BB

// stepXoroshiro64 為 xoroshiro64 家族共用轉移。
func stepXoroshiro64(s *State) {
	a, b := s[0], s[1]
	b ^= a
	s[0] = b ^ rotl(a, 26) ^ (b << 9)
	s[1] = rotl(b, 13)
}

func xoroshiro64Plus(s *State) uint32 {
	r := s[0] + s[1]
	stepXoroshiro64(s)
	return r
}

func xoroshiro64StarStar(s *State) uint32 {
	r := rotl(s[0]*xoroshiroMul, 5) * 5
	stepXoroshiro64(s)
	return r
}

func xoroshiro64Star(s *State) uint32 {
	r := s[0] * xoroshiroMul
	stepXoroshiro64(s)
	return r
}

// stepXoshiro128 為 xoshiro128 家族共用轉移。
func stepXoshiro128(s *State) {
	a, b, c, d := s[0], s[1], s[2], s[3]
	t := b << 9
	c ^= a
	d ^= b
	b ^= c
	a ^= d
	c ^= t
	d = rotl(d, 11)
	*s = State{a, b, c, d}
}

func xoshiro128Plus(s *State) uint32 {
	r := s[0] + s[3]
	stepXoshiro128(s)
	return r
}

func xoshiro128StarStar(s *State) uint32 {
	r := rotl(s[0]*5, 7) * 9
	stepXoshiro128(s)
	return r
}
