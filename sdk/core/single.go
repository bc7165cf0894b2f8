package core

// 單暫存器系列：Lehmer LCG 兩種變體、mulberry32、splitmix32。

const (
	lehmerMul = 48271
	lehmerMod = 1<<31 - 1 // 2147483647
)

// lcgV1 為真正取模的 Lehmer 產生器（MINSTD, a = 48271）。
//
// 輸出為未縮放整數：種子不為 lehmerMod 的倍數時落在 [1, 2147483646]；
// 種子 ≡ 0 (mod 2147483647) 會永遠輸出 0。
func lcgV1(s *State) uint32 {
	s[0] = uint32(uint64(s[0]) * lehmerMul % lehmerMod)
	return s[0]
}

// lcgV2 保留 48271·a 的 32-bit 環繞乘積，不做模運算；
// 縮放時只取低 31 bits（見 toUnit31）。因 48271 為奇數，bit 31 不影響之後任何輸出。
func lcgV2(s *State) uint32 {
	s[0] *= lehmerMul
	return s[0]
}

func mulberry32(s *State) uint32 {
	a := s[0] + 0x6D2B79F5
	s[0] = a
	t := (a ^ (a >> 15)) * (a | 1)
	t = (t + (t^(t>>7))*(t|61)) ^ t
	return t ^ (t >> 14)
}

func splitmix32(s *State) uint32 {
	a := s[0] + 0x9e3779b9
	s[0] = a
	t := a ^ (a >> 15)
	t *= 0x85ebca6b
	t ^= t >> 13
	t *= 0xc2b2ae35
	t ^= t >> 16
	return t
}
