package core

// 四暫存器的加法／旋轉／互斥或（ARX）系列。
// 每個函數的指派順序即為參考實作的順序，請勿重排。

// sfc32 (Small Fast Chaotic)，d 為計數器。
func sfc32(s *State) uint32 {
	a, b, c, d := s[0], s[1], s[2], s[3]
	t := a + b + d
	d++
	a = b ^ (b >> 9)
	b = c + (c << 3)
	c = rotl(c, 21) + t
	*s = State{a, b, c, d}
	return t
}

func gjrand32(s *State) uint32 {
	a, b, c, d := s[0], s[1], s[2], s[3]
	a = rotl(a, 16)
	b += c
	a += b
	c ^= b
	c = rotl(c, 11)
	b ^= a
	a += c
	b = rotl(c, 19) // 前一步的 b 在此被丟棄
	c += a
	d += 0x96a5
	b += d
	*s = State{a, b, c, d}
	return a
}

// jsf32 (Bob Jenkins small fast, 27/17 旋轉)。
func jsf32(s *State) uint32 {
	a, b, c, d := s[0], s[1], s[2], s[3]
	t := a - rotl(b, 27)
	a = b ^ rotl(c, 17)
	b = c + d
	c = d + t
	d = a + t
	*s = State{a, b, c, d}
	return d
}

// jsf32b 為 23/16 旋轉版本。
// 參考實作另有一步 b ← c + rotl(d,11)，隨即被 b ← c + d 覆寫，輸出不受影響，故省略。
func jsf32b(s *State) uint32 {
	a, b, c, d := s[0], s[1], s[2], s[3]
	t := a - rotl(b, 23)
	a = b ^ rotl(c, 16)
	b = c + d
	c = d + t
	d = a + t
	*s = State{a, b, c, d}
	return d
}

func tyche(s *State) uint32 {
	a, b, c, d := s[0], s[1], s[2], s[3]
	a += b
	d ^= a
	d = rotl(d, 16)
	c += d
	b ^= c
	b = rotl(b, 12)
	a += b
	d ^= a
	d = rotl(d, 8)
	c += d
	b ^= c
	b = rotl(b, 7)
	*s = State{a, b, c, d}
	return b
}

// tychei 為 tyche 的反向輪函數版本。
func tychei(s *State) uint32 {
	a, b, c, d := s[0], s[1], s[2], s[3]
	b = rotl(b, 25) ^ c
	c -= d
	d = rotl(d, 24) ^ a
	a -= b
	b = rotl(b, 20) ^ c
	c -= d
	d = rotl(d, 16) ^ a
	a -= b
	*s = State{a, b, c, d}
	return a
}
