package core

import "math/bits"

// 數值基元。
//
// Go 的 uint32 加、減、乘本身就是 mod 2^32 環繞，>> 對無號數即為邏輯右移，
// 因此不另外包裝；這裡只集中旋轉與縮放，避免各演算法手寫 (x<<n | x>>(32-n))。

const (
	unit32 = 1.0 / (1 << 32)
	unit31 = 1.0 / (1 << 31)
	mask31 = 1<<31 - 1
)

func rotl(x uint32, n int) uint32 {
	return bits.RotateLeft32(x, n)
}

// toUnit32 將 tap 乘上 2^-32，結果落在 [0,1) 且為精確值。
func toUnit32(x uint32) float64 {
	return float64(x) * unit32
}

// toUnit31 只取低 31 bits 再乘上 2^-31。
func toUnit31(x uint32) float64 {
	return float64(x&mask31) * unit31
}

// toRaw 不縮放，直接回傳整數值。
func toRaw(x uint32) float64 {
	return float64(x)
}
