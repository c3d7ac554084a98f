package oracle

import (
	"errors"
	"fmt"
)

// ErrIdentityRange indicates a hexagram identity outside [0, 63].
var ErrIdentityRange = errors.New("hexagram identity must be between 0 and 63")

// kingWenIdentity lists, for each hexagram of the King Wen sequence
// (index 0 = hexagram 1), its 6-bit binary identity with line 1 as the
// least-significant bit and yang = 1. Derived from the trigram pair of each
// hexagram in the received ordering.
var kingWenIdentity = [64]int{
	63, 0, 17, 34, 23, 58, 2, 16, // 1 Qian .. 8 Bi
	55, 59, 7, 56, 61, 47, 4, 8, // 9 Xiao Xu .. 16 Yu
	25, 38, 3, 48, 41, 37, 32, 1, // 17 Sui .. 24 Fu
	57, 39, 33, 30, 18, 45, 28, 14, // 25 Wu Wang .. 32 Heng
	60, 15, 40, 5, 53, 43, 20, 10, // 33 Dun .. 40 Jie
	35, 49, 31, 62, 24, 6, 26, 22, // 41 Sun .. 48 Jing
	29, 46, 9, 36, 52, 11, 13, 44, // 49 Ge .. 56 Lu
	54, 27, 50, 19, 51, 12, 21, 42, // 57 Xun .. 64 Wei Ji
}

// identityToNumber is the inverse of kingWenIdentity, built once at init.
var identityToNumber [64]int

func init() {
	for i, identity := range kingWenIdentity {
		identityToNumber[identity] = i + 1
	}
}

// KingWen maps a hexagram's binary identity to its number in the King Wen
// sequence (1..64). This is the fixed corpus-key mapping: the corpus is in
// King Wen order, not binary order.
func KingWen(identity int) (int, error) {
	if identity < 0 || identity > 63 {
		return 0, fmt.Errorf("%w: got %d", ErrIdentityRange, identity)
	}
	return identityToNumber[identity], nil
}

// Identity maps a King Wen number (1..64) back to its binary identity.
func Identity(number int) (int, error) {
	if number < 1 || number > 64 {
		return 0, fmt.Errorf("hexagram number must be between 1 and 64: got %d", number)
	}
	return kingWenIdentity[number-1], nil
}
