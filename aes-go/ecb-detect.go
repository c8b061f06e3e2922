package aesgo

import (
	"github.com/dchest/siphash"
	"golang.org/x/exp/slices"
)

type blockHash struct{ lo, hi uint64 }

// RepeatedBlocks counts the blocks of ciphertext that are equal to an
// earlier block. A trailing partial block is ignored. Under ECB equal
// plaintext blocks encrypt to equal ciphertext blocks, so a non-zero
// count is a strong hint that ECB was used.
func RepeatedBlocks(ciphertext []byte) int {
	seen := make(map[blockHash][][]byte)
	repeats := 0
	for len(ciphertext) >= BlockSize {
		block := ciphertext[:BlockSize]
		ciphertext = ciphertext[BlockSize:]

		lo, hi := siphash.Hash128(0, 0, block)
		h := blockHash{lo, hi}
		dup := false
		for _, prev := range seen[h] {
			if slices.Equal(prev, block) {
				dup = true
				break
			}
		}
		if dup {
			repeats++
			continue
		}
		seen[h] = append(seen[h], block)
	}
	return repeats
}

// DetectECB returns the index of the candidate with the most repeated
// blocks and that count. best is -1 when no candidate repeats a block.
func DetectECB(candidates [][]byte) (best, score int) {
	best = -1
	for i, c := range candidates {
		if n := RepeatedBlocks(c); n > score {
			best, score = i, n
		}
	}
	return best, score
}
