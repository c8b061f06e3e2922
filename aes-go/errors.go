package aesgo

import (
	"errors"

	"github.com/mario-areias/aes-ecb/key"
)

var (
	// ErrInvalidKeySize is returned when the key is not 16 bytes long.
	ErrInvalidKeySize = key.ErrInvalidSize
	// ErrInvalidBlockLength is returned when ECB input is not a whole number of blocks.
	ErrInvalidBlockLength = errors.New("input length is not a multiple of the block size")
)
