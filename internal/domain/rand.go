package domain

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Source yields random integers for shuffling and suit spins.
// *math/rand.Rand satisfies it, which is what tests inject for
// deterministic deals; production code uses CryptoSource.
type Source interface {
	Intn(n int) int
}

type cryptoSource struct{}

// CryptoSource returns a Source backed by crypto/rand. The chosen suit and
// the deal order materially affect outcomes, so they must not come from a
// predictable generator. Safe for concurrent use.
func CryptoSource() Source {
	return cryptoSource{}
}

func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic(fmt.Sprintf("Intn: invalid bound %d", n))
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// The OS entropy source failing is not a recoverable game error.
		panic(fmt.Sprintf("crypto rand failed: %v", err))
	}
	return int(v.Int64())
}
