package numbering_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/interbanking/banking_poc/internal/adapters/numbering"
)

func TestGenerateAccountNumber_Format(t *testing.T) {
	gen := numbering.NewRandomAccountNumberGenerator("0001")

	for i := 0; i < 100; i++ {
		number := gen.GenerateAccountNumber()
		assert.Len(t, number, 12)
		assert.Equal(t, "0001", number[:4])
		for _, r := range number {
			assert.True(t, r >= '0' && r <= '9', "unexpected character %q in %s", r, number)
		}
	}
}

func TestGenerateAccountNumber_VariesBetweenCalls(t *testing.T) {
	gen := numbering.NewRandomAccountNumberGenerator("0001")

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[gen.GenerateAccountNumber()] = struct{}{}
	}
	// 50 draws from a 10^8 space colliding down to a handful would mean a
	// broken generator.
	assert.Greater(t, len(seen), 45)
}
