// Package numbering provides account number generation.
package numbering

import (
	"crypto/rand"
	"fmt"
	"math/big"

	portssvc "github.com/interbanking/banking_poc/internal/core/ports/services"
)

// accountNumberDigits is the number of random digits appended to the branch
// prefix.
const accountNumberDigits = 8

var digitSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits), nil)

// RandomAccountNumberGenerator produces branch-prefixed account numbers from
// a cryptographically secure source. Candidates are random, so the caller
// must check them against existing accounts before use.
type RandomAccountNumberGenerator struct {
	branchPrefix string
}

// NewRandomAccountNumberGenerator creates a generator for the given branch
// prefix, e.g. "0001".
func NewRandomAccountNumberGenerator(branchPrefix string) *RandomAccountNumberGenerator {
	return &RandomAccountNumberGenerator{branchPrefix: branchPrefix}
}

var _ portssvc.AccountNumberGenerator = (*RandomAccountNumberGenerator)(nil)

// GenerateAccountNumber returns a candidate account number of the form
// <branch><8 random digits>.
func (g *RandomAccountNumberGenerator) GenerateAccountNumber() string {
	num, err := rand.Int(rand.Reader, digitSpace)
	if err != nil {
		// crypto/rand only fails when the platform's entropy source is
		// broken, at which point the process cannot do anything useful.
		panic(fmt.Sprintf("numbering: failed to read random bytes: %v", err))
	}
	return fmt.Sprintf("%s%0*d", g.branchPrefix, accountNumberDigits, num.Int64())
}
