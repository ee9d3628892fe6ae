package group

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/jiyun-dev/wecal/internal/domain"
)

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// CodeGenerator produces invite codes. Injected into the service so tests
// can substitute a deterministic source.
type CodeGenerator interface {
	Generate() (domain.InviteCode, error)
}

// CryptoCodeGenerator draws each character independently and uniformly from
// the 36-symbol alphabet using crypto/rand. Invite codes gate group
// membership, so a predictable PRNG is not acceptable here.
type CryptoCodeGenerator struct{}

// NewCryptoCodeGenerator creates a new secure invite code generator
func NewCryptoCodeGenerator() *CryptoCodeGenerator {
	return &CryptoCodeGenerator{}
}

// Generate produces a 6-character uppercase alphanumeric invite code
func (g *CryptoCodeGenerator) Generate() (domain.InviteCode, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate invite code: %w", err)
		}
		buf[i] = codeAlphabet[n.Int64()]
	}

	return domain.NewInviteCode(string(buf))
}
