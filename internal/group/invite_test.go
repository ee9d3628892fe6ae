package group

import (
	"strings"
	"testing"
)

func TestCryptoCodeGeneratorFormat(t *testing.T) {
	gen := NewCryptoCodeGenerator()

	for i := 0; i < 100; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() returned error: %v", err)
		}
		s := code.String()
		if len(s) != codeLength {
			t.Fatalf("code %q has length %d, want %d", s, len(s), codeLength)
		}
		for _, r := range s {
			if !strings.ContainsRune(codeAlphabet, r) {
				t.Fatalf("code %q contains %q, which is outside the alphabet", s, r)
			}
		}
	}
}

func TestCryptoCodeGeneratorVaries(t *testing.T) {
	gen := NewCryptoCodeGenerator()

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		code, err := gen.Generate()
		if err != nil {
			t.Fatalf("Generate() returned error: %v", err)
		}
		seen[code.String()] = true
	}
	if len(seen) < 2 {
		t.Error("20 generated codes were all identical")
	}
}
