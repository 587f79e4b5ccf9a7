package testutil

import "fmt"

// SequentialTokenGenerator returns "token-1", "token-2", ... for
// deterministic workflow correlation in tests.
type SequentialTokenGenerator struct {
	n int
}

// Generate returns the next deterministic token.
func (g *SequentialTokenGenerator) Generate() string {
	g.n++
	return fmt.Sprintf("token-%d", g.n)
}
