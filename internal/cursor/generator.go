// Package cursor provides the default implementations of the three external
// account operations: credential generation, machine identifier reset, and
// cookie processing. The orchestrator consumes them as black boxes through
// the ops interfaces; nothing here is anti-detection machinery, just the
// plain file edits and string handling the tool has always done.
package cursor

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/kto/cursorctl/internal/config"
	"github.com/kto/cursorctl/internal/envstore"
	"github.com/kto/cursorctl/internal/result"
)

const (
	localPartLength = 12
	passwordLength  = 16

	localPartAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	passwordAlphabet  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"
)

// Generator creates fresh credentials from the persisted DOMAIN value.
type Generator struct {
	store *envstore.Store
}

// NewGenerator creates a generator reading its domain from the env store.
func NewGenerator(store *envstore.Store) *Generator {
	return &Generator{store: store}
}

// GenerateAccount returns a result envelope whose payload is a random
// (email, password) pair under the persisted DOMAIN. A missing domain is a
// failed envelope, not an error: the orchestrator reports the message.
func (g *Generator) GenerateAccount(ctx context.Context) (any, error) {
	env, err := g.store.Load()
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	domain := env[config.VarDomain]
	if domain == "" {
		return result.Fail("DOMAIN is not set; supply a domain before generating an account"), nil
	}

	local, err := randomString(localPartAlphabet, localPartLength)
	if err != nil {
		return nil, fmt.Errorf("generate email: %w", err)
	}
	password, err := randomString(passwordAlphabet, passwordLength)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}

	return result.Ok("account generated", local+"@"+domain, password), nil
}

// randomString draws length characters uniformly from alphabet using
// crypto/rand.
func randomString(alphabet string, length int) (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
