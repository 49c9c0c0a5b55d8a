// Package secrets resolves credential references at apply time so state
// documents never carry plaintext passwords.
package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sapops/hostctl/internal/logging"
)

// Resolver turns a credential reference into its value.
//
// Reference grammar:
//
//	vault:<mount/path>#<key>  read <key> from a Vault KV secret
//	env:<VAR>                 read the environment variable
//	file:<path>               read the file, trailing whitespace trimmed
//	anything else             taken literally
type Resolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

// Default dispatches references to the configured backends.
type Default struct {
	Vault *VaultResolver
	log   logging.Logger
}

// NewDefault returns a Resolver backed by the given Vault client. vault may
// be nil when no Vault is configured; vault: references then fail.
func NewDefault(vault *VaultResolver) *Default {
	return &Default{
		Vault: vault,
		log:   logging.New("secrets"),
	}
}

// Resolve evaluates a credential reference.
func (d *Default) Resolve(ctx context.Context, ref string) (string, error) {
	switch {
	case strings.HasPrefix(ref, "vault:"):
		if d.Vault == nil {
			return "", fmt.Errorf("reference %q requires a vault configuration", redact(ref))
		}
		path, key, found := strings.Cut(strings.TrimPrefix(ref, "vault:"), "#")
		if !found {
			return "", fmt.Errorf("vault reference %q is missing a #key suffix", redact(ref))
		}
		return d.Vault.Read(ctx, path, key)

	case strings.HasPrefix(ref, "env:"):
		name := strings.TrimPrefix(ref, "env:")
		value, ok := os.LookupEnv(name)
		if !ok {
			return "", fmt.Errorf("environment variable %s is not set", name)
		}
		return value, nil

	case strings.HasPrefix(ref, "file:"):
		path := strings.TrimPrefix(ref, "file:")
		// #nosec G304
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read secret file: %w", err)
		}
		return strings.TrimRight(string(data), "\r\n"), nil

	default:
		d.log.Warn("credential supplied as a literal value, consider a vault: or env: reference")
		return ref, nil
	}
}

// redact keeps the scheme and path of a reference but never the value a
// malformed reference might embed.
func redact(ref string) string {
	if idx := strings.Index(ref, "#"); idx >= 0 {
		return ref[:idx] + "#..."
	}
	return ref
}
