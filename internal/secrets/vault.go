package secrets

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// VaultResolver reads secrets from a HashiCorp Vault KV store over its HTTP
// API. Both KV v1 (data at .data) and KV v2 (data at .data.data) layouts are
// understood.
type VaultResolver struct {
	Address string
	Token   string
	client  *http.Client
}

// vaultSecretResponse is the subset of the Vault read response we need.
type vaultSecretResponse struct {
	Errors []string               `json:"errors,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// NewVaultResolver creates a resolver for the given Vault. Empty address or
// token fall back to VAULT_ADDR / VAULT_TOKEN.
func NewVaultResolver(address, token string) *VaultResolver {
	if address == "" {
		address = os.Getenv("VAULT_ADDR")
	}
	if token == "" {
		token = os.Getenv("VAULT_TOKEN")
	}
	return &VaultResolver{
		Address: strings.TrimRight(address, "/"),
		Token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Read fetches a single key from the secret at path.
func (v *VaultResolver) Read(ctx context.Context, path, key string) (string, error) {
	if v.Address == "" {
		return "", fmt.Errorf("vault address is not configured (set VAULT_ADDR)")
	}
	if v.Token == "" {
		return "", fmt.Errorf("vault token is not configured (set VAULT_TOKEN)")
	}

	url := fmt.Sprintf("%s/v1/%s", v.Address, strings.TrimLeft(path, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build vault request: %w", err)
	}
	req.Header.Set("X-Vault-Token", v.Token)

	resp, err := v.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to read vault secret %s: %w", path, err)
	}
	defer resp.Body.Close()

	var secret vaultSecretResponse
	if err := json.NewDecoder(resp.Body).Decode(&secret); err != nil {
		return "", fmt.Errorf("failed to decode vault response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if len(secret.Errors) > 0 {
			return "", fmt.Errorf("vault returned status %d for %s: %s", resp.StatusCode, path, strings.Join(secret.Errors, "; "))
		}
		return "", fmt.Errorf("vault returned status %d for %s", resp.StatusCode, path)
	}

	data := secret.Data
	// KV v2 nests the fields one level deeper.
	if nested, ok := data["data"].(map[string]interface{}); ok {
		data = nested
	}

	value, ok := data[key]
	if !ok {
		return "", fmt.Errorf("vault secret %s has no key %q", path, key)
	}
	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("vault secret %s key %q is not a string", path, key)
	}
	return str, nil
}
