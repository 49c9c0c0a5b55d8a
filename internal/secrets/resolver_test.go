package secrets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Resolve_Env(t *testing.T) {
	t.Setenv("HOSTCTL_TEST_SECRET", "s3cret")

	resolver := NewDefault(nil)
	value, err := resolver.Resolve(context.Background(), "env:HOSTCTL_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)
}

func TestDefault_Resolve_EnvMissing(t *testing.T) {
	resolver := NewDefault(nil)
	_, err := resolver.Resolve(context.Background(), "env:HOSTCTL_TEST_SECRET_DOES_NOT_EXIST")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not set")
}

func TestDefault_Resolve_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "password")
	require.NoError(t, os.WriteFile(path, []byte("s3cret\n"), 0600))

	resolver := NewDefault(nil)
	value, err := resolver.Resolve(context.Background(), "file:"+path)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)
}

func TestDefault_Resolve_FileMissing(t *testing.T) {
	t.Parallel()

	resolver := NewDefault(nil)
	_, err := resolver.Resolve(context.Background(), "file:"+filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestDefault_Resolve_Literal(t *testing.T) {
	t.Parallel()

	resolver := NewDefault(nil)
	value, err := resolver.Resolve(context.Background(), "plaintext-password")
	require.NoError(t, err)
	assert.Equal(t, "plaintext-password", value)
}

func TestDefault_Resolve_VaultNotConfigured(t *testing.T) {
	t.Parallel()

	resolver := NewDefault(nil)
	_, err := resolver.Resolve(context.Background(), "vault:secret/sap#password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires a vault configuration")
}

func TestDefault_Resolve_VaultMissingKeySuffix(t *testing.T) {
	t.Parallel()

	resolver := NewDefault(NewVaultResolver("http://127.0.0.1:8200", "token"))
	_, err := resolver.Resolve(context.Background(), "vault:secret/sap")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a #key suffix")
}

func newVaultServer(t *testing.T, handler http.HandlerFunc) *VaultResolver {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewVaultResolver(server.URL, "unit-test-token")
}

func TestVaultResolver_Read_KVv1(t *testing.T) {
	t.Parallel()

	vault := newVaultServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/secret/sap", r.URL.Path)
		assert.Equal(t, "unit-test-token", r.Header.Get("X-Vault-Token"))
		_, _ = w.Write([]byte(`{"data":{"password":"s3cret"}}`))
	})

	value, err := vault.Read(context.Background(), "secret/sap", "password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)
}

func TestVaultResolver_Read_KVv2(t *testing.T) {
	t.Parallel()

	vault := newVaultServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"data":{"password":"s3cret"},"metadata":{"version":3}}}`))
	})

	value, err := vault.Read(context.Background(), "secret/data/sap", "password")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", value)
}

func TestVaultResolver_Read_MissingKey(t *testing.T) {
	t.Parallel()

	vault := newVaultServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":{"username":"sapadm"}}`))
	})

	_, err := vault.Read(context.Background(), "secret/sap", "password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `has no key "password"`)
}

func TestVaultResolver_Read_Error(t *testing.T) {
	t.Parallel()

	vault := newVaultServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":["permission denied"]}`))
	})

	_, err := vault.Read(context.Background(), "secret/sap", "password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestVaultResolver_Read_NotConfigured(t *testing.T) {
	vault := &VaultResolver{client: http.DefaultClient}
	_, err := vault.Read(context.Background(), "secret/sap", "password")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "vault address is not configured")
}

func TestRedact(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "vault:secret/sap#...", redact("vault:secret/sap#password"))
	assert.Equal(t, "env:MY_VAR", redact("env:MY_VAR"))
}
