package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "DOT", cfg.NativeToken.Symbol)
	assert.Equal(t, uint8(10), cfg.NativeToken.Decimals)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "xcm.blocks", cfg.NATS.BlockSubject)
	assert.Empty(t, cfg.NATS.TransferSubject)
	assert.Equal(t, "data", cfg.Storage.DataDir)
	assert.Empty(t, cfg.Output.Path)
}

func TestLoadEmptyTransferSubjectDisablesPublishing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
nats:
  block_subject: xcm.blocks
  transfer_subject: ""
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.NATS.TransferSubject)

	require.NoError(t, os.WriteFile(path, []byte(`
nats:
  transfer_subject: xcm.transfers
`), 0o644))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "xcm.transfers", cfg.NATS.TransferSubject)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
native_token:
  symbol: KSM
  decimals: 12
nats:
  url: nats://nats.internal:4222
output:
  path: out/transfers.json
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "KSM", cfg.NativeToken.Symbol)
	assert.Equal(t, uint8(12), cfg.NativeToken.Decimals)
	assert.Equal(t, "nats://nats.internal:4222", cfg.NATS.URL)
	assert.Equal(t, "out/transfers.json", cfg.Output.Path)

	// Unset fields still pick up defaults.
	assert.Equal(t, "xcm.blocks", cfg.NATS.BlockSubject)
	assert.Equal(t, "data", cfg.Storage.DataDir)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("nats: ["), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
