package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

const mongoCfg = `
env: "prod"
db:
  driver: "mongo"
  url: "mongodb://127.0.0.1:1/tips"
auth:
  jwt_secret: "s"
`

func TestMigrate_RejectsMongo(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "c.yaml", mongoCfg)

	_, err := run(t, "--config", cfgPath, "migrate")
	require.Error(t, err)
	require.Contains(t, err.Error(), "has no migrations")
}

func TestSeed_RequiresFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "c.yaml", mongoCfg)

	_, err := run(t, "--config", cfgPath, "seed")
	require.Error(t, err)
	require.Contains(t, err.Error(), "file")
}

func TestSeed_InvalidYAMLFailsBeforeConnecting(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "c.yaml", mongoCfg)
	seed := writeFile(t, dir, "tips.yaml", "tips:\n  - description: missing title\n")

	_, err := run(t, "--config", cfgPath, "seed", "--file", seed)
	require.Error(t, err)
	require.Contains(t, err.Error(), "title is required")
}

func TestRoot_BadConfig(t *testing.T) {
	_, err := run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "migrate")
	require.Error(t, err)
	require.Contains(t, err.Error(), "config file does not exist")
}
