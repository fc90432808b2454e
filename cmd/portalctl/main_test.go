package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func findCommand(name string) *cobra.Command {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	return nil
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"migrate", "user", "import-manufacturers", "extract", "similarity", "config-check"} {
		cmd := findCommand(name)
		require.NotNil(t, cmd, name)
		assert.NotEmpty(t, cmd.Short, name)
	}
}

func TestSimilarityCommand(t *testing.T) {
	out, err := execute(t, "similarity", "ABC  Steel", "abc steel")
	require.NoError(t, err)
	assert.Contains(t, out, "similarity: 1.0000")
	assert.Contains(t, out, "similar: true")

	_, err = execute(t, "similarity", "only-one")
	assert.Error(t, err)
}

func TestMigrateAndCreateUser(t *testing.T) {
	db := filepath.Join(t.TempDir(), "portal.db")

	out, err := execute(t, "--db", db, "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "is up to date")

	out, err = execute(t, "--db", db, "user", "create", "--username", "Clerk", "--password", "clerk-password")
	require.NoError(t, err)
	assert.Contains(t, out, "clerk (employee)")

	_, err = execute(t, "--db", db, "user", "create", "--username", "clerk", "--password", "another-password")
	assert.Error(t, err)
}

func TestExtractCommand_NotPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.pdf")
	require.NoError(t, writeFile(path, "just text"))

	out, err := execute(t, "extract", "--json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"success": false`)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestConfigCheckCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "portalctl-test-secret")
	out, err := execute(t, "config-check")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")
	assert.Contains(t, out, "[set]")

	t.Setenv("JWT_SECRET", "")
	_, err = execute(t, "config-check")
	assert.ErrorContains(t, err, "JWT secret")
}
