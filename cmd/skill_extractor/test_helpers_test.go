package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// offlineEnv keeps tests away from AI providers, Redis and Postgres even
// when a local .env configures them.
func offlineEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SKILLX_LLM_API_KEY", "GEMINI_API_KEY", "GOOGLE_API_KEY", "ANTHROPIC_API_KEY",
		"SKILLX_KNOWLEDGE_DATABASE_URL", "SKILLX_KNOWLEDGE_ONTOLOGY_FILE", "SKILLX_KNOWLEDGE_TRENDING_FILE",
		"SKILLX_KNOWLEDGE_REFRESH_INTERVAL", "SKILLX_CACHE_REDIS_URL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("SKILLX_EXTRACTION_AI_ENABLED", "false")
}

// resetFlags restores every flag in the command tree to its default so
// commands can be executed repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// executeCommand runs the root command with args and returns its stdout and stderr.
func executeCommand(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	if stdin == nil {
		stdin = strings.NewReader("")
	}
	var stdout, stderr bytes.Buffer
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetIn(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTempFile writes content to a file in a per-test directory.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
