package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/speedminds/internal/extractor"
)

func TestRenderCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "report.json")
	output := filepath.Join(dir, "out.pdf")
	require.NoError(t, os.WriteFile(input, []byte(`{
		"documentName": "notes.txt",
		"summary": "Notes about France.",
		"topics": [{"topic": "Paris", "explanation": "The capital."}],
		"qaHistory": [{"question": "Capital?", "answer": "Paris"}]
	}`), 0o600))

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs([]string{"render", "--input", input, "--output", output})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text, err := extractor.ExtractPDF(data)
	require.NoError(t, err)
	assert.Contains(t, text, "Notes about France.")
	assert.Contains(t, text, "Capital?")
}

func TestRenderCommandRejectsIncompleteReport(t *testing.T) {
	input := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, os.WriteFile(input, []byte(`{"summary": "no name"}`), 0o600))

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"render", "--input", input})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing required report data.")
}
