package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_EvaluatesComposition(t *testing.T) {
	t.Parallel()

	comp := `
node "value/float" "src" {
  input "value" {
    value = 4
  }
}

node "math/multiply" "mul" {
  input "b" {
    value = 2.5
  }
}

connect {
  from = "src.out"
  to   = "mul.a"
}
`
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(comp), 0o600))

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-param", "mul.product", path})

	require.NoError(t, err)
	require.Contains(t, out.String(), "mul.product @ 0/1 = 10")
}

func TestRun_LoadError(t *testing.T) {
	t.Parallel()

	// A syntax error in the composition must surface as a run error.
	invalidHCL := `
node "value/float" "src" {
  input "value" {
`
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte(invalidHCL), 0o600))

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{path})

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load composition")
}

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"-h"})

	require.NoError(t, err)
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(context.Background(), out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}
