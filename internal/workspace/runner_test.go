package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunner_FixFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"broken.yaml": "apiVersion:v1\nkind: Pod\n",
		"clean.yaml":  "apiVersion: v1\nkind: Pod\n",
		"bad.yaml":    "{{{{\n]]]]\n",
	})

	paths := []string{
		filepath.Join(dir, "bad.yaml"),
		filepath.Join(dir, "broken.yaml"),
		filepath.Join(dir, "clean.yaml"),
		filepath.Join(dir, "missing.yaml"),
	}

	results, err := newRunner(true).FixFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		assert.Equal(t, paths[i], r.Path)
	}

	bad, broken, clean, missing := results[0], results[1], results[2], results[3]

	assert.False(t, bad.Fix.Valid)
	assert.False(t, bad.Written)

	assert.True(t, broken.Written)
	assert.True(t, broken.Changed())

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Equal(t, "apiVersion: v1\nkind: Pod\n", string(data))

	assert.False(t, clean.Written)
	assert.False(t, clean.Changed())

	require.Error(t, missing.Err)
	assert.Nil(t, missing.Fix)
}

func TestRunner_DryRun(t *testing.T) {
	dir := writeTree(t, map[string]string{"broken.yaml": "apiVersion:v1\n"})
	path := filepath.Join(dir, "broken.yaml")

	results, err := newRunner(false).FixFiles(context.Background(), []string{path})
	require.NoError(t, err)
	assert.False(t, results[0].Written)
	assert.Equal(t, "apiVersion: v1\n", results[0].Fix.Text)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "apiVersion:v1\n", string(data))
}

func TestRunner_ValidateFiles(t *testing.T) {
	dir := writeTree(t, map[string]string{
		"a.yaml": "kind: Pod\nreplicas: \"2\"\n",
		"b.yaml": "kind: Pod\n",
	})

	results, err := newRunner(true).ValidateFiles(context.Background(), []string{
		filepath.Join(dir, "a.yaml"),
		filepath.Join(dir, "b.yaml"),
	})
	require.NoError(t, err)

	assert.False(t, results[0].Validation.Clean)
	assert.True(t, results[1].Validation.Clean)
	assert.Nil(t, results[0].Fix)

	data, err := os.ReadFile(filepath.Join(dir, "a.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "kind: Pod\nreplicas: \"2\"\n", string(data))
}

func TestRunner_Errors(t *testing.T) {
	_, err := newRunner(false).FixFiles(context.Background(), nil)
	require.ErrorIs(t, err, ErrNoInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = newRunner(false).FixFiles(ctx, []string{"a.yaml"})
	require.ErrorIs(t, err, context.Canceled)
}
