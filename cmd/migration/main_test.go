package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	steps, err = parseSteps([]string{" 3 "})
	require.NoError(t, err)
	assert.Equal(t, 3, steps)

	for _, bad := range []string{"0", "-1", "two"} {
		_, err := parseSteps([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestParseVersionAndTarget(t *testing.T) {
	v, err := parseVersion([]string{"1792195200"})
	require.NoError(t, err)
	assert.Equal(t, 1792195200, v)

	_, err = parseVersion(nil)
	assert.Error(t, err)
	_, err = parseVersion([]string{"-5"})
	assert.Error(t, err)

	target, err := parseTarget([]string{"1792195200"})
	require.NoError(t, err)
	assert.Equal(t, uint(1792195200), target)

	_, err = parseTarget([]string{"latest"})
	assert.Error(t, err)
}

func TestFindMigrationsDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir.sql")
	require.NoError(t, os.WriteFile(file, []byte("--"), 0o600))

	got, err := findMigrationsDir("", file, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
}

func TestWithBinaryResultFlag(t *testing.T) {
	got := withBinaryResultFlag("postgres://u:p@db:5432/fantasy_baseball?sslmode=require")
	assert.Equal(t, "postgres://u:p@db:5432/fantasy_baseball?disable_prepared_binary_result=yes&sslmode=require", got)

	explicit := "postgres://u:p@db:5432/fantasy_baseball?disable_prepared_binary_result=no"
	assert.Equal(t, explicit, withBinaryResultFlag(explicit))
}
