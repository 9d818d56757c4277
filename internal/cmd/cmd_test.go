package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand("test")
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	base := writeFile(t, dir, "base.yml", "theme: light\nport: 80\n")
	user := writeFile(t, dir, "user.yml", "theme: dark\n")

	t.Run("single key", func(t *testing.T) {
		out, err := run(t, "-f", base, "-d", user, "get", "theme")
		require.NoError(t, err)
		assert.Equal(t, "dark\n", out)
	})

	t.Run("origin", func(t *testing.T) {
		out, err := run(t, "-f", base, "-d", user, "get", "--origin", "port")
		require.NoError(t, err)
		assert.Equal(t, base+"\n", out)
	})

	t.Run("all", func(t *testing.T) {
		out, err := run(t, "-f", base, "-d", user, "get")
		require.NoError(t, err)
		assert.Equal(t, "port: 80\ntheme: dark\n", out)
	})

	t.Run("missing key", func(t *testing.T) {
		_, err := run(t, "-f", base, "get", "nope")
		assert.ErrorContains(t, err, `"nope"`)
	})

	t.Run("default from environment", func(t *testing.T) {
		t.Setenv("KASANE_DEFAULT", user)
		out, err := run(t, "-f", base, "get", "theme")
		require.NoError(t, err)
		assert.Equal(t, "dark\n", out)
	})
}

func TestSet(t *testing.T) {
	t.Run("writes the default file", func(t *testing.T) {
		dir := t.TempDir()
		user := writeFile(t, dir, "user.yml", "# mine\ntheme: light\n")

		_, err := run(t, "-d", user, "set", "port", "8080")
		require.NoError(t, err)

		b, err := os.ReadFile(user)
		require.NoError(t, err)
		assert.Equal(t, "# mine\ntheme: light\nport: 8080\n", string(b))
	})

	t.Run("writes the target file", func(t *testing.T) {
		dir := t.TempDir()
		team := writeFile(t, dir, "team.yml", "x: 1\n")
		user := writeFile(t, dir, "user.yml", "y: 1\n")

		_, err := run(t, "-f", team, "-d", user, "set", "--target", team, "x", "2")
		require.NoError(t, err)

		b, err := os.ReadFile(team)
		require.NoError(t, err)
		assert.Equal(t, "x: 2\n", string(b))
	})

	t.Run("without a default file", func(t *testing.T) {
		dir := t.TempDir()
		team := writeFile(t, dir, "team.yml", "x: 1\n")

		_, err := run(t, "-f", team, "set", "x", "2")
		assert.ErrorContains(t, err, "no target location")
	})
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"", ""},
		{"dark", "dark"},
		{"9", 9},
		{"true", true},
		{"[a, b]", []any{"a", "b"}},
		{"~", "~"},
		{"a: [", "a: ["},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.in))
		})
	}
}

func TestLocations(t *testing.T) {
	dir := t.TempDir()
	b := writeFile(t, dir, "b.yml", "")
	a := writeFile(t, dir, "a.yml", "")
	user := writeFile(t, dir, "user.yml", "")

	out, err := run(t, "-f", b, "-f", a, "-d", user, "locations")
	require.NoError(t, err)
	assert.Equal(t, "1. "+a+"\n2. "+b+"\n3. "+user+" (default)\n", out)
}
