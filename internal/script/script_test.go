package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestParseScript(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "morning.jarvis")
	writeFile(t, path, "# wake up\nlights on\n\n   \n  # indented comment\nsay \"good morning\"\n  open door\n")

	lines, err := ParseScript(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"lights on", `say "good morning"`, "  open door"}, lines)
}

func TestParseScriptMissing(t *testing.T) {
	t.Parallel()

	_, err := ParseScript(filepath.Join(t.TempDir(), "missing.jarvis"))
	assert.ErrorIs(t, err, ErrScriptRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseLinesEmpty(t *testing.T) {
	t.Parallel()

	assert.Nil(t, ParseLines(""))
	assert.Nil(t, ParseLines("# only\n\n"))
}

func TestValidateScript(t *testing.T) {
	t.Parallel()
	tests := []struct {
		extension string
		file      string
		expected  bool
	}{
		{"jarvis", "morning.jarvis", true},
		{"jarvis", "dir/morning.jarvis", true},
		{"jarvis", "morning.jarvis.bak", false},
		{"jarvis", "morning", false},
		{"jarvis", "jarvis", false},
		{"txt", "notes.txt", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ValidateScript(tt.extension, tt.file), "%s / %s", tt.extension, tt.file)
	}
}

func TestValidateEnvFileName(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fileName string
		envFile  string
		expected bool
	}{
		{"env", ".jarvis.env", true},
		{"env", "config/.env", true},
		{"env", "env", true},
		{"env", ".env.local", false},
		{"prod", "jarvis.env.prod", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ValidateEnvFileName(tt.fileName, tt.envFile), "%s / %s", tt.fileName, tt.envFile)
	}
}

func TestImportJSON(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	valid := filepath.Join(dir, "valid.json")
	writeFile(t, valid, `{"name": "jarvis", "max_depth": 4}`)
	var out map[string]any
	require.NoError(t, ImportJSON(valid, &out))
	assert.Equal(t, map[string]any{"name": "jarvis", "max_depth": float64(4)}, out)

	invalid := filepath.Join(dir, "invalid.json")
	writeFile(t, invalid, `{"name": `)
	err := ImportJSON(invalid, &out)
	assert.ErrorIs(t, err, ErrInvalidJSON)
	assert.NotErrorIs(t, err, ErrJSONNotFound)

	err = ImportJSON(filepath.Join(dir, "missing.json"), &out)
	assert.ErrorIs(t, err, ErrJSONNotFound)
	assert.NotErrorIs(t, err, ErrInvalidJSON)

	err = ImportJSON(dir, &out)
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestLoadEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".jarvis.env")
	writeFile(t, path, "# settings\nJARVIS_TEST_EXISTING=overwritten\nJARVIS_TEST_NEW=set\nJARVIS_TEST_PROMPT=\"jarvis> \"\n")

	t.Setenv("JARVIS_TEST_EXISTING", "kept")
	t.Setenv("JARVIS_TEST_NEW", "")
	require.NoError(t, os.Unsetenv("JARVIS_TEST_NEW"))
	t.Setenv("JARVIS_TEST_PROMPT", "")
	require.NoError(t, os.Unsetenv("JARVIS_TEST_PROMPT"))

	require.NoError(t, LoadEnv(path))
	assert.Equal(t, "kept", os.Getenv("JARVIS_TEST_EXISTING"))
	assert.Equal(t, "set", os.Getenv("JARVIS_TEST_NEW"))
	assert.Equal(t, "jarvis> ", os.Getenv("JARVIS_TEST_PROMPT"))

	err := LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorIs(t, err, ErrEnvRead)
}

func TestCollect(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.jarvis"), "x")
	writeFile(t, filepath.Join(dir, "a.jarvis"), "x")
	writeFile(t, filepath.Join(dir, "nested", "c.jarvis"), "x")
	writeFile(t, filepath.Join(dir, "notes.txt"), "x")
	single := filepath.Join(t.TempDir(), "single.jarvis")
	writeFile(t, single, "x")

	files, err := Collect([]string{dir, single}, "jarvis")
	require.NoError(t, err)

	expected := []string{
		filepath.Join(dir, "a.jarvis"),
		filepath.Join(dir, "b.jarvis"),
		filepath.Join(dir, "nested", "c.jarvis"),
		single,
	}
	assert.ElementsMatch(t, expected, files)
	assert.IsNonDecreasing(t, files)
}

func TestCollectErrors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	notes := filepath.Join(dir, "notes.txt")
	writeFile(t, notes, "x")

	_, err := Collect([]string{notes}, "jarvis")
	assert.ErrorContains(t, err, "is not a .jarvis script")

	_, err = Collect([]string{filepath.Join(dir, "missing")}, "jarvis")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
