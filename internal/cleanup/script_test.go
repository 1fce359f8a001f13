package cleanup

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		quoted string
	}{
		{name: "plain", input: "utils/helper.py", quoted: "'utils/helper.py'"},
		{name: "spaces", input: "my dir/a b.py", quoted: "'my dir/a b.py'"},
		{name: "single quote", input: "it's.py", quoted: `'it'\''s.py'`},
		{name: "double quote and dollar", input: `a"$HOME` + "`x`.py", quoted: `'a"$HOME` + "`x`.py'"},
		{name: "empty", input: "", quoted: "''"},
		{name: "newline", input: "a\nb.py", quoted: `$'a\nb.py'`},
		{name: "newline with quote and backslash", input: "a'\\\n.py", quoted: `$'a\'\\\n.py'`},
		{name: "bell", input: "a\x07.py", quoted: `$'a\x07.py'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quoted := Quote(tt.input)
			assert.Equal(t, tt.quoted, quoted)
			assert.NotContains(t, quoted, "\n")

			value, rest, err := Unquote(quoted)
			require.NoError(t, err)
			assert.Equal(t, tt.input, value)
			assert.Empty(t, rest)
		})
	}
}

func TestUnquoteErrors(t *testing.T) {
	for _, word := range []string{"plain", "'open", `$'open`, `$'\q'`, `$'\x4'`} {
		_, _, err := Unquote(word)
		assert.Error(t, err, "word %q", word)
	}
}

func TestGenerateCleanupScript(t *testing.T) {
	script := GenerateCleanupScript([]string{"utils/helper.py", "digitalHuman/agent/x.py"}, Options{})

	assert.True(t, strings.HasPrefix(script, "#!/bin/bash\n"))
	assert.Contains(t, script, "echo 'Cleaning up converted Python files...'\n")
	assert.Contains(t, script, "echo 'Removing: utils/helper.py'\n# rm -- 'utils/helper.py'\n")
	assert.Contains(t, script, "echo 'Removing: digitalHuman/agent/x.py'\n# rm -- 'digitalHuman/agent/x.py'\n")
	assert.Contains(t, script, "Node.js implementation is verified")

	for _, line := range strings.Split(script, "\n") {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		assert.True(t, strings.HasPrefix(line, "echo "), "unexpected executable line %q", line)
	}
}

func TestGenerateCleanupScriptCustomWording(t *testing.T) {
	script := GenerateCleanupScript(nil, Options{Language: "Ruby", Target: "Go"})

	assert.Contains(t, script, "converted Ruby files")
	assert.Contains(t, script, "Go implementation")
	assert.NotContains(t, script, removePrefix)
}

func TestScriptRoundTrip(t *testing.T) {
	removable := []string{
		"utils/helper.py",
		"with space/file name.py",
		"quote'd.py",
		"-leading-dash.py",
		"new\nline.py",
		`back\slash.py`,
		"dollar$(rm -rf ~).py",
	}

	parsed, err := ParseScript(strings.NewReader(GenerateCleanupScript(removable, Options{})))
	require.NoError(t, err)
	assert.Equal(t, removable, parsed)
}

func TestParseScriptRejectsCorruptLines(t *testing.T) {
	_, err := ParseScript(strings.NewReader("# rm -- 'unterminated\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")

	_, err = ParseScript(strings.NewReader("# rm -- 'a.py' 'b.py'\n"))
	require.Error(t, err)
}

func TestWriteScriptOverwrites(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, DefaultScriptName)
	require.NoError(t, os.WriteFile(target, []byte("old contents that are longer\n"), 0o600))

	written, err := WriteScript(dir, "", "#!/bin/bash\n")
	require.NoError(t, err)
	assert.Equal(t, target, written)

	// #nosec G304 - test file operations with t.TempDir() are safe
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/bash\n", string(data))

	paths, err := ReadScript(target)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestWriteScriptFailurePropagates(t *testing.T) {
	_, err := WriteScript(filepath.Join(t.TempDir(), "missing"), "x.sh", "")
	assert.Error(t, err)
}

func TestGeneratedScriptIsInert(t *testing.T) {
	bash, err := exec.LookPath("bash")
	if err != nil {
		t.Skip("bash not available")
	}

	dir := t.TempDir()
	victim := filepath.Join(dir, "victim.py")
	require.NoError(t, os.WriteFile(victim, []byte("x\n"), 0o600))

	scriptPath, err := WriteScript(dir, "", GenerateCleanupScript([]string{"victim.py", "odd\nname.py"}, Options{}))
	require.NoError(t, err)

	cmd := exec.Command(bash, scriptPath) //nolint:gosec
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	assert.Contains(t, string(out), "Removing: victim.py")
	assert.FileExists(t, victim)
}

func TestCompare(t *testing.T) {
	d := Compare([]string{"a.py", "b.py", "gone.py"}, []string{"c.py", "a.py", "b.py"})
	assert.Equal(t, []string{"gone.py"}, d.Stale)
	assert.Equal(t, []string{"c.py"}, d.Missing)
	assert.False(t, d.Empty())

	assert.True(t, Compare([]string{"a.py"}, []string{"a.py"}).Empty())
	assert.True(t, Compare(nil, nil).Empty())
}
