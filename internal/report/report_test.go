package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/audit"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain() Options {
	return Options{}
}

func TestReportScenario(t *testing.T) {
	result := audit.ScanResult{
		Keep:      []string{"main.py"},
		Removable: []string{"utils/helper.py", "digitalHuman/agent/x.py"},
	}
	converted := []audit.ConvertedCount{{Dir: "digitalHuman/agent/", Files: 1}}

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, result, converted, plain()))

	expected := `Found 3 Python files

Files to keep (1):
  main.py

Files that can be removed (2):
  digitalHuman/agent/x.py
  utils/helper.py

Converted directories:
  digitalHuman/agent/ - 1 Python files

Migration summary:
  - Total Python files: 3
  - Keep: 1
  - Removable: 2
  - Removable share: 66.7%
`
	assert.Equal(t, expected, buf.String())
}

func TestReportSevenOfTen(t *testing.T) {
	result := audit.ScanResult{
		Keep:      []string{"main.py", "a/main.py", "requirements.txt.py"},
		Removable: []string{"1.py", "2.py", "3.py", "4.py", "5.py", "6.py", "7.py"},
	}

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, result, nil, plain()))
	assert.Contains(t, buf.String(), "Removable share: 70.0%")
}

func TestReportEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, audit.ScanResult{}, nil, Options{Language: "Ruby"}))

	out := buf.String()
	assert.Contains(t, out, "Found 0 Ruby files")
	assert.Contains(t, out, "Files to keep (0):")
	assert.Contains(t, out, "Removable share: 0.0%")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestReportStyled(t *testing.T) {
	styles := theme.NewStyles(theme.Dracula(), false)
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, audit.ScanResult{Keep: []string{"main.py"}}, nil, Options{Styles: &styles}))
	assert.Contains(t, buf.String(), "main.py")
}

func TestReportPropagatesWriteErrors(t *testing.T) {
	err := Report(failingWriter{}, audit.ScanResult{}, nil, plain())
	assert.Error(t, err)
}

func TestScriptNotice(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ScriptNotice(&buf, "cleanup_python_files.sh", "", theme.NewStyles(nil, true)))
	assert.Contains(t, buf.String(), "Generated cleanup script: cleanup_python_files.sh")
	assert.Contains(t, buf.String(), "Node.js version works")
}

func TestJSONDocument(t *testing.T) {
	result := audit.ScanResult{
		Root:      "/repo",
		Keep:      []string{"main.py"},
		Removable: []string{"z.py", "a.py"},
	}

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, NewDocument(result, nil, "cleanup_python_files.sh")))

	var doc Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "/repo", doc.Root)
	assert.Equal(t, []string{"a.py", "z.py"}, doc.Removable)
	assert.Equal(t, []audit.ConvertedCount{}, doc.Converted)
	assert.Equal(t, 3, doc.Summary.Total)
	assert.Equal(t, "cleanup_python_files.sh", doc.Script)
	assert.Equal(t, []audit.FileRecord{
		{Path: "a.py", Classification: audit.Removable},
		{Path: "main.py", Classification: audit.Keep},
		{Path: "z.py", Classification: audit.Removable},
	}, doc.Files)
	assert.Contains(t, buf.String(), `"classification": "keep"`)
}

func TestJSONDocumentEmptyListsAreArrays(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, NewDocument(audit.ScanResult{}, nil, "")))
	assert.Contains(t, buf.String(), `"keep": []`)
	assert.Contains(t, buf.String(), `"removable": []`)
	assert.Contains(t, buf.String(), `"files": []`)
	assert.NotContains(t, buf.String(), `"script"`)
}
