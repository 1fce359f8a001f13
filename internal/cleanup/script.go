// Package cleanup renders the reviewable removal script for a scan and reads
// such scripts back.
package cleanup

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// DefaultScriptName is the file written next to the scanned tree.
const DefaultScriptName = "cleanup_python_files.sh"

const removePrefix = "# rm -- "

// Options controls the wording of the generated script.
type Options struct {
	// Language names the files being removed, e.g. "Python".
	Language string
	// Target names the implementation that replaces them, e.g. "Node.js".
	Target string
}

func (o Options) withDefaults() Options {
	if o.Language == "" {
		o.Language = "Python"
	}
	if o.Target == "" {
		o.Target = "Node.js"
	}
	return o
}

// GenerateCleanupScript renders a bash script that announces each removable
// file and carries its delete command commented out. Running the script
// unmodified deletes nothing.
func GenerateCleanupScript(removable []string, opts Options) string {
	opts = opts.withDefaults()

	var b strings.Builder
	b.WriteString("#!/bin/bash\n\n")
	fmt.Fprintf(&b, "echo %s\n\n", Quote(fmt.Sprintf("Cleaning up converted %s files...", opts.Language)))

	for _, p := range removable {
		fmt.Fprintf(&b, "echo %s\n", Quote("Removing: "+p))
		b.WriteString(removePrefix + Quote(p) + "\n\n")
	}

	b.WriteString("\n")
	b.WriteString("echo 'Cleanup finished.'\n")
	fmt.Fprintf(&b, "echo %s\n", Quote(fmt.Sprintf(
		"Note: delete commands are commented out. Uncomment them manually once the %s implementation is verified to work.",
		opts.Target)))
	return b.String()
}

// WriteScript writes content to name inside dir, replacing any existing file,
// and returns the path written.
func WriteScript(dir, name, content string) (string, error) {
	if name == "" {
		name = DefaultScriptName
	}
	target := filepath.Join(dir, name)
	// #nosec G306 -- the script is meant to be executed by the user
	if err := os.WriteFile(target, []byte(content), 0o755); err != nil {
		return "", fmt.Errorf("writing cleanup script: %w", err)
	}
	return target, nil
}

// ParseScript returns the paths named by the commented-out delete commands
// of a generated script, in script order.
func ParseScript(r io.Reader) ([]string, error) {
	paths := []string{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if !strings.HasPrefix(line, removePrefix) {
			continue
		}
		p, rest, err := Unquote(strings.TrimPrefix(line, removePrefix))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if strings.TrimSpace(rest) != "" {
			return nil, fmt.Errorf("line %d: trailing text %q", lineNo, rest)
		}
		paths = append(paths, p)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return paths, nil
}

// ReadScript parses the script at path.
func ReadScript(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseScript(f)
}
