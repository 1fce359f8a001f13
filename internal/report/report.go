// Package report renders scan results for people and for tools.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/HangZhouDaYaZhiTang/migaudit/internal/audit"
	"github.com/HangZhouDaYaZhiTang/migaudit/internal/theme"
)

// Options controls the text report.
type Options struct {
	Language string
	// Styles defaults to unstyled output when nil.
	Styles *theme.Styles
}

// Report writes the human-readable audit report: discovered count, keep and
// removable sets (sorted), converted directory tallies and a summary block.
func Report(w io.Writer, result audit.ScanResult, converted []audit.ConvertedCount, opts Options) error {
	language := opts.Language
	if language == "" {
		language = "Python"
	}
	s := theme.NewStyles(nil, true)
	if opts.Styles != nil {
		s = *opts.Styles
	}
	summary := audit.Summarize(result)

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", s.Title.Render(fmt.Sprintf("Found %d %s files", summary.Total, language)))

	fmt.Fprintf(&b, "\n%s\n", s.Heading.Render(fmt.Sprintf("Files to keep (%d):", summary.Keep)))
	for _, p := range audit.Sorted(result.Keep) {
		fmt.Fprintf(&b, "  %s\n", s.Keep.Render(p))
	}

	fmt.Fprintf(&b, "\n%s\n", s.Heading.Render(fmt.Sprintf("Files that can be removed (%d):", summary.Removable)))
	for _, p := range audit.Sorted(result.Removable) {
		fmt.Fprintf(&b, "  %s\n", s.Removable.Render(p))
	}

	fmt.Fprintf(&b, "\n%s\n", s.Heading.Render("Converted directories:"))
	for _, c := range converted {
		fmt.Fprintf(&b, "  %s - %s\n", c.Dir, s.Muted.Render(fmt.Sprintf("%d %s files", c.Files, language)))
	}

	fmt.Fprintf(&b, "\n%s\n", s.Heading.Render("Migration summary:"))
	fmt.Fprintf(&b, "  - Total %s files: %d\n", language, summary.Total)
	fmt.Fprintf(&b, "  - Keep: %d\n", summary.Keep)
	fmt.Fprintf(&b, "  - Removable: %d\n", summary.Removable)
	fmt.Fprintf(&b, "  - Removable share: %s\n", s.Count.Render(summary.PercentString()))

	_, err := io.WriteString(w, b.String())
	return err
}

// ScriptNotice tells the user where the cleanup script went and what to
// check before enabling it.
func ScriptNotice(w io.Writer, scriptPath, target string, styles theme.Styles) error {
	if target == "" {
		target = "Node.js"
	}
	_, err := fmt.Fprintf(w, "\n%s %s\n%s\n",
		styles.Heading.Render("Generated cleanup script:"),
		scriptPath,
		styles.Muted.Render(fmt.Sprintf("Make sure the %s version works before uncommenting the delete commands.", target)),
	)
	return err
}

// Document is the machine-readable form of a report.
type Document struct {
	Root      string                 `json:"root"`
	Keep      []string               `json:"keep"`
	Removable []string               `json:"removable"`
	Files     []audit.FileRecord     `json:"files"`
	Converted []audit.ConvertedCount `json:"converted"`
	Summary   audit.Summary          `json:"summary"`
	Script    string                 `json:"script,omitempty"`
}

// NewDocument assembles the JSON document of a scan. Paths are sorted.
func NewDocument(result audit.ScanResult, converted []audit.ConvertedCount, script string) Document {
	keep := audit.Sorted(result.Keep)
	removable := audit.Sorted(result.Removable)
	if keep == nil {
		keep = []string{}
	}
	if removable == nil {
		removable = []string{}
	}
	if converted == nil {
		converted = []audit.ConvertedCount{}
	}
	files := result.Records()
	slices.SortStableFunc(files, func(a, b audit.FileRecord) int {
		return strings.Compare(a.Path, b.Path)
	})
	return Document{
		Root:      result.Root,
		Keep:      keep,
		Removable: removable,
		Files:     files,
		Converted: converted,
		Summary:   audit.Summarize(result),
		Script:    script,
	}
}

// JSON writes v, usually a Document, as indented JSON.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
