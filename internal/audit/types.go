// Package audit inventories source files in a repository that is being
// migrated and decides which of them are still needed.
package audit

import "fmt"

// Classification is the outcome of testing a path against the keep list.
type Classification int

const (
	// Removable files are superseded by the rewrite.
	Removable Classification = iota
	// Keep files are still authoritative.
	Keep
)

func (c Classification) String() string {
	if c == Keep {
		return "keep"
	}
	return "removable"
}

// MarshalText encodes the classification by name.
func (c Classification) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes "keep" or "removable".
func (c *Classification) UnmarshalText(text []byte) error {
	switch string(text) {
	case "keep":
		*c = Keep
	case "removable":
		*c = Removable
	default:
		return fmt.Errorf("unknown classification %q", text)
	}
	return nil
}

// FileRecord is a discovered file and its classification.
type FileRecord struct {
	Path           string         `json:"path"`
	Classification Classification `json:"classification"`
}

// ScanResult holds the partitioned paths of one run, in discovery order.
type ScanResult struct {
	Root      string   `json:"root,omitempty"`
	Keep      []string `json:"keep"`
	Removable []string `json:"removable"`
}

// Total returns the number of discovered files.
func (r ScanResult) Total() int {
	return len(r.Keep) + len(r.Removable)
}

// Records returns every file of the result as a FileRecord, keep entries first.
func (r ScanResult) Records() []FileRecord {
	records := make([]FileRecord, 0, r.Total())
	for _, p := range r.Keep {
		records = append(records, FileRecord{Path: p, Classification: Keep})
	}
	for _, p := range r.Removable {
		records = append(records, FileRecord{Path: p, Classification: Removable})
	}
	return records
}

// ConvertedCount is the number of matching files still present under a
// directory that has already been migrated.
type ConvertedCount struct {
	Dir   string `json:"dir"`
	Files int    `json:"files"`
}
