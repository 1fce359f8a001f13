package audit

import (
	"slices"
	"strings"
)

// DefaultKeepPatterns are the compiled-in keep patterns: the entry point, the
// dependency manifest and the protocol module the rewrite still imports.
var DefaultKeepPatterns = []string{
	"main.py",
	"requirements.txt",
	"digitalHuman/protocol.py",
}

// DefaultConvertedDirs are the subtrees that already have a Node.js
// counterpart.
var DefaultConvertedDirs = []string{
	"digitalHuman/agent/",
	"digitalHuman/server/",
	"digitalHuman/engine/",
	"digitalHuman/bin/",
	"digitalHuman/utils/",
	"digitalHuman/core/",
}

// DefaultExtension is the file suffix of the language being retired.
const DefaultExtension = ".py"

// Classify tests one path against the keep patterns.
// Matching is plain case-sensitive substring containment, so the pattern
// "main.py" also keeps "utils/domain.py".
func Classify(path string, keep []string) Classification {
	for _, pattern := range keep {
		if strings.Contains(path, pattern) {
			return Keep
		}
	}
	return Removable
}

// Partition splits paths into keep and removable sets, preserving input
// order. It performs no I/O.
func Partition(paths, keep []string) ScanResult {
	result := ScanResult{
		Keep:      []string{},
		Removable: []string{},
	}
	for _, p := range paths {
		if Classify(p, keep) == Keep {
			result.Keep = append(result.Keep, p)
		} else {
			result.Removable = append(result.Removable, p)
		}
	}
	return result
}

// Sorted returns a sorted copy of paths.
func Sorted(paths []string) []string {
	out := slices.Clone(paths)
	slices.Sort(out)
	return out
}
