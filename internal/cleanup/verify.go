package cleanup

import "slices"

// Drift describes how an existing script disagrees with a fresh scan.
type Drift struct {
	// Stale paths are in the script but no longer removable.
	Stale []string `json:"stale"`
	// Missing paths are removable but absent from the script.
	Missing []string `json:"missing"`
}

// Empty reports whether the script matches the scan.
func (d Drift) Empty() bool {
	return len(d.Stale) == 0 && len(d.Missing) == 0
}

// Compare diffs the paths listed in a script against the current removable
// set. Both slices in the result are sorted.
func Compare(scripted, removable []string) Drift {
	inScript := make(map[string]struct{}, len(scripted))
	for _, p := range scripted {
		inScript[p] = struct{}{}
	}
	current := make(map[string]struct{}, len(removable))
	for _, p := range removable {
		current[p] = struct{}{}
	}

	d := Drift{Stale: []string{}, Missing: []string{}}
	for p := range inScript {
		if _, ok := current[p]; !ok {
			d.Stale = append(d.Stale, p)
		}
	}
	for p := range current {
		if _, ok := inScript[p]; !ok {
			d.Missing = append(d.Missing, p)
		}
	}
	slices.Sort(d.Stale)
	slices.Sort(d.Missing)
	return d
}
