package audit

import "fmt"

// Summary holds the headline numbers of a scan.
type Summary struct {
	Total            int     `json:"total"`
	Keep             int     `json:"keep"`
	Removable        int     `json:"removable"`
	RemovablePercent float64 `json:"removable_percent"`
}

// Summarize computes the counts of a result. An empty result has a removable
// share of zero rather than NaN.
func Summarize(r ScanResult) Summary {
	s := Summary{
		Total:     r.Total(),
		Keep:      len(r.Keep),
		Removable: len(r.Removable),
	}
	if s.Total > 0 {
		s.RemovablePercent = float64(s.Removable) / float64(s.Total) * 100
	}
	return s
}

// PercentString formats the removable share with one decimal place.
func (s Summary) PercentString() string {
	return fmt.Sprintf("%.1f%%", s.RemovablePercent)
}
