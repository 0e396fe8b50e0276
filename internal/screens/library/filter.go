package library

import (
	"time"

	"github.com/abhisek/lexiquiz/internal/quiz"
)

// Filter narrows the material list.
type Filter int

const (
	FilterAll Filter = iota
	FilterRecent
	FilterIncomplete
	FilterCompleted
)

// RecentWindow is how far back FilterRecent looks.
const RecentWindow = 7 * 24 * time.Hour

var filterLabels = [...]string{
	FilterAll:        "All",
	FilterRecent:     "Recent",
	FilterIncomplete: "Incomplete",
	FilterCompleted:  "Completed",
}

func (f Filter) String() string {
	if int(f) < len(filterLabels) {
		return filterLabels[f]
	}
	return "Unknown"
}

// Next returns the filter after f, wrapping around.
func (f Filter) Next() Filter {
	return (f + 1) % Filter(len(filterLabels))
}

// FilterMaterials returns the materials matching f, preserving order.
func FilterMaterials(ms []quiz.Material, f Filter, now time.Time) []quiz.Material {
	out := make([]quiz.Material, 0, len(ms))
	for _, m := range ms {
		if matches(m, f, now) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m quiz.Material, f Filter, now time.Time) bool {
	switch f {
	case FilterRecent:
		return now.Sub(m.ImportedAt) <= RecentWindow
	case FilterIncomplete:
		return m.Status != quiz.StatusCompleted
	case FilterCompleted:
		return m.Status == quiz.StatusCompleted
	}
	return true
}
