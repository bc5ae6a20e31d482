package usagelog

import (
	"sort"
	"time"
)

// Count is a label with its number of occurrences.
type Count struct {
	Label string
	N     int
}

// Stats summarises a set of usage entries.
type Stats struct {
	Total   int
	Invalid int
	First   time.Time
	Last    time.Time

	byKind   map[string]int
	byDetail map[string]int
}

// Summarize counts entries by kind and by "KIND: detail".
func Summarize(entries []ParsedEntry) Stats {
	s := Stats{
		byKind:   make(map[string]int),
		byDetail: make(map[string]int),
	}

	for _, e := range entries {
		if !e.IsValid {
			s.Invalid++
			continue
		}
		s.Total++
		s.byKind[e.Kind]++
		if e.Detail != "" {
			s.byDetail[e.Kind+": "+e.Detail]++
		}
		if s.First.IsZero() || e.Time.Before(s.First) {
			s.First = e.Time
		}
		if e.Time.After(s.Last) {
			s.Last = e.Time
		}
	}
	return s
}

// Kinds returns per-kind counts, most frequent first.
func (s Stats) Kinds() []Count {
	return sortedCounts(s.byKind, 0)
}

// Top returns the n most frequent "KIND: detail" labels (all when n <= 0).
func (s Stats) Top(n int) []Count {
	return sortedCounts(s.byDetail, n)
}

func sortedCounts(m map[string]int, n int) []Count {
	counts := make([]Count, 0, len(m))
	for label, c := range m {
		counts = append(counts, Count{Label: label, N: c})
	}

	// Ties break alphabetically so output is stable.
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].N != counts[j].N {
			return counts[i].N > counts[j].N
		}
		return counts[i].Label < counts[j].Label
	})

	if n > 0 && len(counts) > n {
		counts = counts[:n]
	}
	return counts
}
