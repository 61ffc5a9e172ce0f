package submission

import (
	"sort"

	"github.com/trezcool/lessonnotes/core"
)

// Ordering fields accepted by Sort.
const (
	OrderByWeek       = "week"
	OrderByID         = "id"
	OrderByUploadedOn = "uploadedOn"
	OrderByTeacher    = "teacher"
)

var comparators = map[string]func(a, b Submission) int{
	OrderByWeek:       func(a, b Submission) int { return a.Week - b.Week },
	OrderByID:         func(a, b Submission) int { return a.ID - b.ID },
	OrderByUploadedOn: func(a, b Submission) int { return compareStrings(a.UploadedOn, b.UploadedOn) },
	OrderByTeacher:    func(a, b Submission) int { return compareStrings(a.Teacher, b.Teacher) },
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// IsOrderingField reports whether Sort knows how to order by field.
func IsOrderingField(field string) bool {
	_, ok := comparators[field]
	return ok
}

// Filter returns the submissions matching every set field of filter, in their original order.
// It never modifies subs.
func Filter(subs []Submission, filter QueryFilter) []Submission {
	filtered := make([]Submission, 0, len(subs))
	for _, s := range subs {
		if filter.Class != "" && s.Class != filter.Class {
			continue
		}
		if filter.Week != 0 && s.Week != filter.Week {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// Sort returns a stably sorted copy of subs; ties keep their relative order.
// Unknown fields are ignored.
func Sort(subs []Submission, orderings ...core.Ordering) []Submission {
	sorted := make([]Submission, len(subs))
	copy(sorted, subs)
	if len(orderings) == 0 {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		for _, ord := range orderings {
			cmp, ok := comparators[ord.Field]
			if !ok {
				continue
			}
			c := cmp(sorted[i], sorted[j])
			if c == 0 {
				continue
			}
			if ord.Ascending {
				return c < 0
			}
			return c > 0
		}
		return false
	})
	return sorted
}

// SortByWeek is Sort on the week number alone.
func SortByWeek(subs []Submission, ascending bool) []Submission {
	return Sort(subs, core.Ordering{Field: OrderByWeek, Ascending: ascending})
}
