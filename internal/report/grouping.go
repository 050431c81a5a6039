package report

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/fivemlab/commute-expense/internal/domain/entity"
)

// GroupedSubmissions partitions submissions by creation year, then by
// zero-padded month ("01".."12"). Derived on every read, never persisted.
type GroupedSubmissions map[string]map[string][]entity.Submission

// GroupByYearMonth buckets the submissions by their creation timestamp.
// Every input appears in exactly one bucket and relative order within a
// bucket follows the input. Key ordering for display is the caller's
// concern; see SortedYearsDesc and SortedMonthsDesc.
func GroupByYearMonth(submissions []entity.Submission) GroupedSubmissions {
	grouped := make(GroupedSubmissions)
	for _, s := range submissions {
		year := strconv.Itoa(s.CreatedAt.Year())
		month := fmt.Sprintf("%02d", int(s.CreatedAt.Month()))

		if grouped[year] == nil {
			grouped[year] = make(map[string][]entity.Submission)
		}
		grouped[year][month] = append(grouped[year][month], s)
	}
	return grouped
}

// SortedYearsDesc returns the year keys, newest first.
func (g GroupedSubmissions) SortedYearsDesc() []string {
	years := make([]string, 0, len(g))
	for y := range g {
		years = append(years, y)
	}
	sort.Slice(years, func(i, j int) bool {
		return numeric(years[i]) > numeric(years[j])
	})
	return years
}

// SortedMonthsDesc returns the month keys of one year, newest first.
func (g GroupedSubmissions) SortedMonthsDesc(year string) []string {
	months := make([]string, 0, len(g[year]))
	for m := range g[year] {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool {
		return numeric(months[i]) > numeric(months[j])
	})
	return months
}

func numeric(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
