package catalog

import (
	"fmt"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Sort is a listing order.
type Sort string

const (
	SortNewest    Sort = "newest"
	SortTitle     Sort = "title"
	SortPriceLow  Sort = "price-low"
	SortPriceHigh Sort = "price-high"
	SortRating    Sort = "rating"
	SortStudents  Sort = "students"
)

// Sorts lists every listing order, default first.
var Sorts = []Sort{SortNewest, SortTitle, SortPriceLow, SortPriceHigh, SortRating, SortStudents}

// Levels lists the accepted level filters. "all" disables the filter.
var Levels = []string{"all", "beginner", "intermediate", "advanced"}

// Query narrows and orders a listing. Zero values match everything in newest-first order.
type Query struct {
	// Search matches title, description and instructor.
	Search string
	// Level is one of Levels.
	Level string
	// Category must match exactly. Empty or "all" disables the filter.
	Category string
	Sort     Sort
}

// Validate reports unknown levels and sorts.
func (q Query) Validate() error {
	if q.Level != "" && !lo.Contains(Levels, strings.ToLower(q.Level)) {
		return fmt.Errorf("unknown level %q, expected one of %s", q.Level, strings.Join(Levels, ", "))
	}
	if q.Sort != "" && !lo.Contains(Sorts, q.Sort) {
		names := lo.Map(Sorts, func(s Sort, _ int) string { return string(s) })
		return fmt.Errorf("unknown sort %q, expected one of %s", q.Sort, strings.Join(names, ", "))
	}
	return nil
}

// Find returns the courses matching q in the requested order.
func (c *Catalog) Find(q Query) []*Course {
	courses := lo.Filter(c.courses, func(course *Course, _ int) bool {
		return q.matches(course)
	})

	slices.SortStableFunc(courses, q.Sort.compare)
	return courses
}

func (q Query) matches(c *Course) bool {
	if search := strings.TrimSpace(q.Search); search != "" && !matchesSearch(c, search) {
		return false
	}

	if level := strings.ToLower(q.Level); level != "" && level != "all" && strings.ToLower(c.Level) != level {
		return false
	}

	if q.Category != "" && q.Category != "all" && c.Category != q.Category {
		return false
	}

	return true
}

// matchesSearch is a case-insensitive substring match on title, description
// and instructor, falling back to a fuzzy match on the title.
func matchesSearch(c *Course, search string) bool {
	needle := strings.ToLower(search)
	for _, field := range []string{c.Title, c.Description, c.Instructor} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}

	return fuzzy.MatchFold(search, c.Title)
}

func (s Sort) compare(a, b *Course) int {
	switch s {
	case SortTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortPriceLow:
		return cmpFloat(a.Price, b.Price)
	case SortPriceHigh:
		return cmpFloat(b.Price, a.Price)
	case SortRating:
		return cmpFloat(b.Rating, a.Rating)
	case SortStudents:
		return b.StudentsCount - a.StudentsCount
	default:
		return b.CreatedAt.Compare(a.CreatedAt)
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
