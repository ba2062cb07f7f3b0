package mastery

import (
	"fmt"

	"github.com/samber/lo"
)

// Category selects which items a test draws from.
type Category string

const (
	CategoryAll      Category = "all"
	CategoryHard     Category = "hard"
	CategoryProgress Category = "progress"
	CategoryLearned  Category = "learned"
)

var categories = []Category{CategoryAll, CategoryHard, CategoryProgress, CategoryLearned}

// Categories returns every category in display order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// ParseCategory converts a stored or user-supplied name into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if lo.Contains(categories, c) {
		return c, nil
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Next returns the category after c, wrapping around.
func (c Category) Next() Category {
	i := lo.IndexOf(categories, c)
	return categories[(i+1)%len(categories)]
}

// Label is the display name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryHard:
		return "Hard"
	case CategoryProgress:
		return "In progress"
	case CategoryLearned:
		return "Learned"
	default:
		return "All"
	}
}

// Status returns the status an item must have to belong to c, and false for
// CategoryAll.
func (c Category) Status() (Status, bool) {
	switch c {
	case CategoryHard:
		return StatusHard, true
	case CategoryProgress:
		return StatusProgress, true
	case CategoryLearned:
		return StatusLearned, true
	}
	return "", false
}

// StatusSource reports the current status for an item key.
type StatusSource interface {
	Status(key string) Status
}

// Filter returns the items of list that belong to category c, keeping their
// relative order. CategoryAll returns list unchanged. The result is computed
// from src on every call so it always reflects the latest answers.
func Filter[T any](list []T, key func(T) string, c Category, src StatusSource) []T {
	want, ok := c.Status()
	if !ok {
		return list
	}
	return lo.Filter(list, func(item T, _ int) bool {
		return src.Status(key(item)) == want
	})
}
