// Package filters holds the search, sort and pagination rules for the list
// views. Stores push predicates into their query layer and then hand the rows
// to these functions so every backend yields the same order.
package filters

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Page selects a window of a sorted list. A zero PageSize means everything.
type Page struct {
	Page     int `form:"page" json:"page"`
	PageSize int `form:"page_size" json:"page_size"`
}

const MaxPageSize = 500

// Paginate returns the requested window of items.
func Paginate[T any](items []T, p Page) []T {
	if p.PageSize <= 0 {
		return items
	}
	size := min(p.PageSize, MaxPageSize)
	page := max(p.Page, 1)

	// Compare in pages first so a huge page number cannot overflow start.
	if page-1 >= (len(items)+size-1)/size {
		return []T{}
	}
	start := (page - 1) * size
	end := min(start+size, len(items))
	return items[start:end]
}

// newCollator builds a case-insensitive collator. Collators keep scratch
// buffers, so each sort gets its own.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase, collate.Loose)
}

// containsFold reports whether any of the fields contains term, ignoring case.
func containsFold(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func compareIDs(a, b uuid.UUID) int {
	return strings.Compare(a.String(), b.String())
}

// Normalize trims the search term.
func Normalize(term string) string {
	return strings.TrimSpace(term)
}
