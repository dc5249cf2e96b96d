package domain

import "fmt"

// CategoryAll is the pseudo-category matching every quote
const CategoryAll = "All"

// Quote represents a single immutable quote from the corpus
type Quote struct {
	ID       int64  `json:"id" db:"id"`
	Content  string `json:"content" db:"content"`
	Category string `json:"category" db:"category"`
}

// CopyText returns the clipboard representation of the quote
func (q Quote) CopyText() string {
	return fmt.Sprintf("\"%s\" - %s", q.Content, q.Category)
}

// Categories returns "All" followed by distinct categories in corpus order
func Categories(quotes []Quote) []string {
	res := []string{CategoryAll}
	seen := map[string]bool{CategoryAll: true}
	for _, q := range quotes {
		if seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		res = append(res, q.Category)
	}
	return res
}

// Card is a read-only view of a quote in the visible window with its reaction state
type Card struct {
	Quote
	Index int  `json:"index"`
	Liked bool `json:"liked"`
	Saved bool `json:"saved"`
}
