package ledger

import (
	"strings"

	"github.com/halverson/doorlist/pkg/domain"
)

// Search filters records by case-insensitive substring match against
// name, handle, email, and code. An empty query matches everything.
// Input order is preserved; filtering never re-sorts.
func Search(records []domain.RSVP, query string) []domain.RSVP {
	if query == "" {
		return records
	}
	q := strings.ToLower(query)
	var out []domain.RSVP
	for _, rec := range records {
		for _, field := range []string{rec.Name, rec.Handle, rec.Email, rec.Code} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}
