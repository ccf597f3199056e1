// Package classify assigns a spending category to a transaction description
// by fuzzy-matching it against an ordered reference table.
package classify

import (
	"github.com/MrJamesThe3rd/spendtrack/internal/ledger"
	"github.com/MrJamesThe3rd/spendtrack/internal/similarity"
)

// acceptThreshold is the score an entry must strictly exceed to qualify.
const acceptThreshold = 90

// Classify scans entries in order and returns the category of the best match,
// or ledger.DefaultCategory when no entry scores above the threshold.
//
// Tie-break: the running maximum only advances on a strictly greater score, so
// among entries tying at the max the first one seen wins. This makes the
// result deterministic but table-order dependent; earlier entries act as the
// more canonical ones. Deliberate, keep as is.
func Classify(description string, entries []Entry) string {
	best := 0
	category := ledger.DefaultCategory

	for _, e := range entries {
		score := similarity.Score(description, e.Description)
		if score > acceptThreshold && score > best {
			best = score
			category = e.Category
		}
	}

	return category
}
