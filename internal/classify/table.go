package classify

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MrJamesThe3rd/spendtrack/internal/encoding"
)

// Entry maps a known merchant description fragment to a spending category.
// Table order is significant: classification scans entries in order and the
// tie-break depends on it.
type Entry struct {
	Description string
	Category    string
}

// ParseTable reads a reference table from r. The format is line-oriented:
// one "description;category" pair per line, blank lines and lines starting
// with '#' ignored, both fields whitespace-trimmed.
func ParseTable(r io.Reader) ([]Entry, error) {
	utf8r, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	var entries []Entry

	scanner := bufio.NewScanner(utf8r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		desc, category, found := strings.Cut(line, ";")
		if !found {
			return nil, fmt.Errorf("line %d: expected \"description;category\", got %q", lineNo, line)
		}

		desc = strings.TrimSpace(desc)
		category = strings.TrimSpace(category)

		if desc == "" || category == "" {
			return nil, fmt.Errorf("line %d: empty description or category", lineNo)
		}

		entries = append(entries, Entry{Description: desc, Category: category})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}

	return entries, nil
}

// LoadTable reads a reference table from a file.
func LoadTable(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	return ParseTable(f)
}

// Categories returns the distinct categories of the table in first-seen order.
func Categories(entries []Entry) []string {
	var out []string

	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		if _, ok := seen[e.Category]; ok {
			continue
		}

		seen[e.Category] = struct{}{}
		out = append(out, e.Category)
	}

	return out
}
