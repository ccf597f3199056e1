// Package similarity scores how alike two free-text merchant descriptions are.
//
// Bank descriptions carry noise in two distinct shapes: extra tokens around the
// merchant name ("TESCO SUPERSTORE LONDON GB") and reordered tokens ("City
// Center Tesco" vs "Tesco City Center"). PartialRatio absorbs the first,
// TokenSortRatio the second, and Score takes whichever is higher.
package similarity

import (
	"sort"
	"strings"
	"unicode"
)

// Score returns a similarity value in [0,100] between a and b.
// It is symmetric and deterministic; identical non-empty strings score 100.
func Score(a, b string) int {
	na := normalize(a)
	nb := normalize(b)

	// Pure-punctuation strings normalize to nothing; score their raw runes
	// instead, so identical non-empty inputs still compare equal.
	if na == "" && nb == "" {
		return ratio([]rune(a), []rune(b))
	}

	p := PartialRatio(na, nb)
	t := TokenSortRatio(na, nb)

	if p > t {
		return p
	}

	return t
}

// Ratio is the plain edit-distance similarity of a and b scaled to [0,100],
// where a substitution costs as much as one deletion plus one insertion.
func Ratio(a, b string) int {
	return ratio([]rune(normalize(a)), []rune(normalize(b)))
}

// PartialRatio aligns the shorter string against every equal-length substring
// window of the longer string and returns the best Ratio found.
func PartialRatio(a, b string) int {
	ra := []rune(normalize(a))
	rb := []rune(normalize(b))

	short, long := ra, rb
	if len(short) > len(long) {
		short, long = long, short
	}

	if len(short) == 0 {
		return 0
	}

	if len(short) == len(long) {
		return ratio(short, long)
	}

	best := 0

	for i := 0; i+len(short) <= len(long); i++ {
		if r := ratio(short, long[i:i+len(short)]); r > best {
			best = r

			if best == 100 {
				break
			}
		}
	}

	return best
}

// TokenSortRatio tokenizes both strings on whitespace, sorts the tokens
// alphabetically, rejoins them and computes Ratio of the results.
func TokenSortRatio(a, b string) int {
	return ratio([]rune(sortTokens(normalize(a))), []rune(sortTokens(normalize(b))))
}

// normalize lowercases s, folds every non-alphanumeric rune to a space and
// collapses whitespace runs, so punctuation and case never count against a
// match.
func normalize(s string) string {
	var sb strings.Builder

	sb.Grow(len(s))

	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(unicode.ToLower(r))
		default:
			sb.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(sb.String()), " ")
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)

	return strings.Join(tokens, " ")
}

// ratio computes 100 * 2*LCS(a,b) / (len(a)+len(b)) rounded to nearest.
// This equals the classic weighted-Levenshtein ratio with substitution
// weight 2. Two empty strings score 0, not 100.
func ratio(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	matched := lcsLength(a, b)
	lenSum := len(a) + len(b)

	return (200*matched + lenSum/2) / lenSum
}

// lcsLength is the length of the longest common subsequence of a and b,
// computed with a two-row dynamic program.
func lcsLength(a, b []rune) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				cur[j] = prev[j-1] + 1
				continue
			}

			if prev[j] >= cur[j-1] {
				cur[j] = prev[j]
			} else {
				cur[j] = cur[j-1]
			}
		}

		prev, cur = cur, prev

		for j := range cur {
			cur[j] = 0
		}
	}

	return prev[len(b)]
}
