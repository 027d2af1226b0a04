package dedupe

import (
	"path/filepath"
	"strings"
)

// Suffixes that export and backup tools append when writing a second copy of
// the same photo (IMG_0012_edited.jpg, photo (1).jpg, ...).
var copySuffixes = []string{
	"_edited",
	"_copy",
	" (1)",
	" (2)",
	"_1",
	"_2",
	"-1",
	"-2",
}

// FilenameSimilarity returns a similarity ratio in [0, 1] for two file
// names. Copy-marker suffixes are stripped before comparison, so
// IMG_0012.jpg and IMG_0012_edited.jpg score 1.0.
func FilenameSimilarity(a, b string) float64 {
	sa := normalizeStem(a)
	sb := normalizeStem(b)
	if sa == "" || sb == "" {
		return 0
	}
	if sa == sb {
		return 1
	}
	return levenshteinRatio(sa, sb)
}

// normalizeStem lowercases the name, drops the extension, and strips known
// copy-marker suffixes.
func normalizeStem(name string) string {
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	stem = strings.ToLower(stem)
	for _, suffix := range copySuffixes {
		stem = strings.TrimSuffix(stem, suffix)
	}
	return stem
}

// levenshteinRatio returns 1 minus the normalized edit distance.
func levenshteinRatio(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	longest := len(ra)
	if len(rb) > longest {
		longest = len(rb)
	}
	if longest == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(longest)
}

// levenshtein computes edit distance with the classic two-row DP.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
