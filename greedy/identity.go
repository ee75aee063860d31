package greedy

import (
	"fmt"
	"strings"

	"github.com/biogo/biogo/align"
	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/seq/linear"
)

// Linear gap Needleman-Wunsch scores over the gapped DNA alphabet "-acgt".
var needle = align.NW{
	{0, -5, -5, -5, -5},
	{-5, 2, -3, -3, -3},
	{-5, -3, 2, -3, -3},
	{-5, -3, -3, 2, -3},
	{-5, -3, -3, -3, 2},
}

// Normalize lowercases s and maps U to T. It fails on anything other than
// the four unambiguous nucleotides.
func Normalize(s string) (string, error) {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "u", "t")

	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'a', 'c', 'g', 't':
		default:
			return "", fmt.Errorf("unsupported nucleotide %q at position %d", s[i], i+1)
		}
	}

	return s, nil
}

// Identity globally aligns two normalized sequences and returns the
// fraction of aligned columns that are identical. Terminal gaps are not
// counted as columns.
func Identity(a, b string) (float64, error) {
	if a == b {
		return 1, nil
	}
	if a == "" || b == "" {
		return 0, nil
	}

	sa := linear.NewSeq("a", alphabet.BytesToLetters([]byte(a)), alphabet.DNAgapped)
	sb := linear.NewSeq("b", alphabet.BytesToLetters([]byte(b)), alphabet.DNAgapped)

	aln, err := needle.Align(sa, sb)
	if err != nil {
		return 0, err
	}

	fa := align.Format(sa, sb, aln, '-')
	ra, ok := fa[0].(alphabet.Letters)
	if !ok {
		return 0, fmt.Errorf("unexpected alignment type %T", fa[0])
	}
	rb, ok := fa[1].(alphabet.Letters)
	if !ok {
		return 0, fmt.Errorf("unexpected alignment type %T", fa[1])
	}

	start, end := 0, len(ra)
	for start < end && (ra[start] == '-' || rb[start] == '-') {
		start++
	}
	for end > start && (ra[end-1] == '-' || rb[end-1] == '-') {
		end--
	}
	if end == start {
		return 0, nil
	}

	matches := 0
	for i := start; i < end; i++ {
		if ra[i] != '-' && ra[i] == rb[i] {
			matches++
		}
	}

	return float64(matches) / float64(end-start), nil
}
