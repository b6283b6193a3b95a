package chat

import (
	"regexp"
	"strconv"
	"strings"

	"dante_properties/internal/domain"
	"dante_properties/internal/shared"
)

// Extract turns a raw user utterance into a structured FilterSet. It is
// pure and deterministic: it lower-cases the input, matches each category
// independently (first match wins within a category) and simply omits
// categories with no match.
func Extract(text string) domain.FilterSet {
	low := strings.ToLower(text)

	var f domain.FilterSet
	if b := detectNeighborhood(low); b != "" {
		f.Neighborhood = &b
	}
	if t := firstVocabMatch(low, shared.PropertyTypes); t != "" {
		f.Type = &t
	}
	if o := firstVocabMatch(low, shared.Operations); o != "" {
		f.Operation = &o
	}
	if p, ok := matchAmount(low, maxPricePatterns); ok {
		f.MaxPrice = &p
	}
	if p, ok := matchAmount(low, minPricePatterns); ok {
		f.MinPrice = &p
	}
	if n, ok := matchCount(low, roomPatterns); ok {
		f.MinRooms = &n
	}
	if m, ok := matchAmount(low, sqmPatterns); ok {
		f.MinSqm = &m
	}
	return f
}

// detectNeighborhood scans the gazetteer for a direct substring occurrence
// first (gazetteer order wins). Failing that, it tries prepositional
// patterns and only accepts a capture that exactly equals a gazetteer
// entry, which keeps unrelated phrases like "en serio" out.
func detectNeighborhood(low string) string {
	for _, b := range shared.Neighborhoods {
		if strings.Contains(low, strings.ToLower(b)) {
			return b
		}
	}
	for _, re := range neighborhoodPatterns {
		m := re.FindStringSubmatch(low)
		if m == nil {
			continue
		}
		candidate := strings.TrimSpace(m[1])
		for _, b := range shared.Neighborhoods {
			if candidate == strings.ToLower(b) {
				return b
			}
		}
	}
	return ""
}

// firstVocabMatch returns the first vocabulary entry occurring as a
// substring, in vocabulary order.
func firstVocabMatch(low string, vocab []string) string {
	for _, v := range vocab {
		if strings.Contains(low, strings.ToLower(v)) {
			return v
		}
	}
	return ""
}

// matchAmount tries patterns in order; the first one whose captured number
// parses (after stripping thousands-separator dots) wins. A parse failure
// moves on to the next pattern rather than aborting the category.
func matchAmount(low string, patterns []*regexp.Regexp) (float64, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(low)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ".", "")
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		return float64(n), true
	}
	return 0, false
}

func matchCount(low string, patterns []*regexp.Regexp) (int, bool) {
	for _, re := range patterns {
		if m := re.FindStringSubmatch(low); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

var (
	neighborhoodPatterns = []*regexp.Regexp{
		regexp.MustCompile(`en ([a-záéíóúñ\s]+)`),
		regexp.MustCompile(`barrio ([a-záéíóúñ\s]+)`),
		regexp.MustCompile(`zona ([a-záéíóúñ\s]+)`),
		regexp.MustCompile(`de ([a-záéíóúñ\s]+)$`),
	}

	maxPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`hasta \$?\s*([0-9\.]+)\s*(usd|dólares|dolares)?`),
		regexp.MustCompile(`máximo \$?\s*([0-9\.]+)\s*(usd|dólares|dolares)?`),
		regexp.MustCompile(`precio.*?\$?\s*([0-9\.]+)\s*(usd|dólares|dolares)?`),
		regexp.MustCompile(`menos de \$?\s*([0-9\.]+)\s*(usd|dólares|dolares)?`),
		regexp.MustCompile(`\$?\s*([0-9\.]+)\s*(usd|dólares|dolares|pesos)`),
	}

	minPricePatterns = []*regexp.Regexp{
		regexp.MustCompile(`desde \$?\s*([0-9\.]+)`),
	}

	roomPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*amb`),
		regexp.MustCompile(`(\d+)\s*ambiente`),
	}

	sqmPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)\s*m2`),
		regexp.MustCompile(`(\d+)\s*metros`),
	}
)
