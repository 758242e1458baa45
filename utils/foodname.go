package utils

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// The serving rewrite leans on these helpers to pull a food's identity out
// of display names like "Rice Bowl (approx. 250g)" or "2 medium rotis (60g
// each)". String surgery on names is fragile, so all of it lives here as
// pure functions with table tests.

var (
	parenthetical = regexp.MustCompile(`\(.*?\)`)
	leadingQty    = regexp.MustCompile(`^\d+(?:\.\d+)?\s*`)
	sizeWord      = regexp.MustCompile(`(?i)\b(?:small|medium|large|big)\b`)
	gramToken     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:g|grams?)\b`)
	multiSpace    = regexp.MustCompile(`\s+`)
)

// BaseFoodName strips parenthetical weight annotations, a leading bare
// quantity, and size adjectives, leaving the core food identity.
func BaseFoodName(name string) string {
	s := parenthetical.ReplaceAllString(name, "")
	s = leadingQty.ReplaceAllString(s, "")
	s = sizeWord.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// ExtractGramWeight returns the first gram quantity mentioned in a serving
// description ("1 bowl (250g)" -> 250) and whether one was found.
func ExtractGramWeight(serving string) (int, bool) {
	m := gramToken.FindStringSubmatch(serving)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return int(math.Round(v)), true
}

// HasGramToken reports whether the description already carries an explicit
// gram weight.
func HasGramToken(serving string) bool {
	return gramToken.MatchString(serving)
}

// ReplaceGramWeight rewrites every gram token in the description to the
// given weight, preserving the surrounding text ("1 bowl (250g)" with 100
// becomes "1 bowl (100g)"). Descriptions without a gram token are returned
// unchanged.
func ReplaceGramWeight(serving string, grams int) string {
	return gramToken.ReplaceAllString(serving, fmt.Sprintf("%dg", grams))
}
