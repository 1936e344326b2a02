// SPDX-License-Identifier: MIT

// Package countries resolves free-form country names, the kind users type into
// address forms, to ISO 3166-1 alpha-2 codes via fuzzy matching.
package countries

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

const minSimilarity = 0.75

type Country struct {
	Code    string
	Name    string
	Aliases []string
}

// Match finds the country whose name or alias best resembles the input.
// Exact code/name/alias hits short-circuit, anything else needs a normalized
// levenshtein similarity of at least 0.75.
func Match(name string) (*Country, bool) {
	needle := normalize(name)
	if needle == "" {
		return nil, false
	}
	if country, found := exactIndex[needle]; found {
		return country, true
	}

	var best *Country
	bestScore := 0.0
	for _, country := range All {
		for _, candidate := range country.searchTerms() {
			if score := similarity(needle, normalize(candidate)); score > bestScore {
				best, bestScore = country, score
			}
		}
	}
	if bestScore < minSimilarity {
		return nil, false
	}

	return best, true
}

func (c *Country) searchTerms() []string {
	return append([]string{c.Name}, c.Aliases...)
}

func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len([]rune(a))
	if lb := len([]rune(b)); lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 0
	}

	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

func normalize(value string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(value))), " ")
}

//nolint:gochecknoglobals // Static reference data.
var exactIndex = func() map[string]*Country {
	index := make(map[string]*Country, 3*len(All)) //nolint:mnd,gomnd // Rough capacity.
	for _, country := range All {
		index[normalize(country.Code)] = country
		index[normalize(country.Name)] = country
		for _, alias := range country.Aliases {
			index[normalize(alias)] = country
		}
	}

	return index
}()
