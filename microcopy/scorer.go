// SPDX-License-Identifier: MIT

package microcopy

// Score computes how well the record's filters match the call site parameters.
// It is pure: 0 disqualifies the record, higher is more specific.
// A record without filters (or without a single named one) scores the baseline 1.
func Score(filters Filters, parameters map[string]string) int {
	if len(filters) == 0 {
		return 1
	}
	validFilters, score := 0, 0
	for _, filter := range filters {
		if filter.Name == "" {
			continue
		}
		validFilters++
		value, found := parameters[filter.Name]
		if !filter.Optional && !found {
			return 0
		}
		switch {
		case filter.Value == "" && filter.Optional:
			score += 2
		case filter.Value == "":
			score++
		case filter.Value == "*":
			score += 5 //nolint:gomnd // The wildcard outranks presence-only matches, exact matches outrank it.
		case found && filter.Value == value:
			score += 10 //nolint:gomnd // .
		}
	}
	if validFilters == 0 {
		return 1
	}

	return score
}

func (r *Record) Score(parameters map[string]string) int {
	return Score(r.Filters, parameters)
}

// HasFilter reports whether the record declares a filter for the given parameter name.
// Records use it to opt out of façade post-processing (e.g. a `style` filter).
func (r *Record) HasFilter(name string) bool {
	for _, filter := range r.Filters {
		if filter.Name == name {
			return true
		}
	}

	return false
}
