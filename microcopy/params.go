// SPDX-License-Identifier: MIT

package microcopy

import (
	"sort"
	"strconv"
)

// Params is the call site's parameter set, either named or positional.
// Only one of the two variants is populated; pluralization rules apply
// exclusively to positional parameters whose first element is numeric.
type Params struct {
	named      map[string]string
	positional []string
	fallback   string
}

// NamedParams builds the named variant. The reserved `fallback` key is
// consumed here and never participates in matching; `style` stays a regular
// parameter so records can filter on it.
func NamedParams(parameters map[string]string) *Params {
	params := &Params{named: make(map[string]string, len(parameters))}
	for name, value := range parameters {
		if name == fallbackParameter {
			params.fallback = value

			continue
		}
		params.named[name] = value
	}

	return params
}

func PositionalParams(parameters ...string) *Params {
	return &Params{positional: parameters}
}

func (p *Params) WithFallback(fallback string) *Params {
	p.fallback = fallback

	return p
}

// Named returns the name→value mapping used for filter scoring, nil-safe.
func (p *Params) Named() map[string]string {
	if p == nil {
		return nil
	}

	return p.named
}

// Names returns the sorted parameter names, the canonical form used for
// candidate queries and cache keys.
func (p *Params) Names() []string {
	if p == nil || len(p.named) == 0 {
		return nil
	}
	names := make([]string, 0, len(p.named))
	for name := range p.named {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (p *Params) Positional() []string {
	if p == nil {
		return nil
	}

	return p.positional
}

func (p *Params) Fallback() string {
	if p == nil {
		return ""
	}

	return p.fallback
}

func (p *Params) Style() string {
	if p == nil {
		return ""
	}

	return p.named[styleParameter]
}

// IsPlural reports whether the positional first element selects the plural
// form: numeric and either 0 or greater than 1. Named parameters never pluralize.
func (p *Params) IsPlural() bool {
	if p == nil || len(p.positional) == 0 {
		return false
	}
	count, err := strconv.ParseFloat(p.positional[0], 64)
	if err != nil {
		return false
	}

	return count == 0 || count > 1
}
