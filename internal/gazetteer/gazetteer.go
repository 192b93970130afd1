// Package gazetteer holds the fixed table of Indonesian regions used for
// query region extraction and for tagging listing locations at index time.
// Matching is exact-token over normalized tokens: an alias matches only when
// its full token sequence appears, so "malang" never matches "Pemalang".
package gazetteer

import "strings"

// Region is one gazetteer entry: a canonical tag plus the aliases that map
// to it. Aliases are normalized token sequences joined by single spaces.
type Region struct {
	Canonical string
	Aliases   []string
}

type entry struct {
	canonical string
	tokens    []string
}

// Gazetteer matches normalized token sequences against known regions.
// Entry order fixes precedence: at equal match length the earlier entry wins.
type Gazetteer struct {
	entries []entry
}

// New returns the built-in gazetteer.
func New() *Gazetteer {
	return NewFromRegions(Regions)
}

// NewFromRegions builds a gazetteer from explicit entries. The canonical
// name itself always matches, whether or not it is listed as an alias.
func NewFromRegions(regions []Region) *Gazetteer {
	g := &Gazetteer{}
	for _, r := range regions {
		seen := map[string]bool{}
		add := func(alias string) {
			if alias == "" || seen[alias] {
				return
			}
			seen[alias] = true
			g.entries = append(g.entries, entry{canonical: r.Canonical, tokens: splitAlias(alias)})
		}
		for _, a := range r.Aliases {
			add(a)
		}
		add(canonicalAlias(r.Canonical))
	}
	return g
}

// Match scans tokens left to right and returns the first region hit: the
// canonical tag and the [start, end) token range that matched. At a given
// position the longest alias wins; among equal lengths, declaration order.
func (g *Gazetteer) Match(tokens []string) (canonical string, start, end int, ok bool) {
	for i := range tokens {
		if c, n := g.matchAt(tokens, i); n > 0 {
			return c, i, i + n, true
		}
	}
	return "", 0, 0, false
}

// MatchAll returns the canonical tag of every region named in tokens, in
// first-appearance order without duplicates. Used at index time to tag a
// listing with all regions its location string names.
func (g *Gazetteer) MatchAll(tokens []string) []string {
	var out []string
	seen := map[string]bool{}
	for i := 0; i < len(tokens); {
		c, n := g.matchAt(tokens, i)
		if n == 0 {
			i++
			continue
		}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
		i += n
	}
	return out
}

// Extract removes the first matched region from tokens. When ok is false
// the returned rest is the input slice unchanged.
func (g *Gazetteer) Extract(tokens []string) (canonical string, rest []string, ok bool) {
	c, start, end, ok := g.Match(tokens)
	if !ok {
		return "", tokens, false
	}
	rest = make([]string, 0, len(tokens)-(end-start))
	rest = append(rest, tokens[:start]...)
	rest = append(rest, tokens[end:]...)
	return c, rest, true
}

// matchAt returns the best entry starting at position i and the number of
// tokens it consumed (0 when nothing matches).
func (g *Gazetteer) matchAt(tokens []string, i int) (canonical string, n int) {
	for _, e := range g.entries {
		if len(e.tokens) <= n {
			continue
		}
		if matchesAt(tokens, i, e.tokens) {
			canonical = e.canonical
			n = len(e.tokens)
		}
	}
	return canonical, n
}

func matchesAt(tokens []string, i int, alias []string) bool {
	if i+len(alias) > len(tokens) {
		return false
	}
	for j, a := range alias {
		if tokens[i+j] != a {
			return false
		}
	}
	return true
}

func splitAlias(alias string) []string {
	return strings.Fields(alias)
}

// canonicalAlias turns a canonical slug back into its token form, so
// "jawa-tengah" also matches the literal tokens "jawa tengah".
func canonicalAlias(canonical string) string {
	return strings.ReplaceAll(canonical, "-", " ")
}
