// Package categorizer assigns a spending category to a parsed transaction
// from its description using ordered keyword rules.
package categorizer

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/insightdelivered/upi-statement-parser/internal/models"
)

// Rule maps a keyword set to a category label. A rule matches when any
// keyword in Any is found, or when every group in AllOf has at least one hit.
type Rule struct {
	Label string
	Any   []string
	AllOf [][]string
}

// keywordSet is a compiled Aho-Corasick automaton for one keyword list.
type keywordSet struct {
	matcher *ahocorasick.Matcher
}

func newKeywordSet(words []string) keywordSet {
	lowered := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(w); strings.TrimSpace(w) != "" {
			lowered = append(lowered, w)
		}
	}
	if len(lowered) == 0 {
		return keywordSet{}
	}
	return keywordSet{matcher: ahocorasick.NewStringMatcher(lowered)}
}

// contains reports whether any keyword occurs in text. The matcher's
// single-pass Match keeps internal state, so MatchThreadSafe is used to let
// one Categorizer serve concurrent requests.
func (k keywordSet) contains(text []byte) bool {
	if k.matcher == nil {
		return false
	}
	return len(k.matcher.MatchThreadSafe(text)) > 0
}

type compiledRule struct {
	label string
	any   keywordSet
	allOf []keywordSet
}

func (r compiledRule) matches(text []byte) bool {
	if r.any.contains(text) {
		return true
	}
	if len(r.allOf) == 0 {
		return false
	}
	for _, group := range r.allOf {
		if !group.contains(text) {
			return false
		}
	}
	return true
}

func compile(rules []Rule) []compiledRule {
	out := make([]compiledRule, 0, len(rules))
	for _, r := range rules {
		cr := compiledRule{label: r.Label, any: newKeywordSet(r.Any)}
		for _, group := range r.AllOf {
			cr.allOf = append(cr.allOf, newKeywordSet(group))
		}
		out = append(out, cr)
	}
	return out
}

// Categorizer holds the compiled rule tables. It is immutable after New and
// safe for concurrent use.
type Categorizer struct {
	rules      []compiledRule
	storeRules []compiledRule
	store      keywordSet
	telecom    keywordSet
	intent     keywordSet
	shopWords  keywordSet
}

// New compiles rules, falling back to DefaultRules when rules is empty.
func New(rules []Rule) *Categorizer {
	if len(rules) == 0 {
		rules = DefaultRules
	}
	return &Categorizer{
		rules:      compile(rules),
		storeRules: compile(StoreRules),
		store:      newKeywordSet([]string{"store"}),
		telecom:    newKeywordSet(telecomNames),
		intent:     newKeywordSet(rechargeIntent),
		shopWords:  newKeywordSet(storeWords),
	}
}

// Categorize returns the category label for a description. Credits are
// always income; debits and unknowns walk the rule table, then the store
// dispatch, then the bare-telecom fallback.
func (c *Categorizer) Categorize(description string, direction models.Direction) string {
	if direction == models.DirectionCredit {
		return models.CategoryIncome
	}

	text := []byte(" " + strings.ToLower(description) + " ")

	for _, r := range c.rules {
		if r.matches(text) {
			return r.label
		}
	}

	if c.store.contains(text) {
		for _, r := range c.storeRules {
			if r.matches(text) {
				return r.label
			}
		}
		return Shopping
	}

	if c.telecom.contains(text) && !c.intent.contains(text) {
		if c.shopWords.contains(text) {
			return Shopping
		}
		return Recharge
	}

	return models.CategoryOther
}

// Labels lists every label the categorizer can return, in rule order,
// without duplicates.
func (c *Categorizer) Labels() []string {
	seen := map[string]bool{}
	var labels []string
	add := func(l string) {
		if !seen[l] {
			seen[l] = true
			labels = append(labels, l)
		}
	}
	add(models.CategoryIncome)
	for _, r := range c.rules {
		add(r.label)
	}
	for _, r := range c.storeRules {
		add(r.label)
	}
	add(Shopping)
	add(Recharge)
	add(models.CategoryOther)
	return labels
}
