// Package services contains the core migration logic: name normalization,
// customer identity resolution, offer number assignment and the import
// pipelines that compose them.
package services

import (
	"regexp"
	"strings"
)

var (
	// reWhitespace matches runs of internal whitespace.
	reWhitespace = regexp.MustCompile(`\s+`)
	// reLegalSuffix matches a trailing legal-entity suffix as a whole token.
	reLegalSuffix = regexp.MustCompile(`\s+(as|a/s|ans|da|sa)$`)
)

// Normalizer canonicalizes customer names for matching. The alias table is
// injected at construction so normalization rules are explicit per instance
// rather than shared global state.
type Normalizer struct {
	aliases map[string]string
}

// NewNormalizer creates a Normalizer with the given alias table. Keys and
// values are expected in normalized form (lowercase, collapsed whitespace);
// values may still carry a legal suffix. A nil table disables aliasing.
func NewNormalizer(aliases map[string]string) *Normalizer {
	return &Normalizer{aliases: aliases}
}

// Normalize returns the canonical form of a raw customer name: lowercase,
// trimmed, internal whitespace collapsed, alias-substituted and stripped of
// a trailing legal-entity suffix (as, a/s, ans, da, sa).
//
// Aliases are looked up twice, before and after suffix stripping, because
// table entries exist in both forms. Empty or whitespace-only input returns
// the empty string; Normalize never fails.
func (n *Normalizer) Normalize(raw string) string {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return ""
	}
	name = reWhitespace.ReplaceAllString(name, " ")

	// Alias lookup before suffix removal catches combined names whose
	// entries include the suffix.
	if canonical, ok := n.aliases[name]; ok {
		name = canonical
	}

	// Only a whole trailing token counts as a suffix; "hansa" keeps its
	// final letters.
	name = reLegalSuffix.ReplaceAllString(name, "")

	// Second lookup catches aliases defined in suffix-free form.
	if canonical, ok := n.aliases[name]; ok {
		name = canonical
	}

	return name
}
