// Package naming derives safe filesystem names: sanitized base names,
// normalized family grouping keys, and collision-free destination names.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// UnknownFamily is substituted when normalization strips a family name down
// to nothing.
const UnknownFamily = "Unknown"

// Unnamed is substituted when sanitization leaves an empty base name.
const Unnamed = "unnamed"

// familyTokens are the style/weight words removed from a display name to
// obtain the family grouping key.
var familyTokens = []string{
	"Bold", "Semibold", "Italic", "Regular", "Light", "Medium", "Black",
	"Thin", "Variable", "Condensed", "Extended", "Pro", "Display",
	"Capt", "Cond", "Wide", "SmBd", "Demi",
}

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	underscores  = regexp.MustCompile(`_+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

var defaultFamilyRegexp = buildFamilyRegexp(nil)

func buildFamilyRegexp(extra []string) *regexp.Regexp {
	tokens := make([]string, 0, len(familyTokens)+len(extra))
	for _, t := range familyTokens {
		tokens = append(tokens, regexp.QuoteMeta(t))
	}
	for _, t := range extra {
		if t = strings.TrimSpace(t); t != "" {
			tokens = append(tokens, regexp.QuoteMeta(t))
		}
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(tokens, "|") + `)\b`)
}

// Normalizer strips style/weight tokens from display names.
type Normalizer struct {
	re *regexp.Regexp
}

// NewNormalizer returns a Normalizer with extra tokens appended to the
// built-in set.
func NewNormalizer(extraTokens []string) *Normalizer {
	if len(extraTokens) == 0 {
		return &Normalizer{re: defaultFamilyRegexp}
	}
	return &Normalizer{re: buildFamilyRegexp(extraTokens)}
}

// Family derives the grouping key: whole-word style/weight tokens removed
// case-insensitively, whitespace collapsed and trimmed. Never returns an
// empty string. Idempotent.
func (n *Normalizer) Family(name string) string {
	out := n.re.ReplaceAllString(name, "")
	out = whitespace.ReplaceAllString(out, " ")
	out = strings.TrimSpace(out)
	if out == "" {
		return UnknownFamily
	}
	return out
}

// Family applies the built-in token set.
func Family(name string) string {
	return (&Normalizer{re: defaultFamilyRegexp}).Family(name)
}

// Sanitize makes name safe for cross-platform filesystem use: spaces become
// underscores, invalid characters (< > : " / \ | ? *) become underscores,
// consecutive underscores collapse, and leading/trailing spaces, dots and
// underscores are trimmed. An empty result maps to "unnamed".
func Sanitize(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return Unnamed
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = invalidChars.ReplaceAllString(name, "_")
	name = underscores.ReplaceAllString(name, "_")
	name = strings.Trim(name, " ._")
	if name == "" {
		return Unnamed
	}
	return name
}

// Unique produces a file name under dir that does not already exist at the
// moment of the check: base.ext, then base_1.ext, base_2.ext, ...
// Existence is re-checked synchronously per candidate; the design assumes a
// single active run per directory.
func Unique(dir, base, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	name := base + ext
	for id := 1; exists(filepath.Join(dir, name)); id++ {
		name = fmt.Sprintf("%s_%d%s", base, id, ext)
	}
	return name
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
