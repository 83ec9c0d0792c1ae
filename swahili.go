package fatashi

import "regexp"

type rewriteRule struct {
	match   *regexp.Regexp
	replace string
}

func rule(pattern, replace string) rewriteRule {
	return rewriteRule{match: regexp.MustCompile(pattern), replace: replace}
}

// Noun-class singular/plural pairs, applied to the head of a key in order.
var preRules = []rewriteRule{
	rule(`^ma`, `\b(ma)?`), // ji-ma, li-ya: jicho/macho, pera/mapera
	rule(`^mi`, `\bmi?`),   // m-mi, u-i: mti/miti
	rule(`^vi`, `\b[kv]i`), // ki-vi: kitabu/vitabu
	rule(`^-ji`, `-(ji)?`), // reflexive verb stems: -jua/-ua
}

// Regional spelling variants, applied anywhere in a key.
var postRules = []rewriteRule{
	rule(`l|r`, `[lr]`),
	rule(`z`, `(z|dh)`),
	rule(`^mu`, `m[uw]`),
}

// PreProcess widens the head of key so that a noun-class prefix matches both
// its singular and plural forms.
func PreProcess(key string) string {
	return applyRules(preRules, key)
}

// PostProcess widens consonants that are spelled differently across regions.
func PostProcess(key string) string {
	return applyRules(postRules, key)
}

func applyRules(rules []rewriteRule, key string) string {
	for _, r := range rules {
		key = r.match.ReplaceAllLiteralString(key, r.replace)
	}

	return key
}
