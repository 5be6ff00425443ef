package urlparse

import "strings"

// leetSubstitutions maps each letter to the look-alike characters commonly
// substituted for it in typosquatted domains.
var leetSubstitutions = map[byte][]byte{
	'a': {'4', '@'},
	'e': {'3'},
	'i': {'1', 'l', '!'},
	'o': {'0'},
	's': {'5', '$'},
	'l': {'1', 'i'},
	't': {'7'},
}

// typosquatCommonTLD is appended to each target brand when measuring edit
// distance against the registrable domain.
const typosquatCommonTLD = ".com"

// IsTyposquatting reports whether the host imitates any configured target.
func (in *Inspector) IsTyposquatting(host string) bool {
	return in.typosquatTarget(&Record{
		Host:              host,
		RegistrableDomain: registrableDomain(host),
	}) != ""
}

// typosquatTarget returns the first target the record imitates, either by
// being one or two edits away from target+".com" or by containing a
// leet-speak variant of the target.
func (in *Inspector) typosquatTarget(rec *Record) string {
	for _, target := range in.ref.TyposquatTargets {
		reference := target + typosquatCommonTLD
		if rec.RegistrableDomain == reference {
			continue
		}
		if d := levenshtein(rec.RegistrableDomain, reference); d >= 1 && d <= 2 {
			return target
		}
		if containsLeetVariant(rec.Host, target) {
			return target
		}
	}
	return ""
}

// containsLeetVariant checks whether host contains the target with exactly
// one character replaced by a documented leet substitution.
func containsLeetVariant(host, target string) bool {
	for i := 0; i < len(target); i++ {
		subs, ok := leetSubstitutions[target[i]]
		if !ok {
			continue
		}
		for _, sub := range subs {
			variant := target[:i] + string(sub) + target[i+1:]
			if strings.Contains(host, variant) {
				return true
			}
		}
	}
	return false
}

// levenshtein computes the edit distance between two strings with the
// classic dynamic-programming table.
func levenshtein(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
	}
	for i := 0; i <= len(s1); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}
