package urlparse

import (
	"strings"
	"unicode"
)

// scriptRanges are the scripts we distinguish when looking for mixed-script
// hostnames. A hostname drawing letters from two or more of these is treated
// as a homograph attempt.
var scriptRanges = []*unicode.RangeTable{
	unicode.Latin,
	unicode.Cyrillic,
	unicode.Greek,
	unicode.Armenian,
}

// HasHomographAttack reports whether the host contains a character from the
// curated confusable table, or mixes two or more Unicode scripts.
func (in *Inspector) HasHomographAttack(host string) bool {
	for _, variants := range in.ref.Confusables {
		for _, v := range variants {
			if strings.Contains(host, v) {
				return true
			}
		}
	}
	return mixesScripts(host)
}

func mixesScripts(host string) bool {
	seen := 0
	var found [4]bool
	for _, r := range host {
		if !unicode.IsLetter(r) {
			continue
		}
		for i, table := range scriptRanges {
			if !found[i] && unicode.Is(table, r) {
				found[i] = true
				seen++
				if seen >= 2 {
					return true
				}
			}
		}
	}
	return false
}
