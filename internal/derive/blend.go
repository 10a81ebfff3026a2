package derive

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"
)

// Strategy selects how parent names are blended into candidates.
type Strategy string

const (
	StrategyTraditional    Strategy = "traditional"
	StrategyFirstLetters   Strategy = "first-letters"
	StrategySyllableBlend  Strategy = "syllable-blend"
	StrategyVowelConsonant Strategy = "vowel-consonant"
)

// Legacy rule labels from the preference form that also switch a strategy on.
const (
	RuleFirstLetterFatherLastMother = "First letter from father + last letter from mother"
	RuleCombineParentNames          = "Combination of parent names"
)

// Blend candidates outside this rune length range are discarded.
const (
	MinBlendLength = 3
	MaxBlendLength = 8
)

// blendOrder is the order strategies run and candidates are emitted in.
var blendOrder = []Strategy{StrategyFirstLetters, StrategySyllableBlend, StrategyVowelConsonant}

var ruleAliases = map[string]Strategy{
	RuleFirstLetterFatherLastMother: StrategyFirstLetters,
	RuleCombineParentNames:          StrategySyllableBlend,
}

// BlendCandidate is a synthesized name with a human-readable explanation of its parts.
type BlendCandidate struct {
	Name        string `json:"name"`
	Explanation string `json:"explanation"`
}

// ParseStrategy normalises a search type. Unknown values map to StrategyTraditional.
func ParseStrategy(s string) Strategy {
	st := Strategy(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(blendOrder, st) {
		return st
	}
	return StrategyTraditional
}

// StrategiesFor resolves the search type and legacy rule labels into the set of
// active blend strategies, in emission order.
func StrategiesFor(searchType string, rules []string) []Strategy {
	active := map[Strategy]bool{ParseStrategy(searchType): true}
	for _, rule := range rules {
		if st, ok := ruleAliases[strings.TrimSpace(rule)]; ok {
			active[st] = true
		}
	}

	var out []Strategy
	for _, st := range blendOrder {
		if active[st] {
			out = append(out, st)
		}
	}
	return out
}

// BlendNames produces blend candidates from the parent names for every active strategy.
// Both names must be non-empty for any strategy to produce output.
func BlendNames(father, mother string, rules []string, searchType string) []BlendCandidate {
	return blend(father, mother, StrategiesFor(searchType, rules))
}

// BlendAll runs every blend strategy regardless of preferences.
func BlendAll(father, mother string) []BlendCandidate {
	return blend(father, mother, blendOrder)
}

func blend(father, mother string, strategies []Strategy) []BlendCandidate {
	if father == "" || mother == "" {
		return nil
	}

	var out []BlendCandidate
	for _, st := range strategies {
		var produced []BlendCandidate
		switch st {
		case StrategyFirstLetters:
			produced = firstLetters(father, mother)
		case StrategySyllableBlend:
			produced = syllableBlend(father, mother)
		case StrategyVowelConsonant:
			produced = vowelConsonant(father, mother)
		}
		for _, c := range produced {
			if n := utf8.RuneCountInString(c.Name); n >= MinBlendLength && n <= MaxBlendLength {
				out = append(out, c)
			}
		}
	}
	return out
}

func firstLetters(father, mother string) []BlendCandidate {
	f := []rune(father)
	m := []rune(mother)
	first := string(f[0])
	last := string(m[len(m)-1])
	return []BlendCandidate{{
		Name: first + last,
		Explanation: fmt.Sprintf("Combines first letter '%s' from father's name '%s' with last letter '%s' from mother's name '%s'",
			first, father, last, mother),
	}}
}

func syllableBlend(father, mother string) []BlendCandidate {
	f := []rune(father)
	m := []rune(mother)
	fHead, fTail := string(f[:len(f)/2]), string(f[len(f)/2:])
	mHead, mTail := string(m[:len(m)/2]), string(m[len(m)/2:])

	return []BlendCandidate{
		{
			Name:        fHead + mTail,
			Explanation: fmt.Sprintf("Syllable fusion: '%s' (first half of %s) + '%s' (second half of %s)", fHead, father, mTail, mother),
		},
		{
			Name:        mHead + fTail,
			Explanation: fmt.Sprintf("Syllable fusion: '%s' (first half of %s) + '%s' (second half of %s)", mHead, mother, fTail, father),
		},
	}
}

func vowelConsonant(father, mother string) []BlendCandidate {
	vowels := letters(father, isVowel)
	consonants := letters(mother, isConsonant)
	if len(vowels) == 0 || len(consonants) == 0 {
		return nil
	}

	name := consonants[0] + vowels[0] + at(consonants, 1) + at(vowels, 1)
	return []BlendCandidate{{
		Name: name,
		Explanation: fmt.Sprintf("Vowel-consonant pattern: Uses vowels from '%s' (%s) and consonants from '%s' (%s)",
			father, strings.Join(vowels, ", "), mother, strings.Join(consonants, ", ")),
	}}
}

func letters(s string, keep func(rune) bool) []string {
	var out []string
	for _, r := range s {
		if keep(r) {
			out = append(out, string(r))
		}
	}
	return out
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func isVowel(r rune) bool {
	return strings.ContainsRune("aeiouAEIOU", r)
}

func isConsonant(r rune) bool {
	return strings.ContainsRune("bcdfghjklmnpqrstvwxyzBCDFGHJKLMNPQRSTVWXYZ", r)
}
