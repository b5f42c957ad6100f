package engine

import "strings"

const categoryDefault = "default"

// keywordGroup maps a set of trigger words to the response categories it
// selects. Categories are tried in order; a persona missing all of them
// answers from its default category.
type keywordGroup struct {
	words      []string
	categories []string
}

// matchOrder fixes the category resolution priority. The scan is
// first-match-wins, so an utterance containing both "hello" and "help"
// resolves to greeting. The order is behavior-defining: greeting, help,
// thanks, tech, art, life.
var matchOrder = []keywordGroup{
	{words: []string{"hello", "hi", "hey"}, categories: []string{"greeting"}},
	{words: []string{"help", "assist"}, categories: []string{"help"}},
	{words: []string{"thank", "thanks"}, categories: []string{"thanks"}},
	{words: []string{"tech", "code", "program"}, categories: []string{"tech", "programming"}},
	{words: []string{"art", "creative", "design"}, categories: []string{"art", "creative"}},
	{words: []string{"life", "wisdom", "advice"}, categories: []string{"life", "wisdom"}},
}

// resolveCandidates returns the candidate replies for a lower-cased
// utterance. It never returns an empty slice as long as the table carries
// a default category.
func resolveCandidates(table map[string][]string, lower string) []string {
	for _, group := range matchOrder {
		if !containsAny(lower, group.words) {
			continue
		}
		for _, category := range group.categories {
			if candidates := table[category]; len(candidates) > 0 {
				return candidates
			}
		}
		return table[categoryDefault]
	}
	return table[categoryDefault]
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
