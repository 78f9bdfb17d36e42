package game

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// suggestionLimit is the largest edit distance still treated as a typo.
func suggestionLimit(candidateLen int) int {
	switch {
	case candidateLen <= 4:
		return 1
	case candidateLen <= 8:
		return 2
	default:
		return 3
	}
}

// closest returns the candidate nearest to token within the typo limit.
func closest(token string, candidates []string) (string, bool) {
	if token == "" {
		return "", false
	}

	best, bestDist := "", -1
	for _, cand := range candidates {
		dist := levenshtein.ComputeDistance(token, cand)
		if dist > suggestionLimit(len(cand)) {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best, bestDist = cand, dist
		}
	}
	return best, bestDist != -1
}

func withSuggestion(message, token string, candidates []string) string {
	if s, ok := closest(token, candidates); ok {
		return fmt.Sprintf("%s (did you mean %q?)", message, s)
	}
	return message
}
