package suggest

import (
	"sort"
	"strings"
)

// DefaultThreshold is the minimum score Suggest accepts.
const DefaultThreshold = 0.6

// DefaultLimit is the maximum number of names Suggest returns.
const DefaultLimit = 3

// Candidate is a known name scored against a query.
type Candidate struct {
	Name  string
	Score float64 // 0..1, higher is closer
}

// CandidateList is a list of candidates, best first once sorted.
type CandidateList []Candidate

// Rank scores every known name against query and returns them best first.
// The score is the better of the raw and the normalized similarity, so a
// case or separator difference alone still scores 1.
func Rank(query string, known []string) CandidateList {
	normQuery := Normalize(query)

	candidates := make(CandidateList, 0, len(known))

	for _, name := range known {
		score := max(
			Similarity(query, name),
			Similarity(normQuery, Normalize(name)),
		)

		// A query that is a whole word of the name, e.g. "Xtruct" for
		// "Xtruct2", is worth suggesting even if short.
		if score < DefaultThreshold && containsToken(name, normQuery) {
			score = DefaultThreshold
		}

		candidates = append(candidates, Candidate{Name: name, Score: score})
	}

	sort.Sort(candidates)

	return candidates
}

// Suggest returns up to DefaultLimit known names whose score against query is
// at least DefaultThreshold, best first. The query itself is never returned.
func Suggest(query string, known []string) []string {
	var out []string

	for _, c := range Rank(query, known).AboveThreshold(DefaultThreshold).Top(DefaultLimit + 1) {
		if c.Name == query {
			continue
		}

		out = append(out, c.Name)
	}

	if len(out) > DefaultLimit {
		out = out[:DefaultLimit]
	}

	return out
}

// Hint formats suggestions as a user hint, or "" when there are none.
func Hint(suggestions []string) string {
	if len(suggestions) == 0 {
		return ""
	}

	return "did you mean " + strings.Join(suggestions, ", ") + "?"
}

func containsToken(name, token string) bool {
	if token == "" {
		return false
	}

	for _, t := range Tokenize(name) {
		if t == token {
			return true
		}
	}

	return strings.HasPrefix(Normalize(name), token)
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
// Sorts by score descending, then by name for determinism.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Score != c[j].Score {
		return c[i].Score > c[j].Score
	}

	return c[i].Name < c[j].Name
}

// Top returns the first n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if there are none.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// AboveThreshold returns the candidates scoring at least threshold.
func (c CandidateList) AboveThreshold(threshold float64) CandidateList {
	var result CandidateList

	for _, cand := range c {
		if cand.Score >= threshold {
			result = append(result, cand)
		}
	}

	return result
}
