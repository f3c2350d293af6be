package match

import (
	"sort"
)

// Candidate represents a known field that an unknown key might have meant.
type Candidate struct {
	// Name is the known field name.
	Name string
	// Distance is the Levenshtein distance between the key and Name.
	Distance int
	// Similarity is the normalized similarity (0-1).
	Similarity float64
	// Confidence is derived from Distance (see ConfidenceFromDistance).
	Confidence float64
	// Plausible is true when the field fits the key's location.
	Plausible bool
}

// CandidateList is a list of candidates with ranking functionality.
type CandidateList []Candidate

// RankCandidates finds the known fields within maxDistance edits of key and
// ranks them: smaller distance first, then plausible fields, then by name.
// plausible may be nil.
func RankCandidates(key string, known []string, maxDistance int, plausible func(string) bool) CandidateList {
	var candidates CandidateList

	for _, name := range known {
		if name == key {
			continue
		}

		// cheap length filter before the quadratic distance
		if diff := len(name) - len(key); diff > maxDistance || -diff > maxDistance {
			continue
		}

		distance := Levenshtein(key, name)
		if distance > maxDistance {
			continue
		}

		candidates = append(candidates, Candidate{
			Name:       name,
			Distance:   distance,
			Similarity: Similarity(key, name),
			Confidence: ConfidenceFromDistance(distance),
			Plausible:  plausible != nil && plausible(name),
		})
	}

	sort.Sort(candidates)

	return candidates
}

// Len implements sort.Interface.
func (c CandidateList) Len() int { return len(c) }

// Swap implements sort.Interface.
func (c CandidateList) Swap(i, j int) { c[i], c[j] = c[j], c[i] }

// Less implements sort.Interface.
func (c CandidateList) Less(i, j int) bool {
	if c[i].Distance != c[j].Distance {
		return c[i].Distance < c[j].Distance
	}

	if c[i].Plausible != c[j].Plausible {
		return c[i].Plausible
	}

	return c[i].Name < c[j].Name
}

// Top returns the top n candidates.
func (c CandidateList) Top(n int) CandidateList {
	if n >= len(c) {
		return c
	}

	return c[:n]
}

// Best returns the best candidate, or nil if no candidates.
func (c CandidateList) Best() *Candidate {
	if len(c) == 0 {
		return nil
	}

	return &c[0]
}

// IsAmbiguous returns true if the top two candidates cannot be told apart
// by distance or plausibility.
func (c CandidateList) IsAmbiguous() bool {
	if len(c) < 2 {
		return false
	}

	return c[0].Distance == c[1].Distance && c[0].Plausible == c[1].Plausible
}

// Names returns the candidate names in rank order.
func (c CandidateList) Names() []string {
	names := make([]string, 0, len(c))
	for _, cand := range c {
		names = append(names, cand.Name)
	}

	return names
}
