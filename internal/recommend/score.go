// Package recommend ranks eligible job postings against a candidate's
// declared skills.
package recommend

import (
	"math"
	"sort"

	"github.com/daniel/jobboard/internal/db"
)

// Weights and result limits for the skill-overlap score.
const (
	requiredWeight  = 2
	preferredWeight = 1

	// maxMatches caps the skill-matching branch; fallbackCount is how many
	// recent postings a candidate with no skills receives.
	maxMatches    = 10
	fallbackCount = 5
)

// Match pairs a posting with its 0..100 relevance score.
type Match struct {
	Posting    db.JobPosting `json:"-"`
	MatchScore int           `json:"matchScore"`
}

// Score computes the percentage overlap between a candidate's skills and a
// posting's required/preferred skill lists. Matching is exact and
// case-sensitive. Each candidate skill found in requiredSkills contributes
// 2 points, each found in preferredSkills 1 point; the result is the raw
// total as a rounded percentage of the posting's maximum attainable score,
// clamped to 100. A posting declaring no skills at all scores 0.
func Score(candidateSkills, requiredSkills, preferredSkills []string) int {
	max := requiredWeight*len(requiredSkills) + preferredWeight*len(preferredSkills)
	if max == 0 {
		return 0
	}

	required := toSet(requiredSkills)
	preferred := toSet(preferredSkills)

	raw := 0
	seen := make(map[string]bool, len(candidateSkills))
	for _, skill := range candidateSkills {
		// Stored skill lists keep duplicates; each distinct skill counts once.
		if seen[skill] {
			continue
		}
		seen[skill] = true
		if required[skill] {
			raw += requiredWeight
		}
		if preferred[skill] {
			raw += preferredWeight
		}
	}

	score := int(math.Round(100 * float64(raw) / float64(max)))
	if score > 100 {
		score = 100
	}
	return score
}

// Rank selects and orders postings for one candidate. The eligible slice
// must contain only active, visible postings ordered most-recent-first;
// both the overlap filter and the fallback rely on that ordering.
//
// Candidates with at least one skill get up to 10 postings whose required
// or preferred skills overlap theirs, sorted by score descending with ties
// keeping recency order. Candidates with no skills get the 5 most recent
// eligible postings, all scored 0.
func Rank(candidateSkills []string, eligible []db.JobPosting) []Match {
	if len(candidateSkills) == 0 {
		n := len(eligible)
		if n > fallbackCount {
			n = fallbackCount
		}
		matches := make([]Match, 0, n)
		for _, p := range eligible[:n] {
			matches = append(matches, Match{Posting: p})
		}
		return matches
	}

	skills := toSet(candidateSkills)
	matches := make([]Match, 0, maxMatches)
	for _, p := range eligible {
		if len(matches) == maxMatches {
			break
		}
		if !overlaps(skills, p.RequiredSkills) && !overlaps(skills, p.PreferredSkills) {
			continue
		}
		matches = append(matches, Match{
			Posting:    p,
			MatchScore: Score(candidateSkills, p.RequiredSkills, p.PreferredSkills),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchScore > matches[j].MatchScore
	})
	return matches
}

func toSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, s := range skills {
		set[s] = true
	}
	return set
}

func overlaps(set map[string]bool, skills []string) bool {
	for _, s := range skills {
		if set[s] {
			return true
		}
	}
	return false
}
