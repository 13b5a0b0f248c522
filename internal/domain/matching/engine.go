package matching

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

const (
	semanticWeight = 0.7
	overlapWeight  = 0.3
)

type Candidate struct {
	DocumentID uuid.UUID
	Vector     []float32
	Text       string
}

type Match struct {
	DocumentID    uuid.UUID
	Score         float64
	SemanticScore float64
	OverlapScore  float64
	MatchedSkills []string
	MissingSkills []string
}

// Cosine computes cosine similarity between two vectors. ok is false when
// either vector is empty, the dimensions differ, or a norm is zero.
func Cosine(a, b []float32) (float64, bool) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, false
	}
	var dot, na, nb float64
	for i := range a {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, false
	}
	cos := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return cos, true
}

// SemanticScore maps cosine similarity into [0,1] as (cos+1)/2. The same
// fixed mapping is applied to every pair so rankings stay comparable even
// when the embedding provider emits negative components.
func SemanticScore(cos float64) float64 {
	return (cos + 1) / 2
}

// OverlapScore is the share of required skills mentioned in the candidate
// text: |matched| / max(1, |required|).
func OverlapScore(required []string, text string) (float64, []string, []string) {
	matched := make([]string, 0, len(required))
	missing := make([]string, 0)
	lower := strings.ToLower(text)
	for _, skill := range required {
		if mentionsSkill(lower, skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}
	denom := len(required)
	if denom < 1 {
		denom = 1
	}
	return float64(len(matched)) / float64(denom), matched, missing
}

func Combine(semantic, overlap float64) float64 {
	return semanticWeight*semantic + overlapWeight*overlap
}

// Rank scores every candidate against the job vector and required skill
// list, drops those under minScore, sorts by score descending with the
// document id as tie-break, and truncates to limit. Candidates whose
// vectors are missing or incompatible with the job vector are skipped.
func Rank(jobVector []float32, required []string, candidates []Candidate, minScore float64, limit int) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		cos, ok := Cosine(jobVector, c.Vector)
		if !ok {
			continue
		}
		semantic := SemanticScore(cos)
		overlap, matchedSkills, missingSkills := OverlapScore(required, c.Text)
		score := Combine(semantic, overlap)
		if score < minScore {
			continue
		}
		matches = append(matches, Match{
			DocumentID:    c.DocumentID,
			Score:         score,
			SemanticScore: semantic,
			OverlapScore:  overlap,
			MatchedSkills: matchedSkills,
			MissingSkills: missingSkills,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score == matches[j].Score {
			return matches[i].DocumentID.String() < matches[j].DocumentID.String()
		}
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

func mentionsSkill(textLower, skillName string) bool {
	skillLower := strings.ToLower(strings.TrimSpace(skillName))
	if skillLower == "" {
		return false
	}

	pat := `(?i)(^|[^a-z0-9])` + regexp.QuoteMeta(skillLower) + `([^a-z0-9]|$)`
	return regexp.MustCompile(pat).MatchString(textLower)
}
