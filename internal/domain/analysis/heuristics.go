package analysis

import (
	"regexp"
	"strconv"
	"strings"
)

var yearsPattern = regexp.MustCompile(`(\d+)\+?\s*years?`)

// referenceVocabulary drives the key-technology heuristic. Matching is a
// case-insensitive substring scan; output keeps vocabulary order and is
// capped at maxDetectedTechnologies.
var referenceVocabulary = []string{
	"Python", "Java", "JavaScript", "TypeScript", "React", "Node.js",
	"Docker", "Kubernetes", "AWS", "Azure", "PostgreSQL", "MongoDB",
	"Git", "CI/CD", "REST", "API",
}

const maxDetectedTechnologies = 10

var (
	fullyRemotePhrases = []string{"fully remote", "100% remote", "remote-first"}
	hybridPhrases      = []string{"hybrid", "flexible"}
	onSitePhrases      = []string{"on-site", "office"}
)

// Enhance fills fields the extraction step left empty using keyword and
// regex heuristics over the description. It never overwrites a value that
// is already present; a zero MinYears counts as absent.
func Enhance(a *JobAnalysis, src Source) {
	desc := strings.ToLower(src.Description)

	if a.RemotePolicy == "" {
		a.RemotePolicy = detectRemotePolicy(desc)
	}
	if a.MinYears == nil || *a.MinYears == 0 {
		if years, ok := detectMinYears(desc); ok {
			a.MinYears = &years
		}
	}
	if len(a.KeyTechnologies) == 0 {
		a.KeyTechnologies = detectTechnologies(desc)
	}
}

// Fallback produces a complete analysis from the description heuristics
// alone, used when extraction is unavailable or stays malformed after the
// retry. Required skills and remote policy are left for Normalize and
// Enhance to fill so every analysis takes the same path.
func Fallback(src Source) JobAnalysis {
	desc := strings.ToLower(src.Description)

	a := JobAnalysis{
		ExperienceLevel: ExperienceMid,
		EmploymentType:  detectEmploymentType(desc),
		KeyTechnologies: detectTechnologies(desc),
	}
	if years, ok := detectMinYears(desc); ok {
		a.MinYears = &years
		a.ExperienceLevel = ClassifyExperienceRange(a.MinYears, nil)
	}
	return a
}

func detectRemotePolicy(desc string) RemotePolicy {
	if containsAny(desc, fullyRemotePhrases) {
		return RemoteFullyRemote
	}
	if containsAny(desc, hybridPhrases) {
		return RemoteHybrid
	}
	if containsAny(desc, onSitePhrases) {
		return RemoteOnSite
	}
	return ""
}

func detectMinYears(desc string) (int, bool) {
	m := yearsPattern.FindStringSubmatch(desc)
	if m == nil {
		return 0, false
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return years, true
}

func detectTechnologies(desc string) []string {
	found := make([]string, 0, maxDetectedTechnologies)
	for _, tech := range referenceVocabulary {
		if !strings.Contains(desc, strings.ToLower(tech)) {
			continue
		}
		found = append(found, tech)
		if len(found) == maxDetectedTechnologies {
			break
		}
	}
	return found
}

func detectEmploymentType(desc string) EmploymentType {
	switch {
	case strings.Contains(desc, "contract"):
		return EmploymentContract
	case strings.Contains(desc, "part-time"), strings.Contains(desc, "part time"):
		return EmploymentPartTime
	case strings.Contains(desc, "intern"):
		return EmploymentInternship
	default:
		return EmploymentFullTime
	}
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
