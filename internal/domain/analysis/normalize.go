package analysis

import "strings"

// Normalize enforces the schema invariants on a parsed analysis: array
// fields are never nil, enum fields always hold an enumerated value, and
// the skill lists are deduplicated case-insensitively keeping first-seen
// order and casing. When required skills are missing it seeds them from
// the first five key technologies.
func Normalize(a *JobAnalysis) {
	a.RequiredSkills = dedupeSkills(a.RequiredSkills)
	a.PreferredSkills = dedupeSkills(a.PreferredSkills)
	a.KeyTechnologies = dedupeSkills(a.KeyTechnologies)
	a.SoftSkills = ensureSlice(a.SoftSkills)
	a.EducationRequirements = ensureSlice(a.EducationRequirements)
	a.Certifications = ensureSlice(a.Certifications)
	a.Responsibilities = ensureSlice(a.Responsibilities)
	a.Benefits = ensureSlice(a.Benefits)

	if a.MinYears != nil && *a.MinYears < 0 {
		a.MinYears = nil
	}
	if a.MaxYears != nil && *a.MaxYears < 0 {
		a.MaxYears = nil
	}
	if a.MinYears != nil && a.MaxYears != nil && *a.MinYears > *a.MaxYears {
		a.MinYears, a.MaxYears = a.MaxYears, a.MinYears
	}

	if !a.ExperienceLevel.Valid() {
		a.ExperienceLevel = ClassifyExperienceRange(a.MinYears, a.MaxYears)
	}
	if !a.EmploymentType.Valid() {
		a.EmploymentType = EmploymentFullTime
	}
	if a.RemotePolicy != "" && !a.RemotePolicy.Valid() {
		a.RemotePolicy = ""
	}

	if len(a.RequiredSkills) == 0 && len(a.KeyTechnologies) > 0 {
		n := len(a.KeyTechnologies)
		if n > 5 {
			n = 5
		}
		a.RequiredSkills = append(a.RequiredSkills, a.KeyTechnologies[:n]...)
	}
}

func ensureSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func dedupeSkills(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		cleaned := strings.TrimSpace(s)
		if cleaned == "" {
			continue
		}
		key := strings.ToLower(cleaned)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, cleaned)
	}
	return out
}
