package analysis

import "strings"

// BuildEmbeddingText derives the canonical text a job embedding is
// generated from. Identical inputs must yield byte-identical output, so
// the line set and order are fixed: title, company, experience level,
// then up to 10 required skills, 8 technologies, and 3 responsibilities,
// the last three lines omitted when empty.
func BuildEmbeddingText(src Source, a JobAnalysis) string {
	parts := []string{
		"Job Title: " + src.Title,
		"Company: " + src.Company,
		"Experience Level: " + string(a.ExperienceLevel),
	}

	if len(a.RequiredSkills) > 0 {
		parts = append(parts, "Required Skills: "+strings.Join(capList(a.RequiredSkills, 10), ", "))
	}
	if len(a.KeyTechnologies) > 0 {
		parts = append(parts, "Technologies: "+strings.Join(capList(a.KeyTechnologies, 8), ", "))
	}
	if len(a.Responsibilities) > 0 {
		parts = append(parts, "Key Responsibilities: "+strings.Join(capList(a.Responsibilities, 3), " "))
	}

	return strings.Join(parts, "\n")
}

func capList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
