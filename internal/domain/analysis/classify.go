package analysis

// ClassifyExperience maps an average years-of-experience figure to a level.
// Boundaries are inclusive on the lower band: exactly 1.0 is still entry.
func ClassifyExperience(avgYears float64) ExperienceLevel {
	switch {
	case avgYears <= 1:
		return ExperienceEntry
	case avgYears <= 3:
		return ExperienceJunior
	case avgYears <= 5:
		return ExperienceMid
	case avgYears <= 8:
		return ExperienceSenior
	case avgYears <= 12:
		return ExperienceLead
	default:
		return ExperiencePrincipal
	}
}

// ClassifyExperienceRange averages min and max when a positive max is
// present, otherwise uses min alone, otherwise zero.
func ClassifyExperienceRange(minYears, maxYears *int) ExperienceLevel {
	var avg float64
	switch {
	case maxYears != nil && *maxYears > 0:
		var lo int
		if minYears != nil {
			lo = *minYears
		}
		avg = float64(lo+*maxYears) / 2.0
	case minYears != nil:
		avg = float64(*minYears)
	}
	return ClassifyExperience(avg)
}
