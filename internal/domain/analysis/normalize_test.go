package analysis

import (
	"reflect"
	"testing"
)

func TestNormalize_NilArraysBecomeEmpty(t *testing.T) {
	a := JobAnalysis{}
	Normalize(&a)

	for name, got := range map[string][]string{
		"required_skills":        a.RequiredSkills,
		"preferred_skills":       a.PreferredSkills,
		"key_technologies":       a.KeyTechnologies,
		"soft_skills":            a.SoftSkills,
		"education_requirements": a.EducationRequirements,
		"certifications":         a.Certifications,
		"responsibilities":       a.Responsibilities,
		"benefits":               a.Benefits,
	} {
		if got == nil {
			t.Errorf("%s is nil after Normalize", name)
		}
	}
}

func TestNormalize_DeduplicatesSkills(t *testing.T) {
	a := JobAnalysis{RequiredSkills: []string{"Python", "python", " Python ", "Go"}}
	Normalize(&a)
	if !reflect.DeepEqual(a.RequiredSkills, []string{"Python", "Go"}) {
		t.Fatalf("unexpected required skills: %v", a.RequiredSkills)
	}
}

func TestNormalize_InvalidExperienceLevelClassified(t *testing.T) {
	minYears, maxYears := 6, 8
	a := JobAnalysis{ExperienceLevel: "expert", MinYears: &minYears, MaxYears: &maxYears}
	Normalize(&a)
	if a.ExperienceLevel != ExperienceSenior {
		t.Fatalf("expected senior, got %q", a.ExperienceLevel)
	}
}

func TestNormalize_MissingExperienceLevelWithoutYears(t *testing.T) {
	a := JobAnalysis{}
	Normalize(&a)
	if a.ExperienceLevel != ExperienceEntry {
		t.Fatalf("expected entry, got %q", a.ExperienceLevel)
	}
}

func TestNormalize_InvalidEmploymentTypeDefaults(t *testing.T) {
	a := JobAnalysis{EmploymentType: "freelance"}
	Normalize(&a)
	if a.EmploymentType != EmploymentFullTime {
		t.Fatalf("expected full-time, got %q", a.EmploymentType)
	}
}

func TestNormalize_InvalidRemotePolicyCleared(t *testing.T) {
	a := JobAnalysis{RemotePolicy: "remote"}
	Normalize(&a)
	if a.RemotePolicy != "" {
		t.Fatalf("expected cleared remote policy, got %q", a.RemotePolicy)
	}
}

func TestNormalize_SeedsRequiredSkillsFromTechnologies(t *testing.T) {
	a := JobAnalysis{KeyTechnologies: []string{"Go", "Python", "Docker", "AWS", "Redis", "Kafka"}}
	Normalize(&a)
	if !reflect.DeepEqual(a.RequiredSkills, []string{"Go", "Python", "Docker", "AWS", "Redis"}) {
		t.Fatalf("unexpected seeded skills: %v", a.RequiredSkills)
	}
}

func TestNormalize_SwapsInvertedYears(t *testing.T) {
	minYears, maxYears := 8, 3
	a := JobAnalysis{MinYears: &minYears, MaxYears: &maxYears}
	Normalize(&a)
	if *a.MinYears != 3 || *a.MaxYears != 8 {
		t.Fatalf("expected swapped years, got min=%d max=%d", *a.MinYears, *a.MaxYears)
	}
}

func TestNormalize_DropsNegativeYears(t *testing.T) {
	minYears := -2
	a := JobAnalysis{MinYears: &minYears}
	Normalize(&a)
	if a.MinYears != nil {
		t.Fatalf("expected negative min years dropped, got %d", *a.MinYears)
	}
}

func TestNormalize_KeepsValidFields(t *testing.T) {
	a := JobAnalysis{
		RequiredSkills:  []string{"Go"},
		ExperienceLevel: ExperienceLead,
		EmploymentType:  EmploymentContract,
		RemotePolicy:    RemoteFlexible,
	}
	Normalize(&a)
	if a.ExperienceLevel != ExperienceLead || a.EmploymentType != EmploymentContract || a.RemotePolicy != RemoteFlexible {
		t.Fatalf("valid fields were rewritten: %+v", a)
	}
}
