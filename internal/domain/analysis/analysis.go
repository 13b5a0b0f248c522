package analysis

import (
	"time"

	"github.com/google/uuid"
)

type ExperienceLevel string

const (
	ExperienceEntry     ExperienceLevel = "entry"
	ExperienceJunior    ExperienceLevel = "junior"
	ExperienceMid       ExperienceLevel = "mid"
	ExperienceSenior    ExperienceLevel = "senior"
	ExperienceLead      ExperienceLevel = "lead"
	ExperiencePrincipal ExperienceLevel = "principal"
)

func (l ExperienceLevel) Valid() bool {
	switch l {
	case ExperienceEntry, ExperienceJunior, ExperienceMid, ExperienceSenior, ExperienceLead, ExperiencePrincipal:
		return true
	}
	return false
}

type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
)

func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship:
		return true
	}
	return false
}

// RemotePolicy is optional; the empty string means undetermined.
type RemotePolicy string

const (
	RemoteOnSite      RemotePolicy = "on-site"
	RemoteHybrid      RemotePolicy = "hybrid"
	RemoteFullyRemote RemotePolicy = "fully-remote"
	RemoteFlexible    RemotePolicy = "flexible"
)

func (p RemotePolicy) Valid() bool {
	switch p {
	case RemoteOnSite, RemoteHybrid, RemoteFullyRemote, RemoteFlexible:
		return true
	}
	return false
}

type SalaryRange struct {
	Min      *float64 `json:"min,omitempty"`
	Max      *float64 `json:"max,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Period   string   `json:"period,omitempty"`
}

type JobAnalysis struct {
	ID        uuid.UUID
	JobPostID uuid.UUID

	RequiredSkills  []string
	PreferredSkills []string
	KeyTechnologies []string
	SoftSkills      []string

	ExperienceLevel ExperienceLevel
	MinYears        *int
	MaxYears        *int

	EducationRequirements []string
	Certifications        []string
	Responsibilities      []string
	Benefits              []string

	SalaryRange    *SalaryRange
	EmploymentType EmploymentType
	RemotePolicy   RemotePolicy
	Industry       string
	CompanySize    string

	AnalyzedAt time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Source carries the raw job fields the analysis pipeline reads. It is
// decoupled from the persistence entity so the heuristics stay pure.
type Source struct {
	Title       string
	Company     string
	Location    string
	JobType     string
	Description string
}

type ExtractionStatus int

const (
	StatusExtracted ExtractionStatus = iota
	StatusMalformed
	StatusUnavailable
)

// Extraction is the tagged outcome of a structured-extraction attempt.
// Exactly one of Data, Raw, or Err is meaningful depending on Status.
type Extraction struct {
	Status ExtractionStatus
	Data   *JobAnalysis
	Raw    string
	Err    error
}

func Extracted(data JobAnalysis) Extraction {
	return Extraction{Status: StatusExtracted, Data: &data}
}

func Malformed(raw string) Extraction {
	return Extraction{Status: StatusMalformed, Raw: raw}
}

func Unavailable(err error) Extraction {
	return Extraction{Status: StatusUnavailable, Err: err}
}

// Resolve turns any extraction outcome into a schema-valid analysis.
// Extracted data is normalized and enhanced in place; malformed and
// unavailable outcomes are replaced by the heuristic fallback, which then
// passes through the same normalization path.
func Resolve(ex Extraction, src Source) JobAnalysis {
	var a JobAnalysis
	if ex.Status == StatusExtracted && ex.Data != nil {
		a = *ex.Data
	} else {
		a = Fallback(src)
	}
	Normalize(&a)
	Enhance(&a, src)
	return a
}
