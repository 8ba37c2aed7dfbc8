package types

import "github.com/go-playground/validator/v10"

// JobProfile represents a parsed job posting as produced by the upstream
// extraction/NLP pipeline. The matching engine treats it as read-only.
type JobProfile struct {
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`

	RequiredSkills  []string `json:"required_skills,omitempty"`
	PreferredSkills []string `json:"preferred_skills,omitempty"`

	// ExperienceYearsMin is the minimum years of experience; zero means the
	// posting specifies no experience requirement.
	ExperienceYearsMin float64 `json:"experience_years_min,omitempty" validate:"gte=0"`

	// EducationRequirement is the minimum degree level (e.g. "bachelor",
	// "master"); empty means no education requirement.
	EducationRequirement string `json:"education_requirement,omitempty"`

	Responsibilities []string `json:"responsibilities,omitempty"`
	Qualifications   []string `json:"qualifications,omitempty"`

	RawText string `json:"raw_text,omitempty"`
}

// DisplayTitle returns the job title, falling back to "Unknown Position".
func (j *JobProfile) DisplayTitle() string {
	if j.Title != "" {
		return j.Title
	}
	return "Unknown Position"
}

// Validate validates the JobProfile using the validator.
func (j *JobProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
