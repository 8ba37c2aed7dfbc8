package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CandidateSkill is one skill listed on a parsed resume.
type CandidateSkill struct {
	Name        string `json:"name" validate:"required,min=1"`
	Proficiency string `json:"proficiency,omitempty"` // e.g. "beginner", "intermediate", "expert"
}

// Contact holds candidate contact information extracted by the resume parser.
type Contact struct {
	FullName  string `json:"full_name,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
	Phone     string `json:"phone,omitempty"`
}

// CandidateProfile represents a parsed resume as produced by the upstream
// extraction/NLP pipeline. The matching engine treats it as read-only.
type CandidateProfile struct {
	Contact              *Contact         `json:"contact,omitempty"`
	Skills               []CandidateSkill `json:"skills" validate:"dive"`
	TotalExperienceYears float64          `json:"total_experience_years" validate:"gte=0"`
	HighestEducation     string           `json:"highest_education,omitempty"`

	// ExtractedText is the raw text pulled from the resume document.
	// CleanedText is the preprocessed variant; either may be empty.
	// Keyword matching prefers ExtractedText and falls back to CleanedText.
	ExtractedText string `json:"extracted_text,omitempty"`
	CleanedText   string `json:"cleaned_text,omitempty"`
}

// DisplayName resolves the candidate's display name from contact info,
// falling back to "Unknown Candidate" when nothing usable is present.
func (c *CandidateProfile) DisplayName() string {
	if c.Contact != nil {
		if c.Contact.FullName != "" {
			return c.Contact.FullName
		}
		name := strings.TrimSpace(c.Contact.FirstName + " " + c.Contact.LastName)
		if name != "" {
			return name
		}
	}
	return "Unknown Candidate"
}

// FullText returns the text used for keyword matching, preferring the raw
// extracted text over the preprocessed form.
func (c *CandidateProfile) FullText() string {
	if c.ExtractedText != "" {
		return c.ExtractedText
	}
	return c.CleanedText
}

// Validate validates the CandidateProfile using the validator.
func (c *CandidateProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}
