package llm

import (
	"github.com/nikogura/resume-studio/pkg/scorer"
	"github.com/pkg/errors"
)

// DocumentType selects which documents GenerateDocuments writes.
type DocumentType string

const (
	// TypeResume generates only the resume.
	TypeResume DocumentType = "resume"
	// TypeCoverLetter generates only the cover letter.
	TypeCoverLetter DocumentType = "cover-letter"
	// TypeBoth generates resume and cover letter.
	TypeBoth DocumentType = "both"
)

// Request carries the job description and the candidate's details.
type Request struct {
	JobDescription string       `json:"jobDescription" yaml:"job_description"`
	UserExperience string       `json:"userExperience" yaml:"experience"`
	UserName       string       `json:"userName,omitempty" yaml:"name,omitempty"`
	UserEmail      string       `json:"userEmail,omitempty" yaml:"email,omitempty"`
	UserPhone      string       `json:"userPhone,omitempty" yaml:"phone,omitempty"`
	UserLocation   string       `json:"userLocation,omitempty" yaml:"location,omitempty"`
	Skills         string       `json:"skills,omitempty" yaml:"skills,omitempty"`
	Education      string       `json:"education,omitempty" yaml:"education,omitempty"`
	Type           DocumentType `json:"type,omitempty" yaml:"type,omitempty"`
}

// Documents is everything produced for one request.
type Documents struct {
	Resume      string        `json:"resume,omitempty"`
	CoverLetter string        `json:"coverLetter,omitempty"`
	Keywords    []string      `json:"keywords"`
	Suggestions []string      `json:"suggestions"`
	ATSScore    *scorer.Score `json:"atsScore,omitempty"`
}

// ParsedResume holds the fields auto-filled from an uploaded resume.
type ParsedResume struct {
	Name       string `json:"name,omitempty"`
	Experience string `json:"experience,omitempty"`
	Skills     string `json:"skills,omitempty"`
	Education  string `json:"education,omitempty"`
}

// ParsedJob holds the fields extracted from a job posting page.
type ParsedJob struct {
	Description string `json:"description,omitempty"`
	Title       string `json:"title,omitempty"`
	Company     string `json:"company,omitempty"`
}

// WorkerRequest is the body posted to a completion worker.
type WorkerRequest struct {
	Prompt string `json:"prompt"`
	Type   string `json:"type"`
}

// WorkerResponse is the body a completion worker answers with.
type WorkerResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// ValidationError reports caller input the service cannot work with.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() (msg string) {
	msg = e.Message
	return msg
}

// IsValidation reports whether err, or anything it wraps, is a ValidationError.
func IsValidation(err error) (ok bool) {
	var v *ValidationError
	ok = errors.As(err, &v)
	return ok
}
