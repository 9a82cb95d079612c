package llm

import (
	"strings"
	"testing"
)

func TestBuildResumePrompt(t *testing.T) {
	req := Request{
		JobDescription: "Senior Go engineer at Acme",
		UserExperience: "Ten years building APIs",
		Skills:         "Go, SQL",
		Education:      "BSc",
	}

	prompt := buildResumePrompt(req)

	for _, want := range []string{
		"Senior Go engineer at Acme",
		"Ten years building APIs",
		"SKILLS: Go, SQL",
		"EDUCATION: BSc",
		"PROFESSIONAL SUMMARY",
		"Format in clean markdown.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain '%s'", want)
		}
	}
}

func TestBuildResumePromptOmitsEmptySections(t *testing.T) {
	prompt := buildResumePrompt(Request{JobDescription: "jd", UserExperience: "exp"})

	if strings.Contains(prompt, "SKILLS:") {
		t.Error("Expected no SKILLS line when skills are empty")
	}

	if strings.Contains(prompt, "EDUCATION:") {
		t.Error("Expected no EDUCATION line when education is empty")
	}
}

func TestBuildCoverLetterPrompt(t *testing.T) {
	tests := []struct {
		name        string
		userName    string
		company     string
		wantName    string
		wantCompany string
	}{
		{
			name:        "named",
			userName:    "Jane Smith",
			company:     "Acme Corp",
			wantName:    `Use the name "Jane Smith"`,
			wantCompany: `Reference "Acme Corp"`,
		},
		{
			name:        "placeholders",
			wantName:    `Use the name "[Your Name]"`,
			wantCompany: `Reference "[Company Name]"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := buildCoverLetterPrompt(Request{JobDescription: "jd", UserExperience: "exp", UserName: tt.userName}, tt.company)

			if !strings.Contains(prompt, tt.wantName) {
				t.Errorf("Expected prompt to contain '%s'", tt.wantName)
			}
			if !strings.Contains(prompt, tt.wantCompany) {
				t.Errorf("Expected prompt to contain '%s'", tt.wantCompany)
			}
		})
	}
}

func TestBuildKeywordsPrompt(t *testing.T) {
	prompt := buildKeywordsPrompt("Kubernetes operator role")

	if !strings.Contains(prompt, "Kubernetes operator role") {
		t.Error("Expected job description in prompt")
	}

	if !strings.Contains(prompt, "comma-separated list") {
		t.Error("Expected comma-separated instruction in prompt")
	}
}

func TestBuildSuggestionsPrompt(t *testing.T) {
	prompt := buildSuggestionsPrompt("jd text", "experience text")

	if !strings.Contains(prompt, "jd text") || !strings.Contains(prompt, "experience text") {
		t.Error("Expected job description and experience in prompt")
	}

	if !strings.Contains(prompt, "one per line") {
		t.Error("Expected one-per-line instruction in prompt")
	}
}

func TestBuildParsePrompts(t *testing.T) {
	resumePrompt := buildParseResumePrompt("Jane Smith, engineer")
	if !strings.Contains(resumePrompt, "RESUME TEXT:\nJane Smith, engineer") {
		t.Error("Expected resume text in prompt")
	}

	jobPrompt := buildParseJobPrompt("We are hiring")
	if !strings.Contains(jobPrompt, "WEBPAGE CONTENT:\nWe are hiring") {
		t.Error("Expected page text in prompt")
	}

	if !strings.Contains(jobPrompt, `"company": "Company name"`) {
		t.Error("Expected JSON shape in prompt")
	}
}
