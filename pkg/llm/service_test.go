package llm

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
)

// fakeCompleter answers each prompt kind with a canned response.
type fakeCompleter struct {
	mu        sync.Mutex
	responses map[string]string
	failures  map[string]error
	kinds     []string
	prompts   map[string]string
}

func newFakeCompleter() (f *fakeCompleter) {
	f = &fakeCompleter{
		responses: map[string]string{
			KindResume:      "# Jane Smith\\n\\n## Skills\\n- Go\\n- Kubernetes 🚀",
			KindCoverLetter: "Dear Hiring Manager,",
			KindKeywords:    "Go, Kubernetes, AWS",
			KindSuggestions: "Quantify impact\nMention AWS",
			KindParse:       `{"name": "Jane Smith", "experience": "SRE at Acme"}`,
		},
		failures: map[string]error{},
		prompts:  map[string]string{},
	}
	return f
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt, kind string) (text string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.kinds = append(f.kinds, kind)
	f.prompts[kind] = prompt

	err = f.failures[kind]
	if err != nil {
		return text, err
	}

	text = f.responses[kind]
	return text, err
}

func (f *fakeCompleter) called(kind string) (ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, k := range f.kinds {
		if k == kind {
			ok = true
			return ok
		}
	}
	return ok
}

type fakeFetcher struct {
	text string
	err  error
	url  string
}

func (f *fakeFetcher) FetchURL(ctx context.Context, url string) (text string, err error) {
	f.url = url
	return f.text, f.err
}

func validRequest() (req Request) {
	req = Request{
		JobDescription: "Join the team at Acme Corp, hiring a Go engineer with Kubernetes and AWS.",
		UserExperience: "Ran Kubernetes clusters for five years.",
		UserName:       "Jane Smith",
	}
	return req
}

func TestGenerateDocumentsBoth(t *testing.T) {
	completer := newFakeCompleter()
	service := NewService(completer, &fakeFetcher{}, nil)

	docs, err := service.GenerateDocuments(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("GenerateDocuments failed: %v", err)
	}

	expectedResume := "# Jane Smith\n\n## Skills\n- Go\n- Kubernetes"
	if docs.Resume != expectedResume {
		t.Errorf("Expected resume %q, got %q", expectedResume, docs.Resume)
	}

	if docs.CoverLetter != "Dear Hiring Manager," {
		t.Errorf("Expected cover letter, got %q", docs.CoverLetter)
	}

	if len(docs.Keywords) != 3 || docs.Keywords[2] != "AWS" {
		t.Errorf("Expected 3 keywords, got %v", docs.Keywords)
	}

	if len(docs.Suggestions) != 2 {
		t.Errorf("Expected 2 suggestions, got %v", docs.Suggestions)
	}

	if docs.ATSScore == nil {
		t.Fatal("Expected ATS score")
	}

	if docs.ATSScore.Percent != 66 {
		t.Errorf("Expected ATS percent 66, got %d", docs.ATSScore.Percent)
	}

	if !strings.Contains(completer.prompts[KindCoverLetter], `Reference "Acme Corp"`) {
		t.Error("Expected extracted company in cover letter prompt")
	}
}

func TestGenerateDocumentsSingleType(t *testing.T) {
	tests := []struct {
		name            string
		docType         DocumentType
		wantResume      bool
		wantCoverLetter bool
	}{
		{name: "resume only", docType: TypeResume, wantResume: true},
		{name: "cover letter only", docType: TypeCoverLetter, wantCoverLetter: true},
		{name: "default both", docType: "", wantResume: true, wantCoverLetter: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := newFakeCompleter()
			service := NewService(completer, &fakeFetcher{}, nil)

			req := validRequest()
			req.Type = tt.docType

			docs, err := service.GenerateDocuments(context.Background(), req)
			if err != nil {
				t.Fatalf("GenerateDocuments failed: %v", err)
			}

			if (docs.Resume != "") != tt.wantResume {
				t.Errorf("Resume presence: expected %v, got %q", tt.wantResume, docs.Resume)
			}
			if (docs.CoverLetter != "") != tt.wantCoverLetter {
				t.Errorf("Cover letter presence: expected %v, got %q", tt.wantCoverLetter, docs.CoverLetter)
			}
			if completer.called(KindResume) != tt.wantResume {
				t.Errorf("Resume completion call: expected %v", tt.wantResume)
			}
		})
	}
}

func TestGenerateDocumentsValidation(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "missing job description", req: Request{UserExperience: "exp"}},
		{name: "missing experience", req: Request{JobDescription: "jd"}},
		{name: "blank fields", req: Request{JobDescription: "  ", UserExperience: "\n"}},
		{name: "bad type", req: Request{JobDescription: "jd", UserExperience: "exp", Type: "poem"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := newFakeCompleter()
			service := NewService(completer, &fakeFetcher{}, nil)

			_, err := service.GenerateDocuments(context.Background(), tt.req)
			if !IsValidation(err) {
				t.Fatalf("Expected validation error, got %v", err)
			}

			if len(completer.kinds) != 0 {
				t.Errorf("Expected no completion calls, got %v", completer.kinds)
			}
		})
	}
}

func TestGenerateDocumentsMissingFieldsMessage(t *testing.T) {
	service := NewService(newFakeCompleter(), &fakeFetcher{}, nil)

	_, err := service.GenerateDocuments(context.Background(), Request{})
	if err == nil || err.Error() != "Missing required fields: jobDescription and userExperience" {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestGenerateDocumentsResumeFailure(t *testing.T) {
	completer := newFakeCompleter()
	completer.failures[KindResume] = errors.New("AI service returned status 503")
	service := NewService(completer, &fakeFetcher{}, nil)

	_, err := service.GenerateDocuments(context.Background(), validRequest())
	if err == nil {
		t.Fatal("Expected error when resume generation fails, got nil")
	}

	if IsValidation(err) {
		t.Error("Upstream failure must not be a validation error")
	}
}

func TestGenerateDocumentsAnalysisDegrades(t *testing.T) {
	completer := newFakeCompleter()
	completer.failures[KindKeywords] = errors.New("keywords down")
	completer.failures[KindSuggestions] = errors.New("suggestions down")
	service := NewService(completer, &fakeFetcher{}, nil)

	docs, err := service.GenerateDocuments(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Expected success despite analysis failures, got %v", err)
	}

	if docs.Keywords == nil || len(docs.Keywords) != 0 {
		t.Errorf("Expected empty keyword list, got %v", docs.Keywords)
	}

	if docs.Suggestions == nil || len(docs.Suggestions) != 0 {
		t.Errorf("Expected empty suggestion list, got %v", docs.Suggestions)
	}

	if docs.ATSScore.Percent != 0 {
		t.Errorf("Expected 0%% coverage with no keywords, got %d", docs.ATSScore.Percent)
	}
}

func TestGenerateDocumentsKeywordCap(t *testing.T) {
	completer := newFakeCompleter()
	var many []string
	for i := 0; i < 20; i++ {
		many = append(many, "kw"+string(rune('a'+i)))
	}
	completer.responses[KindKeywords] = strings.Join(many, ", ")
	service := NewService(completer, &fakeFetcher{}, nil)

	docs, err := service.GenerateDocuments(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("GenerateDocuments failed: %v", err)
	}

	if len(docs.Keywords) != 15 {
		t.Errorf("Expected 15 keywords, got %d", len(docs.Keywords))
	}
}

func TestParseResume(t *testing.T) {
	service := NewService(newFakeCompleter(), &fakeFetcher{}, nil)

	parsed, err := service.ParseResume(context.Background(), "  Jane Smith\nSRE at Acme for many years  ")
	if err != nil {
		t.Fatalf("ParseResume failed: %v", err)
	}

	if parsed.Name != "Jane Smith" {
		t.Errorf("Expected name 'Jane Smith', got '%s'", parsed.Name)
	}

	if parsed.Experience != "SRE at Acme" {
		t.Errorf("Expected experience 'SRE at Acme', got '%s'", parsed.Experience)
	}
}

func TestParseResumeValidation(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		message string
	}{
		{name: "empty", text: "", message: "No text provided"},
		{name: "too short", text: "   Jane Smith   ", message: "Text is too short. Please provide more content."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewService(newFakeCompleter(), &fakeFetcher{}, nil)

			_, err := service.ParseResume(context.Background(), tt.text)
			if !IsValidation(err) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if err.Error() != tt.message {
				t.Errorf("Expected '%s', got '%s'", tt.message, err.Error())
			}
		})
	}
}

func TestParseResumeDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name     string
		response string
		failure  error
	}{
		{name: "model failure", failure: errors.New("down")},
		{name: "unparseable output", response: "Sorry, I can't do that."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := newFakeCompleter()
			completer.responses[KindParse] = tt.response
			if tt.failure != nil {
				completer.failures[KindParse] = tt.failure
			}
			service := NewService(completer, &fakeFetcher{}, nil)

			parsed, err := service.ParseResume(context.Background(), "Jane Smith, Site Reliability Engineer")
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if parsed != (ParsedResume{}) {
				t.Errorf("Expected empty result, got %+v", parsed)
			}
		})
	}
}

func TestParseJobLink(t *testing.T) {
	completer := newFakeCompleter()
	completer.responses[KindParse] = "```json\n{\"description\": \"Build APIs\", \"title\": \"Engineer\", \"company\": \"Acme\"}\n```"
	fetcher := &fakeFetcher{text: strings.Repeat("x", 6000)}
	service := NewService(completer, fetcher, nil)

	parsed, err := service.ParseJobLink(context.Background(), " https://jobs.example.com/1 ")
	if err != nil {
		t.Fatalf("ParseJobLink failed: %v", err)
	}

	if fetcher.url != "https://jobs.example.com/1" {
		t.Errorf("Expected trimmed URL, got '%s'", fetcher.url)
	}

	expected := ParsedJob{Description: "Build APIs", Title: "Engineer", Company: "Acme"}
	if parsed != expected {
		t.Errorf("Expected %+v, got %+v", expected, parsed)
	}

	if strings.Contains(completer.prompts[KindParse], strings.Repeat("x", 5001)) {
		t.Error("Expected page text truncated to 5000 characters")
	}
	if !strings.Contains(completer.prompts[KindParse], strings.Repeat("x", 5000)) {
		t.Error("Expected 5000 characters of page text in prompt")
	}
}

func TestParseJobLinkErrors(t *testing.T) {
	t.Run("missing url", func(t *testing.T) {
		service := NewService(newFakeCompleter(), &fakeFetcher{}, nil)

		_, err := service.ParseJobLink(context.Background(), "")
		if !IsValidation(err) || err.Error() != "Missing URL" {
			t.Errorf("Expected 'Missing URL' validation error, got %v", err)
		}
	})

	t.Run("fetch failure", func(t *testing.T) {
		service := NewService(newFakeCompleter(), &fakeFetcher{err: errors.New("404")}, nil)

		_, err := service.ParseJobLink(context.Background(), "https://jobs.example.com/1")
		if err == nil {
			t.Error("Expected error, got nil")
		}
	})

	t.Run("bad model output", func(t *testing.T) {
		completer := newFakeCompleter()
		completer.responses[KindParse] = "no json here"
		service := NewService(completer, &fakeFetcher{text: "page"}, nil)

		_, err := service.ParseJobLink(context.Background(), "https://jobs.example.com/1")
		if err == nil {
			t.Error("Expected error, got nil")
		}
	})
}
