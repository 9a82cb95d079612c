package llm

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/nikogura/resume-studio/pkg/jd"
	"github.com/nikogura/resume-studio/pkg/scorer"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const (
	maxKeywords    = 15
	maxSuggestions = 5
	minResumeText  = 20
	maxPageText    = 5000
)

// PageFetcher returns the visible text of a job posting URL.
type PageFetcher interface {
	FetchURL(ctx context.Context, url string) (text string, err error)
}

// Service produces application documents through a Completer.
type Service struct {
	completer Completer
	fetcher   PageFetcher
	logger    *slog.Logger
}

// NewService creates a service. A nil fetcher uses jd.NewFetcher and a nil
// logger discards output.
func NewService(completer Completer, fetcher PageFetcher, logger *slog.Logger) (service *Service) {
	if fetcher == nil {
		fetcher = jd.NewFetcher(jd.DefaultTimeout)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	service = &Service{
		completer: completer,
		fetcher:   fetcher,
		logger:    logger,
	}
	return service
}

// GenerateDocuments writes the requested documents, then extracts keywords and
// suggestions in parallel. Keyword and suggestion failures degrade to empty
// lists; resume or cover letter failures fail the whole call.
func (s *Service) GenerateDocuments(ctx context.Context, req Request) (docs Documents, err error) {
	if strings.TrimSpace(req.JobDescription) == "" || strings.TrimSpace(req.UserExperience) == "" {
		err = &ValidationError{Message: "Missing required fields: jobDescription and userExperience"}
		return docs, err
	}

	if req.Type == "" {
		req.Type = TypeBoth
	}

	switch req.Type {
	case TypeResume, TypeCoverLetter, TypeBoth:
	default:
		err = &ValidationError{Message: "Invalid type: must be resume, cover-letter or both"}
		return docs, err
	}

	s.logger.InfoContext(ctx, "generating documents", "type", string(req.Type))

	if req.Type == TypeResume || req.Type == TypeBoth {
		var resume string
		resume, err = s.completer.Complete(ctx, buildResumePrompt(req), KindResume)
		if err != nil {
			err = errors.Wrap(err, "resume generation failed")
			return docs, err
		}
		docs.Resume = CleanGenerated(resume)
	}

	if req.Type == TypeCoverLetter || req.Type == TypeBoth {
		company := ExtractCompany(req.JobDescription)

		var letter string
		letter, err = s.completer.Complete(ctx, buildCoverLetterPrompt(req, company), KindCoverLetter)
		if err != nil {
			err = errors.Wrap(err, "cover letter generation failed")
			return docs, err
		}
		docs.CoverLetter = CleanGenerated(letter)
	}

	docs.Keywords, docs.Suggestions = s.analyze(ctx, req)

	generated := docs.Resume
	if generated == "" {
		generated = docs.CoverLetter
	}
	score := scorer.Coverage(generated, docs.Keywords)
	docs.ATSScore = &score

	s.logger.InfoContext(ctx, "documents generated",
		"keywords", len(docs.Keywords),
		"suggestions", len(docs.Suggestions),
		"ats_percent", score.Percent,
	)

	return docs, err
}

// analyze runs keyword and suggestion extraction concurrently.
func (s *Service) analyze(ctx context.Context, req Request) (keywords, suggestions []string) {
	keywords = []string{}
	suggestions = []string{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		text, callErr := s.completer.Complete(gctx, buildKeywordsPrompt(req.JobDescription), KindKeywords)
		if callErr != nil {
			s.logger.WarnContext(ctx, "keyword extraction failed", "error", callErr)
			return err
		}
		keywords = splitList(text, ",", maxKeywords)
		return err
	})

	g.Go(func() (err error) {
		text, callErr := s.completer.Complete(gctx, buildSuggestionsPrompt(req.JobDescription, req.UserExperience), KindSuggestions)
		if callErr != nil {
			s.logger.WarnContext(ctx, "suggestion generation failed", "error", callErr)
			return err
		}
		suggestions = splitList(text, "\n", maxSuggestions)
		return err
	})

	// Neither goroutine returns an error.
	_ = g.Wait()

	return keywords, suggestions
}

// ParseResume extracts name, experience, skills and education from resume
// text. Once the input is accepted, a model or parse failure yields an empty
// result rather than an error.
func (s *Service) ParseResume(ctx context.Context, text string) (parsed ParsedResume, err error) {
	if text == "" {
		err = &ValidationError{Message: "No text provided"}
		return parsed, err
	}

	text = strings.TrimSpace(text)
	if len([]rune(text)) < minResumeText {
		err = &ValidationError{Message: "Text is too short. Please provide more content."}
		return parsed, err
	}

	s.logger.InfoContext(ctx, "parsing resume", "chars", len(text))

	response, callErr := s.completer.Complete(ctx, buildParseResumePrompt(text), KindParse)
	if callErr != nil {
		s.logger.WarnContext(ctx, "resume parsing failed", "error", callErr)
		return parsed, err
	}

	fields, parseErr := parseResumeFields(response)
	if parseErr != nil {
		s.logger.WarnContext(ctx, "resume parsing returned invalid JSON", "error", parseErr)
		return parsed, err
	}

	parsed = fields
	return parsed, err
}

// ParseJobLink fetches a job posting and asks the model for its description,
// title and company.
func (s *Service) ParseJobLink(ctx context.Context, url string) (parsed ParsedJob, err error) {
	url = strings.TrimSpace(url)
	if url == "" {
		err = &ValidationError{Message: "Missing URL"}
		return parsed, err
	}

	s.logger.InfoContext(ctx, "parsing job link", "url", url)

	var page string
	page, err = s.fetcher.FetchURL(ctx, url)
	if err != nil {
		err = errors.Wrapf(err, "failed to fetch job page: %s", url)
		return parsed, err
	}

	var response string
	response, err = s.completer.Complete(ctx, buildParseJobPrompt(jd.Truncate(page, maxPageText)), KindParse)
	if err != nil {
		err = errors.Wrap(err, "job parsing request failed")
		return parsed, err
	}

	parsed, err = parseJobFields(response)
	if err != nil {
		err = errors.Wrap(err, "failed to parse job response")
		return parsed, err
	}

	return parsed, err
}
