package llm

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// stripMarkdownCodeFences removes markdown code fences from JSON responses.
func stripMarkdownCodeFences(text string) (cleaned string) {
	cleaned = strings.TrimSpace(text)

	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}

	// Drop the opening fence and its language tag
	start := strings.IndexByte(cleaned, '\n')
	if start < 0 {
		cleaned = strings.Trim(cleaned, "`")
		return cleaned
	}
	cleaned = cleaned[start+1:]

	cleaned = strings.TrimSuffix(strings.TrimRight(cleaned, " \r\n"), "```")
	cleaned = strings.TrimRight(cleaned, " \r\n")

	return cleaned
}

// extractJSON returns the JSON object in a model response. Prose around the
// object is tolerated by falling back to the outermost braces.
func extractJSON(text string) (object gjson.Result, err error) {
	cleaned := stripMarkdownCodeFences(text)

	if !gjson.Valid(cleaned) {
		first := strings.IndexByte(cleaned, '{')
		last := strings.LastIndexByte(cleaned, '}')
		if first < 0 || last <= first {
			err = errors.Errorf("no JSON object in response: %s", text)
			return object, err
		}
		cleaned = cleaned[first : last+1]
		if !gjson.Valid(cleaned) {
			err = errors.Errorf("invalid JSON in response: %s", text)
			return object, err
		}
	}

	object = gjson.Parse(cleaned)
	if !object.IsObject() {
		err = errors.Errorf("expected JSON object in response: %s", text)
		return object, err
	}

	return object, err
}

// parseResumeFields maps the model's JSON onto ParsedResume.
func parseResumeFields(text string) (parsed ParsedResume, err error) {
	var object gjson.Result
	object, err = extractJSON(text)
	if err != nil {
		return parsed, err
	}

	parsed = ParsedResume{
		Name:       object.Get("name").String(),
		Experience: object.Get("experience").String(),
		Skills:     object.Get("skills").String(),
		Education:  object.Get("education").String(),
	}
	return parsed, err
}

// parseJobFields maps the model's JSON onto ParsedJob.
func parseJobFields(text string) (parsed ParsedJob, err error) {
	var object gjson.Result
	object, err = extractJSON(text)
	if err != nil {
		return parsed, err
	}

	parsed = ParsedJob{
		Description: object.Get("description").String(),
		Title:       object.Get("title").String(),
		Company:     object.Get("company").String(),
	}
	return parsed, err
}

// splitList splits a model list response on sep, trimming and dropping empty
// items, keeping at most limit.
func splitList(text, sep string, limit int) (items []string) {
	items = make([]string, 0, limit)
	for _, item := range strings.Split(text, sep) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		items = append(items, item)
		if len(items) == limit {
			break
		}
	}
	return items
}

var companyPattern = regexp.MustCompile(`(?i)(?:company|organization|at)\s+([A-Z][a-zA-Z\s&]+?)(?:\s+is|\s+seeks|\s+looking|\.|,)`)

// ExtractCompany guesses the hiring company from phrases like "at Acme Corp is"
// in a job description. It returns "" when nothing matches.
func ExtractCompany(jd string) (company string) {
	match := companyPattern.FindStringSubmatch(jd)
	if len(match) < 2 {
		return company
	}
	company = strings.TrimSpace(match[1])
	return company
}
