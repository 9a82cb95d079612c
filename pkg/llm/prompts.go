package llm

import (
	"fmt"
	"strings"
)

// buildResumePrompt creates the resume generation prompt.
func buildResumePrompt(req Request) (prompt string) {
	var extras []string
	if req.Skills != "" {
		extras = append(extras, "SKILLS: "+req.Skills)
	}
	if req.Education != "" {
		extras = append(extras, "EDUCATION: "+req.Education)
	}

	prompt = fmt.Sprintf(`You are an expert resume writer and career coach. Create professional, ATS-optimized resume bullet points.

JOB DESCRIPTION:
%s

USER'S EXPERIENCE:
%s

%s

Generate a professional resume with these sections:
1. PROFESSIONAL SUMMARY (2-3 sentences highlighting relevant experience)
2. KEY SKILLS (bullet points of relevant skills from job description)
3. WORK EXPERIENCE (transform user's experience into powerful bullet points using action verbs and quantifiable achievements)
4. EDUCATION (if provided)

IMPORTANT:
- Use action verbs (Led, Developed, Implemented, Achieved, etc.)
- Include metrics and numbers where possible
- Match keywords from job description
- Focus on achievements, not just responsibilities
- Make it ATS-friendly (no tables, columns, or graphics)
- Keep bullet points concise (1-2 lines each)

Format in clean markdown.`, req.JobDescription, req.UserExperience, strings.Join(extras, "\n"))

	return prompt
}

// buildCoverLetterPrompt creates the cover letter prompt. Missing name and
// company fall back to placeholders the candidate fills in by hand.
func buildCoverLetterPrompt(req Request, company string) (prompt string) {
	name := req.UserName
	if name == "" {
		name = "[Your Name]"
	}
	if company == "" {
		company = "[Company Name]"
	}

	prompt = fmt.Sprintf(`You are an expert cover letter writer. Create a compelling, professional cover letter.

JOB DESCRIPTION:
%s

USER'S EXPERIENCE:
%s

Generate a professional cover letter that:
1. Opens with enthusiasm for the specific role
2. Highlights 2-3 key achievements that match the job requirements
3. Shows understanding of the company/role
4. Explains why the candidate is a great fit
5. Closes with a strong call to action

IMPORTANT:
- Use the name "%s" for the candidate
- Reference "%s" as the company
- Be specific about how their experience matches the role
- Show genuine interest and enthusiasm
- Keep it to 3-4 paragraphs
- Professional but personable tone
- Include specific examples from their experience

Format in clean markdown with proper spacing.`, req.JobDescription, req.UserExperience, name, company)

	return prompt
}

// buildKeywordsPrompt asks for a comma-separated ATS keyword list.
func buildKeywordsPrompt(jd string) (prompt string) {
	prompt = fmt.Sprintf(`Extract the most important keywords and skills from this job description for ATS (Applicant Tracking System) optimization.

JOB DESCRIPTION:
%s

Return ONLY a comma-separated list of keywords (no explanations, no numbering, just keywords).
Focus on:
- Technical skills
- Required qualifications
- Important tools/technologies
- Key responsibilities
- Industry terms

Example format: JavaScript, React, Team Leadership, Agile, AWS, Problem Solving`, jd)

	return prompt
}

// buildSuggestionsPrompt asks for one improvement suggestion per line.
func buildSuggestionsPrompt(jd, experience string) (prompt string) {
	prompt = fmt.Sprintf(`You are a career coach. Analyze this job application and provide 3-5 specific, actionable suggestions to improve the candidate's chances.

JOB DESCRIPTION:
%s

USER'S EXPERIENCE:
%s

Provide suggestions as a simple list (one per line, no numbering, no bullets).
Focus on:
- Missing skills to highlight
- Better ways to phrase experience
- Additional qualifications to mention
- Gaps to address
- Strengths to emphasize

Example format:
Emphasize your project management experience more prominently
Quantify your achievements with specific metrics
Highlight your experience with cloud technologies`, jd, experience)

	return prompt
}

// buildParseResumePrompt asks for resume fields as a JSON object.
func buildParseResumePrompt(text string) (prompt string) {
	prompt = fmt.Sprintf(`Extract structured information from this resume text. Return ONLY a JSON object with these fields: name, experience, skills, education.

RESUME TEXT:
%s

Return format (JSON only, no markdown, no explanation):
{
  "name": "Full Name",
  "experience": "All work experience descriptions combined",
  "skills": "Comma-separated list of skills",
  "education": "Education details"
}`, text)

	return prompt
}

// buildParseJobPrompt asks for the posting's description, title and company.
func buildParseJobPrompt(pageText string) (prompt string) {
	prompt = fmt.Sprintf(`Extract the job description from this webpage content. Return ONLY a JSON object with these fields: description, title, company.

WEBPAGE CONTENT:
%s

Return format (JSON only, no markdown, no explanation):
{
  "description": "Full job description text",
  "title": "Job title",
  "company": "Company name"
}`, pageText)

	return prompt
}
