package llm

import "strings"

// EnhanceResumePrompt asks for an improved CV as strict JSON matching the
// structured resume schema. The response must be parseable; the resume
// service rejects anything else.
func EnhanceResumePrompt(cv string) string {
	var b strings.Builder
	b.WriteString("You are an expert CV writer. Improve the following CV to make it more professional, concise, and impactful. Focus on achievements, action verbs, and clarity.\n\n")
	b.WriteString("Respond with a single JSON object and nothing else. The object must have exactly these fields:\n")
	b.WriteString(`{"name": string, "contact": {"email": string, "phone": string, "location": string, "linkedin": string, "website": string}, "summary": string, "experience": [{"company": string, "title": string, "location": string, "startDate": string, "endDate": string, "highlights": [string]}], "education": [{"institution": string, "degree": string, "field": string, "startDate": string, "endDate": string}], "skills": [string]}`)
	b.WriteString("\n\nCV:\n")
	b.WriteString(cv)
	return b.String()
}

// CoverLetterPrompt asks for a personalized cover letter as plain text.
func CoverLetterPrompt(cv, jobDescription string) string {
	var b strings.Builder
	b.WriteString("You are a professional cover letter writer. Based on the following CV and job description, write a standout, personalized cover letter. Highlight key skills, achievements, and explain why this candidate is a great fit.\n\n")
	b.WriteString("CV:\n")
	b.WriteString(cv)
	b.WriteString("\n\nJob Description:\n")
	b.WriteString(jobDescription)
	return b.String()
}

// FollowUpPrompt asks for suggested follow-up dates, one suggestion per line.
func FollowUpPrompt(jobDescriptions []string) string {
	var b strings.Builder
	b.WriteString("Based on the following job applications, suggest optimal follow-up dates. Answer with one suggestion per line.\n\n")
	b.WriteString(strings.Join(jobDescriptions, "\n\n"))
	return b.String()
}
