package usecase

import (
	_ "embed"
	"strings"

	"jobsense/internal/domain/analysis"
)

//go:embed prompts/analyze_job.md
var analyzePromptTemplate string

//go:embed prompts/analyze_job_retry.md
var analyzeRetryPromptTemplate string

//go:embed prompts/cover_letter.md
var coverLetterPromptTemplate string

//go:embed prompts/cv_summary.md
var cvSummaryPromptTemplate string

const (
	analyzeSystemPrompt = "You are an expert HR analyst and recruiter specializing in extracting structured data from job descriptions. Be thorough but accurate."

	coverLetterSystemPrompt = "You are an expert career coach and professional resume writer. " +
		"Your goal is to write a highly persuasive, professional, and tailored cover letter. " +
		"STRICT RULES:\n" +
		"1. Use ONLY facts provided in the candidate's CV.\n" +
		"2. DO NOT invent experiences, skills, or certifications.\n" +
		"3. Align the candidate's strengths with the job's key requirements.\n" +
		"4. Use a professional, confident, yet humble tone.\n" +
		"5. The output should be in Markdown format."

	cvSummarySystemPrompt = "You are a professional CV optimizer. Rewrite the candidate's professional summary " +
		"to better align with the provided job description while remaining 100% factual."
)

// retryDescriptionLimit caps the description sent on the minimal retry prompt.
const retryDescriptionLimit = 1000

func buildAnalyzePrompt(src analysis.Source) string {
	prompt := strings.ReplaceAll(analyzePromptTemplate, "{{TITLE}}", src.Title)
	prompt = strings.ReplaceAll(prompt, "{{COMPANY}}", src.Company)
	prompt = strings.ReplaceAll(prompt, "{{LOCATION}}", src.Location)
	prompt = strings.ReplaceAll(prompt, "{{JOB_TYPE}}", src.JobType)
	prompt = strings.ReplaceAll(prompt, "{{DESCRIPTION}}", src.Description)
	return prompt
}

func buildAnalyzeRetryPrompt(src analysis.Source) string {
	desc := src.Description
	if runes := []rune(desc); len(runes) > retryDescriptionLimit {
		desc = string(runes[:retryDescriptionLimit])
	}
	prompt := strings.ReplaceAll(analyzeRetryPromptTemplate, "{{TITLE}}", src.Title)
	prompt = strings.ReplaceAll(prompt, "{{DESCRIPTION}}", desc)
	return prompt
}

func buildCoverLetterPrompt(jobTitle, company, jobDescription, cvText, instructions string) string {
	if strings.TrimSpace(instructions) == "" {
		instructions = "None provided."
	}
	prompt := strings.ReplaceAll(coverLetterPromptTemplate, "{{JOB_TITLE}}", jobTitle)
	prompt = strings.ReplaceAll(prompt, "{{COMPANY}}", company)
	prompt = strings.ReplaceAll(prompt, "{{JOB_DESCRIPTION}}", jobDescription)
	prompt = strings.ReplaceAll(prompt, "{{CV_TEXT}}", cvText)
	prompt = strings.ReplaceAll(prompt, "{{INSTRUCTIONS}}", instructions)
	return prompt
}

func buildCVSummaryPrompt(jobDescription, cvText string) string {
	prompt := strings.ReplaceAll(cvSummaryPromptTemplate, "{{JOB_DESCRIPTION}}", jobDescription)
	prompt = strings.ReplaceAll(prompt, "{{CV_TEXT}}", cvText)
	return prompt
}
